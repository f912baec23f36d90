package middleware

import (
	"net/http"
	"strconv"

	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RequireHospitalScope verifies that hospital scoped roles only reach their own
// hospital through the :hospital_id path parameter. super_admin and patients pass.
func RequireHospitalScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if !identity.IsLoggedIn() {
			deny(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		hospitalID, err := strconv.ParseUint(c.Param("hospital_id"), 10, 32)
		if err != nil {
			utils.AbortWithError(c, http.StatusBadRequest, "Invalid hospital ID")
			return
		}

		if !identity.CanAccessHospital(uint(hospitalID)) {
			utils.AbortWithError(c, http.StatusForbidden, "Access denied: you don't have permission to access this hospital")
			return
		}

		c.Next()
	}
}

package service

import (
	"fmt"

	"hospital-management/internal/session"
)

// checkHospitalAccess enforces the hospital boundary for scoped roles
func checkHospitalAccess(identity session.Identity, hospitalID uint) error {
	if !identity.CanAccessHospital(hospitalID) {
		return fmt.Errorf("%w: you don't have permission to access this hospital", ErrForbidden)
	}
	return nil
}

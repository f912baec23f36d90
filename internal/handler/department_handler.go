package handler

import (
	"hospital-management/internal/middleware"
	"hospital-management/internal/service"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departmentService *service.DepartmentService
}

func NewDepartmentHandler(departmentService *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
	}
}

// GetDepartments lists departments of a hospital
func (h *DepartmentHandler) GetDepartments(c *gin.Context) {
	hospitalID, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}

	departments, err := h.departmentService.GetDepartmentsByHospitalID(middleware.GetIdentity(c), hospitalID)
	if err != nil {
		respondError(c, err, "Failed to fetch departments")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"departments": departments,
		"count":       len(departments),
	})
}

// CreateDepartment creates a department in a hospital
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	hospitalID, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}
	var req service.DepartmentInput
	if !utils.BindJSON(c, &req) {
		return
	}

	department, err := h.departmentService.CreateDepartment(middleware.GetIdentity(c), hospitalID, req)
	if err != nil {
		respondError(c, err, "Failed to create department")
		return
	}
	utils.CreatedResponse(c, department)
}

// UpdateDepartment updates a department
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	hospitalID, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}
	departmentID, ok := parseID(c, "department_id", "department")
	if !ok {
		return
	}
	var req service.DepartmentInput
	if !utils.BindJSON(c, &req) {
		return
	}

	department, err := h.departmentService.UpdateDepartment(middleware.GetIdentity(c), hospitalID, departmentID, req)
	if err != nil {
		respondError(c, err, "Failed to update department")
		return
	}
	utils.SuccessResponse(c, department)
}

// DeleteDepartment deactivates a department
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	hospitalID, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}
	departmentID, ok := parseID(c, "department_id", "department")
	if !ok {
		return
	}

	if err := h.departmentService.DeactivateDepartment(middleware.GetIdentity(c), hospitalID, departmentID); err != nil {
		respondError(c, err, "Failed to deactivate department")
		return
	}
	utils.MessageResponse(c, "Department deactivated")
}

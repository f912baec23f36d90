package handler

import (
	"hospital-management/internal/middleware"
	"hospital-management/internal/models"
	"hospital-management/internal/service"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
}

func NewHospitalHandler(hospitalService *service.HospitalService) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
	}
}

// GetAllHospitals lists hospitals; only super_admin sees inactive ones
func (h *HospitalHandler) GetAllHospitals(c *gin.Context) {
	hospitals, err := h.hospitalService.GetAllHospitals(middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err, "Failed to fetch hospitals")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital retrieves a specific hospital by ID
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	id, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}

	hospital, err := h.hospitalService.GetHospitalByID(middleware.GetIdentity(c), id)
	if err != nil {
		respondError(c, err, "Failed to fetch hospital")
		return
	}
	utils.SuccessResponse(c, hospital)
}

// CreateHospital creates a new hospital (super_admin only)
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var req service.HospitalInput
	if !utils.BindJSON(c, &req) {
		return
	}

	hospital, err := h.hospitalService.CreateHospital(middleware.GetIdentity(c), req)
	if err != nil {
		respondError(c, err, "Failed to create hospital")
		return
	}
	utils.CreatedResponse(c, hospital)
}

// UpdateHospital updates an existing hospital (super_admin only)
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	id, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}
	var req service.HospitalInput
	if !utils.BindJSON(c, &req) {
		return
	}

	hospital, err := h.hospitalService.UpdateHospital(middleware.GetIdentity(c), id, req)
	if err != nil {
		respondError(c, err, "Failed to update hospital")
		return
	}
	utils.SuccessResponse(c, hospital)
}

type statusRequest struct {
	Status models.HospitalStatus `json:"status"`
}

// SetHospitalStatus activates or deactivates a hospital (super_admin only)
func (h *HospitalHandler) SetHospitalStatus(c *gin.Context) {
	id, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}
	var req statusRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	if err := h.hospitalService.SetHospitalStatus(middleware.GetIdentity(c), id, req.Status); err != nil {
		respondError(c, err, "Failed to update hospital status")
		return
	}
	utils.MessageResponse(c, "Hospital status updated")
}

// CreateHospitalAdmin creates an admin account for a hospital (super_admin only)
func (h *HospitalHandler) CreateHospitalAdmin(c *gin.Context) {
	id, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}
	var req service.HospitalAdminInput
	if !utils.BindJSON(c, &req) {
		return
	}

	user, err := h.hospitalService.CreateHospitalAdmin(middleware.GetIdentity(c), id, req)
	if err != nil {
		respondError(c, err, "Failed to create hospital admin")
		return
	}
	utils.CreatedResponse(c, user)
}

// GetHospitalAdmins lists the admins of a hospital
func (h *HospitalHandler) GetHospitalAdmins(c *gin.Context) {
	id, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}

	admins, err := h.hospitalService.GetHospitalAdmins(middleware.GetIdentity(c), id)
	if err != nil {
		respondError(c, err, "Failed to fetch hospital admins")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"admins": admins,
		"count":  len(admins),
	})
}

package handler

import (
	"hospital-management/internal/middleware"
	"hospital-management/internal/service"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorService *service.DoctorService
}

func NewDoctorHandler(doctorService *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{
		doctorService: doctorService,
	}
}

// GetDoctors lists doctors of a hospital, optionally filtered by ?department_id=
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	hospitalID, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}
	departmentID, ok := queryID(c, "department_id")
	if !ok {
		return
	}

	doctors, err := h.doctorService.GetDoctorsByHospitalID(middleware.GetIdentity(c), hospitalID, departmentID)
	if err != nil {
		respondError(c, err, "Failed to fetch doctors")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetDoctor retrieves one doctor
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, ok := parseID(c, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorService.GetDoctorByID(id)
	if err != nil {
		respondError(c, err, "Failed to fetch doctor")
		return
	}
	utils.SuccessResponse(c, doctor)
}

// CreateDoctor creates a doctor account in a hospital
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	hospitalID, ok := parseID(c, "hospital_id", "hospital")
	if !ok {
		return
	}
	var req service.DoctorInput
	if !utils.BindJSON(c, &req) {
		return
	}

	doctor, err := h.doctorService.CreateDoctor(middleware.GetIdentity(c), hospitalID, req)
	if err != nil {
		respondError(c, err, "Failed to create doctor")
		return
	}
	utils.CreatedResponse(c, doctor)
}

// GetSlots lists a doctor's time slots on ?date=YYYY-MM-DD
func (h *DoctorHandler) GetSlots(c *gin.Context) {
	id, ok := parseID(c, "id", "doctor")
	if !ok {
		return
	}
	date := c.Query("date")

	slots, err := h.doctorService.AvailableSlots(id, date)
	if err != nil {
		respondError(c, err, "Failed to fetch time slots")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"date":  date,
		"slots": slots,
	})
}

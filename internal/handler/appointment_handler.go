package handler

import (
	"net/http"
	"strconv"

	"hospital-management/internal/middleware"
	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// CreateAppointment books an appointment
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req service.AppointmentInput
	if !utils.BindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(middleware.GetIdentity(c), req)
	if err != nil {
		respondError(c, err, "Failed to create appointment")
		return
	}
	utils.CreatedResponse(c, appointment)
}

// GetAppointments lists appointments visible to the caller.
// Query: status, date, from_date, hospital_id, department_id, doctor_id, patient_id, sort=newest, limit
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	filter := repository.AppointmentFilter{
		Status:   models.AppointmentStatus(c.Query("status")),
		Date:     c.Query("date"),
		FromDate: c.Query("from_date"),
		Newest:   c.Query("sort") == "newest",
	}

	var ok bool
	if filter.HospitalID, ok = queryID(c, "hospital_id"); !ok {
		return
	}
	if filter.DepartmentID, ok = queryID(c, "department_id"); !ok {
		return
	}
	if filter.DoctorID, ok = queryID(c, "doctor_id"); !ok {
		return
	}
	if filter.PatientID, ok = queryID(c, "patient_id"); !ok {
		return
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	appointments, err := h.appointmentService.GetAppointments(middleware.GetIdentity(c), filter)
	if err != nil {
		respondError(c, err, "Failed to fetch appointments")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetAppointment retrieves one appointment
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetAppointmentByID(middleware.GetIdentity(c), id)
	if err != nil {
		respondError(c, err, "Failed to fetch appointment")
		return
	}
	utils.SuccessResponse(c, appointment)
}

// UpdateStatus moves an appointment to completed, cancelled or missed
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}
	var req service.StatusInput
	if !utils.BindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(middleware.GetIdentity(c), id, req)
	if err != nil {
		respondError(c, err, "Failed to update appointment")
		return
	}
	utils.SuccessResponse(c, appointment)
}

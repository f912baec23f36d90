package service

import (
	"fmt"
	"strings"
	"time"

	"hospital-management/internal/config"
	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/session"

	"go.uber.org/zap"
)

type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	hospitalRepo    *repository.HospitalRepository
	departmentRepo  *repository.DepartmentRepository
	profileRepo     *repository.ProfileRepository
	cfg             config.AppointmentConfig
	rec             recorder
	now             func() time.Time
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	hospitalRepo *repository.HospitalRepository,
	departmentRepo *repository.DepartmentRepository,
	profileRepo *repository.ProfileRepository,
	auditRepo *repository.AuditRepository,
	notificationRepo *repository.NotificationRepository,
	cfg config.AppointmentConfig,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		hospitalRepo:    hospitalRepo,
		departmentRepo:  departmentRepo,
		profileRepo:     profileRepo,
		cfg:             cfg,
		rec:             newRecorder(auditRepo, notificationRepo, log),
		now:             time.Now,
	}
}

// AppointmentInput is the booking form. PatientID is only read for staff bookings.
type AppointmentInput struct {
	PatientID    uint   `json:"patient_id"`
	DoctorID     uint   `json:"doctor_id" validate:"required"`
	HospitalID   uint   `json:"hospital_id" validate:"required"`
	DepartmentID uint   `json:"department_id" validate:"required"`
	Date         string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"appointment_time" validate:"required,datetime=15:04"`
	Reason       string `json:"reason" validate:"omitempty,max=1000"`
}

// StatusInput moves an appointment to a terminal status
type StatusInput struct {
	Status models.AppointmentStatus `json:"status" validate:"required,oneof=completed cancelled missed"`
	Notes  string                   `json:"notes" validate:"omitempty,max=1000"`
}

func (s *AppointmentService) today() string {
	return s.now().Format(models.DateLayout)
}

// CreateAppointment books a scheduled appointment after checking that the
// hospital, department and doctor line up.
func (s *AppointmentService) CreateAppointment(identity session.Identity, in AppointmentInput) (*models.Appointment, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Reason = strings.TrimSpace(in.Reason)
	if err := validate(in); err != nil {
		return nil, err
	}
	var err error
	if in.Date, in.Time, err = canonicalSlot(in.Date, in.Time); err != nil {
		return nil, err
	}
	if in.Date < s.today() {
		return nil, invalid("Appointment date cannot be in the past")
	}

	patient, err := s.resolvePatient(identity, in.PatientID)
	if err != nil {
		return nil, err
	}

	if err := checkHospitalAccess(identity, in.HospitalID); err != nil {
		return nil, err
	}
	hospital, err := s.hospitalRepo.GetHospitalByID(in.HospitalID)
	if err != nil {
		return nil, err
	}
	if !hospital.IsActive() {
		return nil, invalid("Hospital is not accepting appointments")
	}

	department, err := s.departmentRepo.GetDepartmentInHospital(in.DepartmentID, hospital.ID)
	if err != nil {
		return nil, invalid("Department does not belong to the selected hospital")
	}
	if !department.IsActive {
		return nil, invalid("Department is inactive")
	}

	doctor, err := s.profileRepo.GetDoctorByID(in.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.HospitalID != hospital.ID || doctor.DepartmentID != department.ID {
		return nil, invalid("Doctor does not belong to the selected hospital and department")
	}

	if s.cfg.ConflictPolicy == config.ConflictPolicyReject {
		n, err := s.appointmentRepo.CountConflicts(doctor.ID, in.Date, in.Time)
		if err != nil {
			return nil, fmt.Errorf("failed to check doctor availability: %w", err)
		}
		if n > 0 {
			return nil, fmt.Errorf("%w: doctor already has an appointment on %s at %s", ErrConflict, in.Date, in.Time)
		}
	}

	appointment := &models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		HospitalID:      hospital.ID,
		DepartmentID:    department.ID,
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Reason:          in.Reason,
		Status:          models.StatusScheduled,
	}
	if err := s.appointmentRepo.CreateAppointment(appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	when := in.Date + " " + in.Time
	s.rec.notify(patient.UserID, "Appointment booked",
		fmt.Sprintf("Your appointment at %s is scheduled for %s.", hospital.Name, when),
		fmt.Sprintf("/appointments/%d", appointment.ID))
	s.rec.notify(doctor.UserID, "New appointment",
		fmt.Sprintf("A new appointment was booked for %s.", when),
		fmt.Sprintf("/appointments/%d", appointment.ID))
	s.rec.audit(identity.UserID, "appointment_create", fmt.Sprintf("Appointment %d booked", appointment.ID))

	return s.appointmentRepo.GetAppointmentByID(appointment.ID)
}

// canonicalSlot rewrites date and clock in their zero-padded layouts so that
// equal slots compare and sort equal ("9:30" becomes "09:30").
func canonicalSlot(date, clock string) (string, string, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", "", invalid("appointment_date must use the format 2006-01-02")
	}
	at, err := time.Parse(models.TimeLayout, clock)
	if err != nil {
		return "", "", invalid("appointment_time must use the format 15:04")
	}
	return day.Format(models.DateLayout), at.Format(models.TimeLayout), nil
}

// resolvePatient picks the patient being booked: patients book for themselves,
// staff name the patient explicitly.
func (s *AppointmentService) resolvePatient(identity session.Identity, patientID uint) (*models.PatientProfile, error) {
	switch identity.Role {
	case models.RolePatient:
		return s.profileRepo.GetPatientByID(identity.ProfileID)
	case models.RoleHospitalAdmin, models.RoleSuperAdmin:
		if patientID == 0 {
			return nil, invalid("patient_id is required")
		}
		return s.profileRepo.GetPatientByID(patientID)
	default:
		return nil, fmt.Errorf("%w: your role cannot book appointments", ErrForbidden)
	}
}

// scopeFilter pins filter to what identity may see
func scopeFilter(identity session.Identity, filter repository.AppointmentFilter) repository.AppointmentFilter {
	switch identity.Role {
	case models.RolePatient:
		filter.PatientID = identity.ProfileID
	case models.RoleDoctor:
		filter.DoctorID = identity.ProfileID
	case models.RoleHospitalAdmin:
		filter.HospitalID = identity.HospitalID
	}
	return filter
}

// GetAppointments lists appointments visible to identity
func (s *AppointmentService) GetAppointments(identity session.Identity, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, invalid("status must be one of: scheduled, completed, cancelled, missed")
	}
	return s.appointmentRepo.GetAppointments(scopeFilter(identity, filter))
}

// GetAppointmentByID retrieves one appointment if identity may see it
func (s *AppointmentService) GetAppointmentByID(identity session.Identity, id uint) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(id)
	if err != nil {
		return nil, err
	}
	if !canView(identity, appointment) {
		return nil, fmt.Errorf("%w: this appointment is not yours", ErrForbidden)
	}
	return appointment, nil
}

func canView(identity session.Identity, a *models.Appointment) bool {
	switch identity.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleHospitalAdmin:
		return a.HospitalID == identity.HospitalID
	case models.RoleDoctor:
		return a.DoctorID == identity.ProfileID
	case models.RolePatient:
		return a.PatientID == identity.ProfileID
	}
	return false
}

// UpdateStatus applies a status transition. Only scheduled appointments move,
// and patients may only cancel their own.
func (s *AppointmentService) UpdateStatus(identity session.Identity, id uint, in StatusInput) (*models.Appointment, error) {
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validate(in); err != nil {
		return nil, err
	}

	appointment, err := s.appointmentRepo.GetAppointmentByID(id)
	if err != nil {
		return nil, err
	}
	if !canView(identity, appointment) {
		return nil, fmt.Errorf("%w: this appointment is not yours", ErrForbidden)
	}
	if identity.Role == models.RolePatient && in.Status != models.StatusCancelled {
		return nil, fmt.Errorf("%w: patients can only cancel appointments", ErrForbidden)
	}
	if !appointment.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w: appointment is already %s", ErrInvalidTransition, appointment.Status)
	}

	ok, err := s.appointmentRepo.UpdateStatus(id, appointment.Status, in.Status, in.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: appointment changed concurrently", ErrInvalidTransition)
	}

	title := "Appointment " + string(in.Status)
	message := fmt.Sprintf("Appointment on %s at %s is now %s.",
		appointment.AppointmentDate, appointment.AppointmentTime, in.Status)
	link := fmt.Sprintf("/appointments/%d", id)
	if appointment.Patient != nil && appointment.Patient.UserID != identity.UserID {
		s.rec.notify(appointment.Patient.UserID, title, message, link)
	}
	if appointment.Doctor != nil && appointment.Doctor.UserID != identity.UserID {
		s.rec.notify(appointment.Doctor.UserID, title, message, link)
	}
	s.rec.audit(identity.UserID, "appointment_status", fmt.Sprintf("Appointment %d set to %s", id, in.Status))

	return s.appointmentRepo.GetAppointmentByID(id)
}

// SweepMissed marks scheduled appointments dated before today as missed
func (s *AppointmentService) SweepMissed() (int64, error) {
	return s.appointmentRepo.MarkMissedBefore(s.today())
}

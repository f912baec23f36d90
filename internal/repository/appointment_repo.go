package repository

import (
	"context"

	"hospital-management/internal/models"

	"gorm.io/gorm"
)

// AppointmentFilter narrows appointment queries. Zero fields are ignored.
type AppointmentFilter struct {
	HospitalID   uint
	DoctorID     uint
	PatientID    uint
	DepartmentID uint
	Status       models.AppointmentStatus
	Date         string // exact appointment_date
	FromDate     string // appointment_date >= FromDate
	BeforeDate   string // appointment_date < BeforeDate
	Limit        int
	Newest       bool // order latest first
}

func (f AppointmentFilter) scope(db *gorm.DB) *gorm.DB {
	if f.HospitalID != 0 {
		db = db.Where("appointments.hospital_id = ?", f.HospitalID)
	}
	if f.DoctorID != 0 {
		db = db.Where("appointments.doctor_id = ?", f.DoctorID)
	}
	if f.PatientID != 0 {
		db = db.Where("appointments.patient_id = ?", f.PatientID)
	}
	if f.DepartmentID != 0 {
		db = db.Where("appointments.department_id = ?", f.DepartmentID)
	}
	if f.Status != "" {
		db = db.Where("appointments.status = ?", f.Status)
	}
	if f.Date != "" {
		db = db.Where("appointments.appointment_date = ?", f.Date)
	}
	if f.FromDate != "" {
		db = db.Where("appointments.appointment_date >= ?", f.FromDate)
	}
	if f.BeforeDate != "" {
		db = db.Where("appointments.appointment_date < ?", f.BeforeDate)
	}
	return db
}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// WithContext returns a repository whose queries are bound to ctx
func (r *AppointmentRepository) WithContext(ctx context.Context) *AppointmentRepository {
	return &AppointmentRepository{db: r.db.WithContext(ctx)}
}

// CreateAppointment creates a new appointment
func (r *AppointmentRepository) CreateAppointment(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// GetAppointmentByID retrieves an appointment with its parties preloaded
func (r *AppointmentRepository) GetAppointmentByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.withParties(r.db).First(&appointment, id).Error
	if err != nil {
		return nil, notFound(err, "appointment")
	}
	return &appointment, nil
}

// GetAppointments lists appointments matching filter ordered by date and time
func (r *AppointmentRepository) GetAppointments(filter AppointmentFilter) ([]models.Appointment, error) {
	var appointments []models.Appointment
	order := "appointments.appointment_date ASC, appointments.appointment_time ASC"
	if filter.Newest {
		order = "appointments.appointment_date DESC, appointments.appointment_time DESC"
	}
	q := r.withParties(r.db.Model(&models.Appointment{})).Scopes(filter.scope).Order(order)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	err := q.Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) withParties(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Patient.User").
		Preload("Doctor.User").
		Preload("Hospital").
		Preload("Department")
}

// CountAppointments counts appointments matching filter
func (r *AppointmentRepository) CountAppointments(filter AppointmentFilter) (int64, error) {
	var n int64
	err := r.db.Model(&models.Appointment{}).Scopes(filter.scope).Count(&n).Error
	return n, err
}

// CountByStatus groups matching appointments by status
func (r *AppointmentRepository) CountByStatus(filter AppointmentFilter) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.Model(&models.Appointment{}).
		Scopes(filter.scope).
		Select("appointments.status AS label, COUNT(*) AS count").
		Group("appointments.status").
		Order("appointments.status ASC").
		Scan(&rows).Error
	return rows, err
}

// CountByDepartment groups matching appointments by department name
func (r *AppointmentRepository) CountByDepartment(filter AppointmentFilter) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.Model(&models.Appointment{}).
		Scopes(filter.scope).
		Joins("INNER JOIN departments ON departments.id = appointments.department_id").
		Select("departments.name AS label, COUNT(*) AS count").
		Group("departments.id, departments.name").
		Order("departments.name ASC").
		Scan(&rows).Error
	return rows, err
}

// CountByHospital groups matching appointments by hospital name
func (r *AppointmentRepository) CountByHospital(filter AppointmentFilter) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.Model(&models.Appointment{}).
		Scopes(filter.scope).
		Joins("INNER JOIN hospitals ON hospitals.id = appointments.hospital_id").
		Select("hospitals.name AS label, COUNT(*) AS count").
		Group("hospitals.id, hospitals.name").
		Order("hospitals.name ASC").
		Scan(&rows).Error
	return rows, err
}

// CountConflicts counts live appointments holding the doctor's slot
func (r *AppointmentRepository) CountConflicts(doctorID uint, date, clock string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
			doctorID, date, clock, models.StatusCancelled).
		Count(&n).Error
	return n, err
}

// TakenTimes returns the booked times of a doctor on date, cancelled ones excluded
func (r *AppointmentRepository) TakenTimes(doctorID uint, date string) ([]string, error) {
	var times []string
	err := r.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?", doctorID, date, models.StatusCancelled).
		Distinct().
		Pluck("appointment_time", &times).Error
	return times, err
}

// UpdateStatus moves an appointment from one status to another.
// It returns false when the row was no longer in the from status.
func (r *AppointmentRepository) UpdateStatus(id uint, from, to models.AppointmentStatus, notes string) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if notes != "" {
		updates["notes"] = notes
	}
	res := r.db.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected == 1, res.Error
}

// MarkMissedBefore flags scheduled appointments dated before date as missed
func (r *AppointmentRepository) MarkMissedBefore(date string) (int64, error) {
	res := r.db.Model(&models.Appointment{}).
		Where("status = ? AND appointment_date < ?", models.StatusScheduled, date).
		Update("status", models.StatusMissed)
	return res.RowsAffected, res.Error
}

// HasCompletedAppointment reports whether patient saw doctor at least once
func (r *AppointmentRepository) HasCompletedAppointment(patientID, doctorID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.Appointment{}).
		Where("patient_id = ? AND doctor_id = ? AND status = ?", patientID, doctorID, models.StatusCompleted).
		Count(&n).Error
	return n > 0, err
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusMissed    AppointmentStatus = "missed"
)

// Date and time layouts used for appointment_date and appointment_time
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusMissed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusMissed
}

// CanTransitionTo reports whether s -> next is allowed.
// Only scheduled appointments move, and only to a terminal state.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	return s == StatusScheduled && next.IsTerminal()
}

// Badge maps a status to its display class. Unknown values fall back to warning.
func (s AppointmentStatus) Badge() string {
	switch s {
	case StatusScheduled:
		return "primary"
	case StatusCompleted:
		return "success"
	case StatusCancelled:
		return "danger"
	case StatusMissed:
		return "warning"
	default:
		return "warning"
	}
}

// Appointment links a patient and a doctor inside one hospital and department
type Appointment struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	PatientID       uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint              `gorm:"not null;index:idx_doctor_slot" json:"doctor_id"`
	HospitalID      uint              `gorm:"not null;index" json:"hospital_id"`
	DepartmentID    uint              `gorm:"not null;index" json:"department_id"`
	AppointmentDate string            `gorm:"size:10;not null;index:idx_doctor_slot" json:"appointment_date"`
	AppointmentTime string            `gorm:"size:5;not null;index:idx_doctor_slot" json:"appointment_time"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	Status          AppointmentStatus `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	Badge           string            `gorm:"-" json:"badge"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	// Relationships
	Patient    *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor     *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Hospital   *Hospital       `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Department *Department     `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// AfterFind fills the computed badge
func (a *Appointment) AfterFind(tx *gorm.DB) error {
	a.Badge = a.Status.Badge()
	return nil
}

// AfterSave keeps the badge in sync after create and update
func (a *Appointment) AfterSave(tx *gorm.DB) error {
	a.Badge = a.Status.Badge()
	return nil
}

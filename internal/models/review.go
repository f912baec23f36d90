package models

import "time"

// Review is a patient's rating of a doctor, hidden until approved
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PatientID  uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID   uint      `gorm:"not null;index" json:"doctor_id"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	IsApproved bool      `gorm:"default:false;index" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Review model
func (Review) TableName() string {
	return "reviews"
}

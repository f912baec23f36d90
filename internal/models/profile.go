package models

import "time"

// DoctorProfile extends a doctor User with hospital scoped fields
type DoctorProfile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	HospitalID      uint      `gorm:"not null;index" json:"hospital_id"`
	DepartmentID    uint      `gorm:"not null;index" json:"department_id"`
	Specialty       string    `gorm:"size:100;not null" json:"specialty"`
	Qualification   string    `gorm:"size:255" json:"qualification,omitempty"`
	ExperienceYears int       `gorm:"default:0" json:"experience_years"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName specifies the table name for DoctorProfile model
func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

func (d *DoctorProfile) SetUserID(id uint) { d.UserID = id }

// PatientProfile extends a patient User; patients are not tied to a hospital
type PatientProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	DateOfBirth string    `gorm:"size:10" json:"date_of_birth,omitempty"`
	Gender      string    `gorm:"size:10" json:"gender,omitempty"`
	BloodGroup  string    `gorm:"size:5" json:"blood_group,omitempty"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for PatientProfile model
func (PatientProfile) TableName() string {
	return "patient_profiles"
}

func (p *PatientProfile) SetUserID(id uint) { p.UserID = id }

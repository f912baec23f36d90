package models

import "time"

// Department belongs to exactly one hospital
type Department struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HospitalID  uint      `gorm:"not null;index" json:"hospital_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for Department model
func (Department) TableName() string {
	return "departments"
}

package models

import "time"

// HospitalStatus is either active or inactive
type HospitalStatus string

const (
	HospitalActive   HospitalStatus = "active"
	HospitalInactive HospitalStatus = "inactive"
)

// IsValid reports whether s is a known hospital status
func (s HospitalStatus) IsValid() bool {
	return s == HospitalActive || s == HospitalInactive
}

// Hospital is the tenant boundary: it owns departments, doctors and appointments
type Hospital struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   string         `gorm:"type:text" json:"address,omitempty"`
	Phone     string         `gorm:"size:20" json:"phone,omitempty"`
	Email     string         `gorm:"size:255" json:"email,omitempty"`
	Status    HospitalStatus `gorm:"size:10;not null;default:'active';index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}

// IsActive reports whether the hospital accepts bookings
func (h Hospital) IsActive() bool {
	return h.Status == HospitalActive
}

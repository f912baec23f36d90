package models

import "time"

// HospitalAdmin binds a hospital_admin user to the single hospital it manages
type HospitalAdmin struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	HospitalID uint      `gorm:"not null;index" json:"hospital_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for HospitalAdmin model
func (HospitalAdmin) TableName() string {
	return "hospital_admins"
}

func (a *HospitalAdmin) SetUserID(id uint) { a.UserID = id }

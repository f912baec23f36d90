package models

import "time"

// Role decides which dashboard and permissions apply to a user
type Role string

const (
	RolePatient       Role = "patient"
	RoleDoctor        Role = "doctor"
	RoleHospitalAdmin Role = "hospital_admin"
	RoleSuperAdmin    Role = "super_admin"
)

// Roles lists every recognised role
var Roles = []Role{RolePatient, RoleDoctor, RoleHospitalAdmin, RoleSuperAdmin}

// IsValid reports whether r is one of the recognised roles
func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DashboardPath is where a freshly logged in user is sent
func (r Role) DashboardPath() string {
	switch r {
	case RoleSuperAdmin:
		return "/super-admin/dashboard"
	case RoleHospitalAdmin:
		return "/hospital-admin/dashboard"
	case RoleDoctor:
		return "/doctor/dashboard"
	case RolePatient:
		return "/patient/dashboard"
	default:
		return "/login"
	}
}

// User represents the users table
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	Role         Role      `gorm:"size:20;not null;default:'patient';index" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Profile is implemented by the role specific rows that extend a User 1:1
type Profile interface {
	SetUserID(id uint)
}

package session

import "hospital-management/internal/models"

// Identity is the per-request view of a logged in user. It is built at login,
// stored server side, and passed by value to services.
type Identity struct {
	SessionID  string      `json:"session_id"`
	UserID     uint        `json:"user_id"`
	ProfileID  uint        `json:"profile_id"`
	HospitalID uint        `json:"hospital_id"`
	Role       models.Role `json:"role"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
}

// IsLoggedIn reports whether the identity came from a live session
func (i Identity) IsLoggedIn() bool {
	return i.SessionID != "" && i.UserID != 0
}

// HasRole reports whether the identity holds one of roles
func (i Identity) HasRole(roles ...models.Role) bool {
	if !i.IsLoggedIn() {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// CanAccessHospital reports whether the identity may act inside hospitalID.
// super_admin and patients are not hospital scoped.
func (i Identity) CanAccessHospital(hospitalID uint) bool {
	switch i.Role {
	case models.RoleSuperAdmin, models.RolePatient:
		return true
	case models.RoleHospitalAdmin, models.RoleDoctor:
		return i.HospitalID != 0 && i.HospitalID == hospitalID
	}
	return false
}

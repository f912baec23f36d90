package service

import (
	"fmt"
	"strings"

	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/session"

	"go.uber.org/zap"
)

type HospitalService struct {
	hospitalRepo *repository.HospitalRepository
	userRepo     *repository.UserRepository
	profileRepo  *repository.ProfileRepository
	rec          recorder
}

func NewHospitalService(
	hospitalRepo *repository.HospitalRepository,
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	auditRepo *repository.AuditRepository,
	log *zap.Logger,
) *HospitalService {
	return &HospitalService{
		hospitalRepo: hospitalRepo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		rec:          newRecorder(auditRepo, nil, log),
	}
}

// HospitalInput is the create/update form for a hospital
type HospitalInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
}

func (in *HospitalInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// HospitalAdminInput creates a hospital_admin account
type HospitalAdminInput struct {
	AccountInput
}

// GetAllHospitals lists hospitals. Only super_admin sees inactive ones.
func (s *HospitalService) GetAllHospitals(identity session.Identity) ([]models.Hospital, error) {
	return s.hospitalRepo.GetAllHospitals(identity.Role != models.RoleSuperAdmin)
}

// GetHospitalByID retrieves a hospital with access control
func (s *HospitalService) GetHospitalByID(identity session.Identity, id uint) (*models.Hospital, error) {
	if err := checkHospitalAccess(identity, id); err != nil {
		return nil, err
	}
	hospital, err := s.hospitalRepo.GetHospitalByID(id)
	if err != nil {
		return nil, err
	}
	if !hospital.IsActive() && identity.Role != models.RoleSuperAdmin {
		return nil, &repository.NotFoundError{Entity: "hospital"}
	}
	return hospital, nil
}

// CreateHospital creates a new active hospital (super_admin only)
func (s *HospitalService) CreateHospital(identity session.Identity, in HospitalInput) (*models.Hospital, error) {
	in.normalize()
	if err := validate(in); err != nil {
		return nil, err
	}

	hospital := &models.Hospital{
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
		Email:   in.Email,
		Status:  models.HospitalActive,
	}
	if err := s.hospitalRepo.CreateHospital(hospital); err != nil {
		return nil, fmt.Errorf("failed to create hospital: %w", err)
	}

	s.rec.audit(identity.UserID, "hospital_create", fmt.Sprintf("Created hospital: %s", hospital.Name))
	return hospital, nil
}

// UpdateHospital updates an existing hospital (super_admin only)
func (s *HospitalService) UpdateHospital(identity session.Identity, id uint, in HospitalInput) (*models.Hospital, error) {
	in.normalize()
	if err := validate(in); err != nil {
		return nil, err
	}

	hospital, err := s.hospitalRepo.GetHospitalByID(id)
	if err != nil {
		return nil, err
	}
	hospital.Name = in.Name
	hospital.Address = in.Address
	hospital.Phone = in.Phone
	hospital.Email = in.Email

	if err := s.hospitalRepo.UpdateHospital(hospital); err != nil {
		return nil, fmt.Errorf("failed to update hospital: %w", err)
	}

	s.rec.audit(identity.UserID, "hospital_update", fmt.Sprintf("Updated hospital: %s", hospital.Name))
	return hospital, nil
}

// SetHospitalStatus activates or deactivates a hospital (super_admin only)
func (s *HospitalService) SetHospitalStatus(identity session.Identity, id uint, status models.HospitalStatus) error {
	if !status.IsValid() {
		return invalid("status must be one of: active, inactive")
	}
	if err := s.hospitalRepo.SetStatus(id, status); err != nil {
		return err
	}
	s.rec.audit(identity.UserID, "hospital_status", fmt.Sprintf("Hospital %d set to %s", id, status))
	return nil
}

// CreateHospitalAdmin creates a hospital_admin account bound to hospitalID (super_admin only)
func (s *HospitalService) CreateHospitalAdmin(identity session.Identity, hospitalID uint, in HospitalAdminInput) (*models.User, error) {
	in.normalize()
	if err := validate(in); err != nil {
		return nil, err
	}
	if _, err := s.hospitalRepo.GetHospitalByID(hospitalID); err != nil {
		return nil, err
	}

	admin := &models.HospitalAdmin{HospitalID: hospitalID}
	user, err := createAccount(s.userRepo, in.AccountInput, models.RoleHospitalAdmin, admin)
	if err != nil {
		return nil, err
	}

	s.rec.audit(identity.UserID, "staff_create", fmt.Sprintf("Hospital admin %s created for hospital %d", user.Username, hospitalID))
	return user, nil
}

// GetHospitalAdmins lists the admins of a hospital
func (s *HospitalService) GetHospitalAdmins(identity session.Identity, hospitalID uint) ([]models.HospitalAdmin, error) {
	if err := checkHospitalAccess(identity, hospitalID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetHospitalAdminsByHospitalID(hospitalID)
}

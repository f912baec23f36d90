package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/session"
	"hospital-management/pkg/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	sessions    *session.Store
	rec         recorder
}

func NewAuthService(
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	auditRepo *repository.AuditRepository,
	sessions *session.Store,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessions:    sessions,
		rec:         newRecorder(auditRepo, nil, log),
	}
}

// LoginResponse represents the response structure for login and refresh
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Redirect  string       `json:"redirect"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID         uint        `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Role       models.Role `json:"role"`
	ProfileID  uint        `json:"profile_id,omitempty"`
	HospitalID uint        `json:"hospital_id,omitempty"`
}

// RegisterInput is the self-service patient signup form
type RegisterInput struct {
	AccountInput
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female other"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

// ProfileInput holds the fields a user may edit on their own account
type ProfileInput struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodGroup  string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

// MeResponse is the current user with the role profile attached
type MeResponse struct {
	User    *models.User `json:"user"`
	Profile interface{}  `json:"profile,omitempty"`
}

// Login authenticates by username or email and opens a session
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, invalid("Username/email and password are required")
	}

	user, err := s.userRepo.FindUserByUsernameOrEmail(identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	identity, err := s.identityFor(user)
	if err != nil {
		return nil, err
	}

	identity, err = s.sessions.Create(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	resp, err := s.issue(identity, user)
	if err != nil {
		_ = s.sessions.Destroy(ctx, identity.SessionID)
		return nil, err
	}

	s.rec.audit(user.ID, "user_login", fmt.Sprintf("User %s logged in", user.Username))
	return resp, nil
}

// identityFor resolves the role profile behind a user
func (s *AuthService) identityFor(user *models.User) (session.Identity, error) {
	identity := session.Identity{
		UserID:    user.ID,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	switch user.Role {
	case models.RolePatient:
		patient, err := s.profileRepo.GetPatientByUserID(user.ID)
		if err != nil {
			return identity, fmt.Errorf("failed to load patient profile: %w", err)
		}
		identity.ProfileID = patient.ID
	case models.RoleDoctor:
		doctor, err := s.profileRepo.GetDoctorByUserID(user.ID)
		if err != nil {
			return identity, fmt.Errorf("failed to load doctor profile: %w", err)
		}
		identity.ProfileID = doctor.ID
		identity.HospitalID = doctor.HospitalID
	case models.RoleHospitalAdmin:
		admin, err := s.profileRepo.GetHospitalAdminByUserID(user.ID)
		if err != nil {
			return identity, fmt.Errorf("failed to load hospital admin profile: %w", err)
		}
		identity.ProfileID = admin.ID
		identity.HospitalID = admin.HospitalID
	case models.RoleSuperAdmin:
	default:
		return identity, ErrUnrecognizedRole
	}
	return identity, nil
}

func (s *AuthService) issue(identity session.Identity, user *models.User) (*LoginResponse, error) {
	token, expiresAt, err := utils.GenerateSessionToken(identity.SessionID, identity.UserID, string(identity.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Redirect:  identity.Role.DashboardPath(),
		User: UserResponse{
			ID:         user.ID,
			Username:   user.Username,
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Role:       user.Role,
			ProfileID:  identity.ProfileID,
			HospitalID: identity.HospitalID,
		},
	}, nil
}

// Register creates a patient account. Nothing is written when validation fails.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	in.normalize()
	in.Gender = strings.ToLower(strings.TrimSpace(in.Gender))
	in.Address = strings.TrimSpace(in.Address)
	if err := validate(in); err != nil {
		return nil, err
	}

	patient := &models.PatientProfile{
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Address:     in.Address,
	}
	user, err := createAccount(s.userRepo, in.AccountInput, models.RolePatient, patient)
	if err != nil {
		return nil, err
	}

	s.rec.audit(user.ID, "user_registration", fmt.Sprintf("User %s registered", user.Username))
	return user, nil
}

// Logout destroys the session behind identity
func (s *AuthService) Logout(ctx context.Context, identity session.Identity) error {
	if err := s.sessions.Destroy(ctx, identity.SessionID); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	s.rec.audit(identity.UserID, "user_logout", "User logged out")
	return nil
}

// Refresh extends a live session and signs a fresh token for it
func (s *AuthService) Refresh(ctx context.Context, identity session.Identity) (*LoginResponse, error) {
	if err := s.sessions.Touch(ctx, identity.SessionID); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: session expired", ErrForbidden)
		}
		return nil, fmt.Errorf("failed to extend session: %w", err)
	}
	user, err := s.userRepo.GetUserByID(identity.UserID)
	if err != nil {
		return nil, err
	}
	return s.issue(identity, user)
}

// Me returns the session user and its role profile
func (s *AuthService) Me(identity session.Identity) (*MeResponse, error) {
	user, err := s.userRepo.GetUserByID(identity.UserID)
	if err != nil {
		return nil, err
	}

	resp := &MeResponse{User: user}
	switch identity.Role {
	case models.RolePatient:
		resp.Profile, err = s.profileRepo.GetPatientByUserID(user.ID)
	case models.RoleDoctor:
		resp.Profile, err = s.profileRepo.GetDoctorByID(identity.ProfileID)
	case models.RoleHospitalAdmin:
		resp.Profile, err = s.profileRepo.GetHospitalAdminByUserID(user.ID)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateProfile edits the session user's own account
func (s *AuthService) UpdateProfile(identity session.Identity, in ProfileInput) (*models.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Gender = strings.ToLower(strings.TrimSpace(in.Gender))
	if err := validate(in); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.EmailTakenByOther(in.Email, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, invalid("Email is already registered")
	}

	user, err := s.userRepo.GetUserByID(identity.UserID)
	if err != nil {
		return nil, err
	}
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email
	user.Phone = in.Phone

	var patient *models.PatientProfile
	if identity.Role == models.RolePatient {
		patient, err = s.profileRepo.GetPatientByUserID(user.ID)
		if err != nil {
			return nil, err
		}
		patient.DateOfBirth = in.DateOfBirth
		patient.Gender = in.Gender
		patient.BloodGroup = in.BloodGroup
		patient.Address = strings.TrimSpace(in.Address)
	}

	if err := s.userRepo.UpdateUser(user, patient); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// CreateSuperAdmin bootstraps a super_admin account from the CLI
func (s *AuthService) CreateSuperAdmin(in AccountInput) (*models.User, error) {
	in.normalize()
	in.ConfirmPassword = in.Password
	if err := validate(in); err != nil {
		return nil, err
	}
	user, err := createAccount(s.userRepo, in, models.RoleSuperAdmin, nil)
	if err != nil {
		return nil, err
	}
	s.rec.audit(user.ID, "staff_create", fmt.Sprintf("Super admin %s created", user.Username))
	return user, nil
}

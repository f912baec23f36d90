package service

import (
	"errors"
	"fmt"
	"strings"

	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/pkg/utils"
)

// AccountInput holds the user columns shared by every account creation path
type AccountInput struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"required,max=100"`
	LastName        string `json:"last_name" validate:"required,max=100"`
	Phone           string `json:"phone" validate:"omitempty,max=20"`
}

func (in *AccountInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
}

// maxPasswordBytes is the bcrypt input limit; the validator's max counts characters
const maxPasswordBytes = 72

// createAccount inserts a user with role and its profile atomically.
// Callers validate the input first so nothing is written for bad input.
func createAccount(userRepo *repository.UserRepository, in AccountInput, role models.Role, profile models.Profile) (*models.User, error) {
	if len(in.Password) > maxPasswordBytes {
		return nil, invalid("password must be at most 72 bytes")
	}

	usernameTaken, emailTaken, err := userRepo.UsernameOrEmailTaken(in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if usernameTaken {
		return nil, invalid("Username is already taken")
	}
	if emailTaken {
		return nil, invalid("Email is already registered")
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         role,
	}

	if err := userRepo.CreateUserWithProfile(user, profile); err != nil {
		if errors.Is(err, repository.ErrIncompleteAccount) {
			return nil, fmt.Errorf("%w: %v", ErrRegistrationIncomplete, err)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return user, nil
}

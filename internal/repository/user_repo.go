package repository

import (
	"strings"

	"hospital-management/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByUsernameOrEmail finds a user whose username equals identifier or whose
// email equals it case-insensitively. Emails are stored lower-cased.
func (r *UserRepository) FindUserByUsernameOrEmail(identifier string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// UsernameOrEmailTaken reports which of username and email already exist
func (r *UserRepository) UsernameOrEmailTaken(username, email string) (usernameTaken, emailTaken bool, err error) {
	var n int64
	if err = r.db.Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, false, err
	}
	usernameTaken = n > 0
	if err = r.db.Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, false, err
	}
	emailTaken = n > 0
	return usernameTaken, emailTaken, nil
}

// EmailTakenByOther reports whether email belongs to a user other than userID
func (r *UserRepository) EmailTakenByOther(email string, userID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&n).Error
	return n > 0, err
}

// CreateUserWithProfile inserts user and its role profile in one transaction.
// The profile receives the new user id before it is inserted. A nil profile inserts the user alone.
func (r *UserRepository) CreateUserWithProfile(user *models.User, profile models.Profile) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(user).Error; err != nil {
		return rollback(tx, err)
	}

	if profile != nil {
		profile.SetUserID(user.ID)
		if err := tx.Create(profile).Error; err != nil {
			return rollback(tx, err)
		}
	}

	return tx.Commit().Error
}

// UpdateUser saves the editable user columns and, when given, the patient profile
func (r *UserRepository) UpdateUser(user *models.User, patient *models.PatientProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(user).Select("first_name", "last_name", "email", "phone").Updates(user).Error
		if err != nil {
			return err
		}
		if patient == nil {
			return nil
		}
		return tx.Model(patient).Select("date_of_birth", "gender", "blood_group", "address").Updates(patient).Error
	})
}

// CountUsersByRole returns one row per role present
func (r *UserRepository) CountUsersByRole() ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.Model(&models.User{}).
		Select("role AS label, COUNT(*) AS count").
		Group("role").
		Order("role ASC").
		Scan(&rows).Error
	return rows, err
}

// CountUsersWithRole counts users holding role
func (r *UserRepository) CountUsersWithRole(role models.Role) (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

package repository

import (
	"hospital-management/internal/models"

	"gorm.io/gorm"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// GetAllHospitals retrieves hospitals ordered by name
func (r *HospitalRepository) GetAllHospitals(activeOnly bool) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	q := r.db.Order("name ASC")
	if activeOnly {
		q = q.Where("status = ?", models.HospitalActive)
	}
	err := q.Find(&hospitals).Error
	return hospitals, err
}

// GetHospitalByID retrieves a hospital by ID regardless of status
func (r *HospitalRepository) GetHospitalByID(id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	if err := r.db.First(&hospital, id).Error; err != nil {
		return nil, notFound(err, "hospital")
	}
	return &hospital, nil
}

// CreateHospital creates a new hospital
func (r *HospitalRepository) CreateHospital(hospital *models.Hospital) error {
	return r.db.Create(hospital).Error
}

// UpdateHospital updates an existing hospital
func (r *HospitalRepository) UpdateHospital(hospital *models.Hospital) error {
	return r.db.Save(hospital).Error
}

// SetStatus switches a hospital between active and inactive
func (r *HospitalRepository) SetStatus(id uint, status models.HospitalStatus) error {
	res := r.db.Model(&models.Hospital{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "hospital"}
	}
	return nil
}

// CountHospitals returns the total and active hospital counts
func (r *HospitalRepository) CountHospitals() (total, active int64, err error) {
	if err = r.db.Model(&models.Hospital{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&models.Hospital{}).Where("status = ?", models.HospitalActive).Count(&active).Error
	return total, active, err
}

package repository

import (
	"hospital-management/internal/models"

	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// GetDepartmentsByHospitalID retrieves the departments of a hospital
func (r *DepartmentRepository) GetDepartmentsByHospitalID(hospitalID uint, activeOnly bool) ([]models.Department, error) {
	var departments []models.Department
	q := r.db.Where("hospital_id = ?", hospitalID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&departments).Error
	return departments, err
}

// GetDepartmentByID retrieves a department by ID
func (r *DepartmentRepository) GetDepartmentByID(id uint) (*models.Department, error) {
	var department models.Department
	if err := r.db.First(&department, id).Error; err != nil {
		return nil, notFound(err, "department")
	}
	return &department, nil
}

// GetDepartmentInHospital retrieves a department only if it belongs to hospitalID
func (r *DepartmentRepository) GetDepartmentInHospital(id, hospitalID uint) (*models.Department, error) {
	var department models.Department
	err := r.db.Where("id = ? AND hospital_id = ?", id, hospitalID).First(&department).Error
	if err != nil {
		return nil, notFound(err, "department")
	}
	return &department, nil
}

// CreateDepartment creates a new department
func (r *DepartmentRepository) CreateDepartment(department *models.Department) error {
	return r.db.Create(department).Error
}

// UpdateDepartment updates an existing department
func (r *DepartmentRepository) UpdateDepartment(department *models.Department) error {
	return r.db.Save(department).Error
}

// SoftDeleteDepartment soft deletes a department by setting is_active to false
func (r *DepartmentRepository) SoftDeleteDepartment(id uint) error {
	return r.db.Model(&models.Department{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// CountDepartmentsByHospitalID counts departments of a hospital
func (r *DepartmentRepository) CountDepartmentsByHospitalID(hospitalID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Department{}).Where("hospital_id = ?", hospitalID).Count(&n).Error
	return n, err
}

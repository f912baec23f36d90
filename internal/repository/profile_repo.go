package repository

import (
	"hospital-management/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetPatientByUserID retrieves the patient profile of a user
func (r *ProfileRepository) GetPatientByUserID(userID uint) (*models.PatientProfile, error) {
	var patient models.PatientProfile
	if err := r.db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		return nil, notFound(err, "patient")
	}
	return &patient, nil
}

// GetPatientByID retrieves a patient profile with its user
func (r *ProfileRepository) GetPatientByID(id uint) (*models.PatientProfile, error) {
	var patient models.PatientProfile
	if err := r.db.Preload("User").First(&patient, id).Error; err != nil {
		return nil, notFound(err, "patient")
	}
	return &patient, nil
}

// GetDoctorByUserID retrieves the doctor profile of a user
func (r *ProfileRepository) GetDoctorByUserID(userID uint) (*models.DoctorProfile, error) {
	var doctor models.DoctorProfile
	if err := r.db.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		return nil, notFound(err, "doctor")
	}
	return &doctor, nil
}

// GetDoctorByID retrieves a doctor with user and department preloaded
func (r *ProfileRepository) GetDoctorByID(id uint) (*models.DoctorProfile, error) {
	var doctor models.DoctorProfile
	err := r.db.Preload("User").Preload("Department").First(&doctor, id).Error
	if err != nil {
		return nil, notFound(err, "doctor")
	}
	return &doctor, nil
}

// GetDoctorsByHospitalID lists doctors of a hospital, optionally narrowed to a department
func (r *ProfileRepository) GetDoctorsByHospitalID(hospitalID, departmentID uint) ([]models.DoctorProfile, error) {
	var doctors []models.DoctorProfile
	q := r.db.Where("hospital_id = ?", hospitalID)
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	err := q.Preload("User").Preload("Department").Order("id ASC").Find(&doctors).Error
	return doctors, err
}

// CountDoctorsByHospitalID counts doctors of a hospital
func (r *ProfileRepository) CountDoctorsByHospitalID(hospitalID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.DoctorProfile{}).Where("hospital_id = ?", hospitalID).Count(&n).Error
	return n, err
}

// GetHospitalAdminByUserID retrieves the hospital binding of a hospital_admin user
func (r *ProfileRepository) GetHospitalAdminByUserID(userID uint) (*models.HospitalAdmin, error) {
	var admin models.HospitalAdmin
	if err := r.db.Where("user_id = ?", userID).First(&admin).Error; err != nil {
		return nil, notFound(err, "hospital admin")
	}
	return &admin, nil
}

// GetHospitalAdminsByHospitalID lists admins bound to a hospital
func (r *ProfileRepository) GetHospitalAdminsByHospitalID(hospitalID uint) ([]models.HospitalAdmin, error) {
	var admins []models.HospitalAdmin
	err := r.db.Where("hospital_id = ?", hospitalID).Preload("User").Find(&admins).Error
	return admins, err
}

package service

import (
	"fmt"
	"strings"

	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/session"

	"go.uber.org/zap"
)

type DepartmentService struct {
	departmentRepo *repository.DepartmentRepository
	hospitalRepo   *repository.HospitalRepository
	rec            recorder
}

func NewDepartmentService(
	departmentRepo *repository.DepartmentRepository,
	hospitalRepo *repository.HospitalRepository,
	auditRepo *repository.AuditRepository,
	log *zap.Logger,
) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		hospitalRepo:   hospitalRepo,
		rec:            newRecorder(auditRepo, nil, log),
	}
}

// DepartmentInput is the create/update form for a department
type DepartmentInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// GetDepartmentsByHospitalID lists departments of a hospital.
// Staff of that hospital also see inactive departments.
func (s *DepartmentService) GetDepartmentsByHospitalID(identity session.Identity, hospitalID uint) ([]models.Department, error) {
	if _, err := s.hospitalRepo.GetHospitalByID(hospitalID); err != nil {
		return nil, err
	}
	activeOnly := !(identity.HasRole(models.RoleSuperAdmin) ||
		(identity.HasRole(models.RoleHospitalAdmin) && identity.HospitalID == hospitalID))
	return s.departmentRepo.GetDepartmentsByHospitalID(hospitalID, activeOnly)
}

// CreateDepartment creates a department in hospitalID
func (s *DepartmentService) CreateDepartment(identity session.Identity, hospitalID uint, in DepartmentInput) (*models.Department, error) {
	if err := checkHospitalAccess(identity, hospitalID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate(in); err != nil {
		return nil, err
	}
	if _, err := s.hospitalRepo.GetHospitalByID(hospitalID); err != nil {
		return nil, err
	}

	department := &models.Department{
		HospitalID:  hospitalID,
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
	}
	if err := s.departmentRepo.CreateDepartment(department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.rec.audit(identity.UserID, "department_create", fmt.Sprintf("Created department %s in hospital %d", department.Name, hospitalID))
	return department, nil
}

// UpdateDepartment renames or re-describes a department
func (s *DepartmentService) UpdateDepartment(identity session.Identity, hospitalID, departmentID uint, in DepartmentInput) (*models.Department, error) {
	if err := checkHospitalAccess(identity, hospitalID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate(in); err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.GetDepartmentInHospital(departmentID, hospitalID)
	if err != nil {
		return nil, err
	}
	department.Name = in.Name
	department.Description = in.Description
	if err := s.departmentRepo.UpdateDepartment(department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	s.rec.audit(identity.UserID, "department_update", fmt.Sprintf("Updated department %d", department.ID))
	return department, nil
}

// DeactivateDepartment soft deletes a department
func (s *DepartmentService) DeactivateDepartment(identity session.Identity, hospitalID, departmentID uint) error {
	if err := checkHospitalAccess(identity, hospitalID); err != nil {
		return err
	}
	if _, err := s.departmentRepo.GetDepartmentInHospital(departmentID, hospitalID); err != nil {
		return err
	}
	if err := s.departmentRepo.SoftDeleteDepartment(departmentID); err != nil {
		return fmt.Errorf("failed to deactivate department: %w", err)
	}
	s.rec.audit(identity.UserID, "department_delete", fmt.Sprintf("Deactivated department %d", departmentID))
	return nil
}

package service

import (
	"fmt"
	"strings"
	"time"

	"hospital-management/internal/config"
	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/session"

	"go.uber.org/zap"
)

type DoctorService struct {
	profileRepo     *repository.ProfileRepository
	userRepo        *repository.UserRepository
	departmentRepo  *repository.DepartmentRepository
	appointmentRepo *repository.AppointmentRepository
	cfg             config.AppointmentConfig
	rec             recorder
}

func NewDoctorService(
	profileRepo *repository.ProfileRepository,
	userRepo *repository.UserRepository,
	departmentRepo *repository.DepartmentRepository,
	appointmentRepo *repository.AppointmentRepository,
	auditRepo *repository.AuditRepository,
	cfg config.AppointmentConfig,
	log *zap.Logger,
) *DoctorService {
	return &DoctorService{
		profileRepo:     profileRepo,
		userRepo:        userRepo,
		departmentRepo:  departmentRepo,
		appointmentRepo: appointmentRepo,
		cfg:             cfg,
		rec:             newRecorder(auditRepo, nil, log),
	}
}

// DoctorInput creates a doctor account inside a hospital
type DoctorInput struct {
	AccountInput
	DepartmentID    uint   `json:"department_id" validate:"required"`
	Specialty       string `json:"specialty" validate:"required,max=100"`
	Qualification   string `json:"qualification" validate:"omitempty,max=255"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0,lte=80"`
}

// TimeSlot is one bookable interval of a doctor's day
type TimeSlot struct {
	Time      string `json:"time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// GetDoctorsByHospitalID lists doctors of a hospital, optionally in one department
func (s *DoctorService) GetDoctorsByHospitalID(identity session.Identity, hospitalID, departmentID uint) ([]models.DoctorProfile, error) {
	if err := checkHospitalAccess(identity, hospitalID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetDoctorsByHospitalID(hospitalID, departmentID)
}

// GetDoctorByID retrieves a doctor with user and department
func (s *DoctorService) GetDoctorByID(id uint) (*models.DoctorProfile, error) {
	return s.profileRepo.GetDoctorByID(id)
}

// CreateDoctor creates a doctor account in hospitalID
func (s *DoctorService) CreateDoctor(identity session.Identity, hospitalID uint, in DoctorInput) (*models.DoctorProfile, error) {
	if err := checkHospitalAccess(identity, hospitalID); err != nil {
		return nil, err
	}
	in.normalize()
	in.Specialty = strings.TrimSpace(in.Specialty)
	in.Qualification = strings.TrimSpace(in.Qualification)
	if err := validate(in); err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.GetDepartmentInHospital(in.DepartmentID, hospitalID)
	if err != nil {
		return nil, invalid("Department does not belong to this hospital")
	}
	if !department.IsActive {
		return nil, invalid("Department is inactive")
	}

	doctor := &models.DoctorProfile{
		HospitalID:      hospitalID,
		DepartmentID:    department.ID,
		Specialty:       in.Specialty,
		Qualification:   in.Qualification,
		ExperienceYears: in.ExperienceYears,
	}
	user, err := createAccount(s.userRepo, in.AccountInput, models.RoleDoctor, doctor)
	if err != nil {
		return nil, err
	}
	doctor.User = user
	doctor.Department = department

	s.rec.audit(identity.UserID, "staff_create", fmt.Sprintf("Doctor %s created in hospital %d", user.Username, hospitalID))
	return doctor, nil
}

// AvailableSlots lists the doctor's slots on date, marking booked ones unavailable
func (s *DoctorService) AvailableSlots(doctorID uint, date string) ([]TimeSlot, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, invalid("date must use the format YYYY-MM-DD")
	}
	date = day.Format(models.DateLayout)
	if _, err := s.profileRepo.GetDoctorByID(doctorID); err != nil {
		return nil, err
	}

	taken, err := s.appointmentRepo.TakenTimes(doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked times: %w", err)
	}
	return generateSlots(s.cfg.SlotDayStart, s.cfg.SlotDayEnd, s.cfg.SlotMinutes, taken)
}

// generateSlots walks from start to end in steps of minutes. A slot must end by end.
func generateSlots(start, end string, minutes int, taken []string) ([]TimeSlot, error) {
	from, err := time.Parse(models.TimeLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid slot day start %q: %w", start, err)
	}
	to, err := time.Parse(models.TimeLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid slot day end %q: %w", end, err)
	}
	if minutes <= 0 {
		return nil, fmt.Errorf("invalid slot length %d", minutes)
	}

	booked := make(map[string]bool, len(taken))
	for _, t := range taken {
		booked[t] = true
	}

	step := time.Duration(minutes) * time.Minute
	slots := []TimeSlot{}
	for current := from; !current.Add(step).After(to); current = current.Add(step) {
		label := current.Format(models.TimeLayout)
		slots = append(slots, TimeSlot{
			Time:      label,
			EndTime:   current.Add(step).Format(models.TimeLayout),
			Available: !booked[label],
		})
	}
	return slots, nil
}

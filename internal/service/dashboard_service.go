package service

import (
	"context"
	"fmt"
	"time"

	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/session"

	"golang.org/x/sync/errgroup"
)

const recentLimit = 10

// Chart is a chart-ready series
type Chart struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

func toChart(rows []repository.LabelCount) Chart {
	chart := Chart{Labels: make([]string, 0, len(rows)), Values: make([]int64, 0, len(rows))}
	for _, row := range rows {
		chart.Labels = append(chart.Labels, row.Label)
		chart.Values = append(chart.Values, row.Count)
	}
	return chart
}

type SuperAdminDashboard struct {
	TotalHospitals         int64                `json:"total_hospitals"`
	ActiveHospitals        int64                `json:"active_hospitals"`
	UsersByRole            map[string]int64     `json:"users_by_role"`
	TotalAppointments      int64                `json:"total_appointments"`
	AppointmentsByStatus   Chart                `json:"appointments_by_status"`
	AppointmentsByHospital Chart                `json:"appointments_by_hospital"`
	RecentAppointments     []models.Appointment `json:"recent_appointments"`
}

type HospitalAdminDashboard struct {
	HospitalID            uint                 `json:"hospital_id"`
	TotalDoctors          int64                `json:"total_doctors"`
	TotalDepartments      int64                `json:"total_departments"`
	TotalAppointments     int64                `json:"total_appointments"`
	TodayAppointmentCount int64                `json:"today_appointment_count"`
	PendingReviews        int64                `json:"pending_reviews"`
	AppointmentsByStatus  Chart                `json:"appointments_by_status"`
	AppointmentsByDept    Chart                `json:"appointments_by_department"`
	TodayAppointments     []models.Appointment `json:"today_appointments"`
	RecentAppointments    []models.Appointment `json:"recent_appointments"`
}

type DoctorDashboard struct {
	TodayAppointments    []models.Appointment `json:"today_appointments"`
	UpcomingAppointments []models.Appointment `json:"upcoming_appointments"`
	AppointmentsByStatus Chart                `json:"appointments_by_status"`
	AverageRating        float64              `json:"average_rating"`
	ReviewCount          int64                `json:"review_count"`
}

type PatientDashboard struct {
	UpcomingAppointments []models.Appointment `json:"upcoming_appointments"`
	RecentAppointments   []models.Appointment `json:"recent_appointments"`
	UnreadNotifications  int64                `json:"unread_notifications"`
}

// DashboardService aggregates read-only figures per role. Nothing is cached.
type DashboardService struct {
	hospitalRepo     *repository.HospitalRepository
	departmentRepo   *repository.DepartmentRepository
	userRepo         *repository.UserRepository
	profileRepo      *repository.ProfileRepository
	appointmentRepo  *repository.AppointmentRepository
	reviewRepo       *repository.ReviewRepository
	notificationRepo *repository.NotificationRepository
	now              func() time.Time
}

func NewDashboardService(
	hospitalRepo *repository.HospitalRepository,
	departmentRepo *repository.DepartmentRepository,
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	appointmentRepo *repository.AppointmentRepository,
	reviewRepo *repository.ReviewRepository,
	notificationRepo *repository.NotificationRepository,
) *DashboardService {
	return &DashboardService{
		hospitalRepo:     hospitalRepo,
		departmentRepo:   departmentRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		appointmentRepo:  appointmentRepo,
		reviewRepo:       reviewRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// ForIdentity builds the dashboard matching the session role
func (s *DashboardService) ForIdentity(ctx context.Context, identity session.Identity) (interface{}, error) {
	switch identity.Role {
	case models.RoleSuperAdmin:
		return s.SuperAdmin(ctx)
	case models.RoleHospitalAdmin:
		return s.HospitalAdmin(ctx, identity.HospitalID)
	case models.RoleDoctor:
		return s.Doctor(ctx, identity.ProfileID)
	case models.RolePatient:
		return s.Patient(ctx, identity.ProfileID, identity.UserID)
	}
	return nil, ErrUnrecognizedRole
}

// SuperAdmin aggregates global figures
func (s *DashboardService) SuperAdmin(ctx context.Context) (*SuperAdminDashboard, error) {
	d := &SuperAdminDashboard{}
	all := repository.AppointmentFilter{}
	g, gctx := errgroup.WithContext(ctx)
	appointments := s.appointmentRepo.WithContext(gctx)

	g.Go(func() (err error) {
		d.TotalHospitals, d.ActiveHospitals, err = s.hospitalRepo.CountHospitals()
		return err
	})
	g.Go(func() error {
		rows, err := s.userRepo.CountUsersByRole()
		if err != nil {
			return err
		}
		d.UsersByRole = make(map[string]int64, len(models.Roles))
		for _, role := range models.Roles {
			d.UsersByRole[string(role)] = 0
		}
		for _, row := range rows {
			d.UsersByRole[row.Label] = row.Count
		}
		return nil
	})
	g.Go(func() (err error) {
		d.TotalAppointments, err = appointments.CountAppointments(all)
		return err
	})
	g.Go(func() error {
		rows, err := appointments.CountByStatus(all)
		d.AppointmentsByStatus = toChart(rows)
		return err
	})
	g.Go(func() error {
		rows, err := appointments.CountByHospital(all)
		d.AppointmentsByHospital = toChart(rows)
		return err
	})
	g.Go(func() (err error) {
		d.RecentAppointments, err = appointments.GetAppointments(repository.AppointmentFilter{Newest: true, Limit: recentLimit})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build super admin dashboard: %w", err)
	}
	return d, nil
}

// HospitalAdmin aggregates figures for one hospital. Every query is filtered by hospitalID.
func (s *DashboardService) HospitalAdmin(ctx context.Context, hospitalID uint) (*HospitalAdminDashboard, error) {
	if hospitalID == 0 {
		return nil, fmt.Errorf("%w: no hospital bound to this account", ErrForbidden)
	}
	d := &HospitalAdminDashboard{HospitalID: hospitalID}
	scoped := repository.AppointmentFilter{HospitalID: hospitalID}
	today := scoped
	today.Date = s.now().Format(models.DateLayout)
	g, gctx := errgroup.WithContext(ctx)
	appointments := s.appointmentRepo.WithContext(gctx)

	g.Go(func() (err error) {
		d.TotalDoctors, err = s.profileRepo.CountDoctorsByHospitalID(hospitalID)
		return err
	})
	g.Go(func() (err error) {
		d.TotalDepartments, err = s.departmentRepo.CountDepartmentsByHospitalID(hospitalID)
		return err
	})
	g.Go(func() (err error) {
		d.TotalAppointments, err = appointments.CountAppointments(scoped)
		return err
	})
	g.Go(func() (err error) {
		d.TodayAppointmentCount, err = appointments.CountAppointments(today)
		return err
	})
	g.Go(func() (err error) {
		d.PendingReviews, err = s.reviewRepo.CountPendingReviews(hospitalID)
		return err
	})
	g.Go(func() error {
		rows, err := appointments.CountByStatus(scoped)
		d.AppointmentsByStatus = toChart(rows)
		return err
	})
	g.Go(func() error {
		rows, err := appointments.CountByDepartment(scoped)
		d.AppointmentsByDept = toChart(rows)
		return err
	})
	g.Go(func() (err error) {
		d.TodayAppointments, err = appointments.GetAppointments(today)
		return err
	})
	g.Go(func() (err error) {
		recent := scoped
		recent.Newest = true
		recent.Limit = recentLimit
		d.RecentAppointments, err = appointments.GetAppointments(recent)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build hospital dashboard: %w", err)
	}
	return d, nil
}

// Doctor aggregates a doctor's schedule and rating
func (s *DashboardService) Doctor(ctx context.Context, doctorID uint) (*DoctorDashboard, error) {
	d := &DoctorDashboard{}
	today := s.now().Format(models.DateLayout)
	own := repository.AppointmentFilter{DoctorID: doctorID}
	g, gctx := errgroup.WithContext(ctx)
	appointments := s.appointmentRepo.WithContext(gctx)

	g.Go(func() (err error) {
		d.TodayAppointments, err = appointments.GetAppointments(repository.AppointmentFilter{DoctorID: doctorID, Date: today})
		return err
	})
	g.Go(func() (err error) {
		d.UpcomingAppointments, err = appointments.GetAppointments(repository.AppointmentFilter{
			DoctorID: doctorID,
			Status:   models.StatusScheduled,
			FromDate: today,
			Limit:    recentLimit,
		})
		return err
	})
	g.Go(func() error {
		rows, err := appointments.CountByStatus(own)
		d.AppointmentsByStatus = toChart(rows)
		return err
	})
	g.Go(func() (err error) {
		d.AverageRating, d.ReviewCount, err = s.reviewRepo.RatingSummary(doctorID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build doctor dashboard: %w", err)
	}
	return d, nil
}

// Patient aggregates a patient's appointments and unread notifications
func (s *DashboardService) Patient(ctx context.Context, patientID, userID uint) (*PatientDashboard, error) {
	d := &PatientDashboard{}
	today := s.now().Format(models.DateLayout)
	g, gctx := errgroup.WithContext(ctx)
	appointments := s.appointmentRepo.WithContext(gctx)

	g.Go(func() (err error) {
		d.UpcomingAppointments, err = appointments.GetAppointments(repository.AppointmentFilter{
			PatientID: patientID,
			Status:    models.StatusScheduled,
			FromDate:  today,
			Limit:     recentLimit,
		})
		return err
	})
	g.Go(func() (err error) {
		d.RecentAppointments, err = appointments.GetAppointments(repository.AppointmentFilter{
			PatientID: patientID,
			Newest:    true,
			Limit:     recentLimit,
		})
		return err
	})
	g.Go(func() (err error) {
		d.UnreadNotifications, err = s.notificationRepo.CountUnread(userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build patient dashboard: %w", err)
	}
	return d, nil
}

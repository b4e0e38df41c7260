package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/repository"
	"github.com/JorgeWendell/clinics/internal/scheduling"
)

const (
	topDoctorsLimit = 10
	chartSpanDays   = 10 // days on each side of today
)

// DashboardService clinic statistics
type DashboardService interface {
	// Stats defaults the period to today through one month ahead.
	Stats(ctx context.Context, clinicID string, req *dto.DashboardRequest) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	now    Clock
	logger *zap.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(repo *repository.Repository, now Clock, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, now: now, logger: logger}
}

func (s *dashboardService) Stats(ctx context.Context, clinicID string, req *dto.DashboardRequest) (*dto.DashboardResponse, error) {
	today := scheduling.DateOf(s.now())

	from, err := parseOptionalDate("from", req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to", req.To)
	if err != nil {
		return nil, err
	}
	if from.IsZero() {
		from = today
	}
	if to.IsZero() {
		to = from.AddMonths(1)
	}
	if to.Before(from) {
		return nil, invalidField("to", "must not be before from")
	}

	resp := &dto.DashboardResponse{From: from.String(), To: to.String()}

	if resp.Appointments, resp.RevenueInCents, err = s.repo.Dashboard.Totals(ctx, clinicID, from, to); err != nil {
		return nil, s.fail("totals", err)
	}
	if resp.Pets, err = s.repo.Pet.CountByClinic(ctx, clinicID); err != nil {
		return nil, s.fail("count pets", err)
	}
	if resp.Doctors, err = s.repo.Doctor.CountByClinic(ctx, clinicID); err != nil {
		return nil, s.fail("count doctors", err)
	}

	ranking, err := s.repo.Dashboard.TopDoctors(ctx, clinicID, from, to, topDoctorsLimit)
	if err != nil {
		return nil, s.fail("top doctors", err)
	}
	resp.TopDoctors = make([]dto.TopDoctor, 0, len(ranking))
	for _, r := range ranking {
		resp.TopDoctors = append(resp.TopDoctors, dto.TopDoctor{
			ID:             r.DoctorID,
			Name:           r.Name,
			Speciality:     r.Speciality,
			AvatarImageURL: r.AvatarImageURL,
			Appointments:   r.Appointments,
		})
	}

	todays, err := s.repo.Appointment.ListAll(ctx, repository.AppointmentFilter{ClinicID: clinicID, From: today, To: today})
	if err != nil {
		return nil, s.fail("today appointments", err)
	}
	resp.TodayAppointments = make([]dto.AppointmentResponse, 0, len(todays))
	for i := range todays {
		resp.TodayAppointments = append(resp.TodayAppointments, toAppointmentResponse(&todays[i]))
	}

	chartFrom, chartTo := today.AddDays(-chartSpanDays), today.AddDays(chartSpanDays)
	daily, err := s.repo.Dashboard.Daily(ctx, clinicID, chartFrom, chartTo)
	if err != nil {
		return nil, s.fail("daily chart", err)
	}
	resp.DailyChart = fillDailyChart(daily, chartFrom, chartTo)

	return resp, nil
}

// fillDailyChart returns one point per day in [from, to], zero where no row exists.
func fillDailyChart(rows []repository.DailyStat, from, to scheduling.Date) []dto.DailyPoint {
	byDate := make(map[scheduling.Date]repository.DailyStat, len(rows))
	for _, r := range rows {
		byDate[scheduling.DateOf(r.Date)] = r
	}

	var points []dto.DailyPoint
	for d := from; !to.Before(d); d = d.AddDays(1) {
		r := byDate[d]
		points = append(points, dto.DailyPoint{
			Date:           d.String(),
			Appointments:   r.Appointments,
			RevenueInCents: r.Revenue,
		})
	}
	return points
}

func (s *dashboardService) fail(what string, err error) error {
	s.logger.Error("dashboard query failed", zap.String("query", what), zap.Error(err))
	return err
}

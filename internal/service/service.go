package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JorgeWendell/clinics/config"
	"github.com/JorgeWendell/clinics/internal/repository"
	"github.com/JorgeWendell/clinics/internal/scheduling"
	"github.com/JorgeWendell/clinics/pkg/jwt"
	"github.com/JorgeWendell/clinics/pkg/redis"
)

// Service aggregates every service.
type Service struct {
	Auth        AuthService
	Clinic      ClinicService
	Doctor      DoctorService
	Pet         PetService
	Appointment AppointmentService
	Dashboard   DashboardService
	Export      ExportService
}

// NewService builds the aggregate. rdb may be nil; logout then cannot revoke tokens.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) (*Service, error) {
	loc, err := cfg.Scheduling.Location()
	if err != nil {
		return nil, fmt.Errorf("scheduling location: %w", err)
	}
	grids, err := scheduling.NewGridCache(cfg.Scheduling.GridCacheSize)
	if err != nil {
		return nil, err
	}
	clock := newClock(loc)

	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Clinic:      NewClinicService(repo, jwtMgr, logger),
		Doctor:      NewDoctorService(repo, logger),
		Pet:         NewPetService(repo, logger),
		Appointment: NewAppointmentService(repo, grids, clock, logger),
		Dashboard:   NewDashboardService(repo, clock, logger),
		Export:      NewExportService(repo, clock, logger),
	}, nil
}

// Clock returns the current instant in the scheduling location.
type Clock func() time.Time

func newClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

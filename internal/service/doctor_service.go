package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/model"
	"github.com/JorgeWendell/clinics/internal/repository"
	"github.com/JorgeWendell/clinics/internal/scheduling"
	pkgerrors "github.com/JorgeWendell/clinics/pkg/errors"
)

// ── doctor errors ──

var (
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrDoctorEmailTaken = errors.New("a doctor with this email already exists")
)

// generatedEmailDomain hosts addresses made up for doctors registered without one.
const generatedEmailDomain = "clinica.local"

// DoctorService doctor management
type DoctorService interface {
	// Upsert creates the doctor when req.ID is empty, otherwise replaces it.
	Upsert(ctx context.Context, clinicID, callerID string, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, bool, error)
	Get(ctx context.Context, clinicID, id string) (*dto.DoctorResponse, error)
	List(ctx context.Context, clinicID string) ([]dto.DoctorResponse, error)
	Delete(ctx context.Context, clinicID, id string) error
}

type doctorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDoctorService creates a DoctorService.
func NewDoctorService(repo *repository.Repository, logger *zap.Logger) DoctorService {
	return &doctorService{repo: repo, logger: logger}
}

func (s *doctorService) Upsert(ctx context.Context, clinicID, callerID string, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, bool, error) {
	fromTime, err := normalizeTimeField("available_from_time", req.AvailableFromTime)
	if err != nil {
		return nil, false, err
	}
	toTime, err := normalizeTimeField("available_to_time", req.AvailableToTime)
	if err != nil {
		return nil, false, err
	}

	doctor := &model.Doctor{
		ClinicID:                clinicID,
		Name:                    strings.TrimSpace(req.Name),
		Email:                   strings.TrimSpace(req.Email),
		Speciality:              strings.TrimSpace(req.Speciality),
		AvatarImageURL:          req.AvatarImageURL,
		AvailableFromWeekDay:    derefInt(req.AvailableFromWeekDay),
		AvailableToWeekDay:      derefInt(req.AvailableToWeekDay),
		AvailableFromTime:       fromTime,
		AvailableToTime:         toTime,
		AppointmentPriceInCents: derefInt(req.AppointmentPriceInCents),
	}
	if err := validateWindow(doctor.Window()); err != nil {
		return nil, false, err
	}
	if doctor.AppointmentPriceInCents < 0 {
		return nil, false, invalidField("appointment_price_in_cents", "must not be negative")
	}
	if doctor.Email == "" {
		doctor.Email = generateDoctorEmail(doctor.Name)
	}
	doctor.UpdatedBy = &callerID

	created := req.ID == ""
	if created {
		doctor.CreatedBy = &callerID
		err = s.repo.Doctor.Create(ctx, doctor)
	} else {
		var existing *model.Doctor
		existing, err = s.getOwned(ctx, clinicID, req.ID)
		if err != nil {
			return nil, false, err
		}
		doctor.DoctorID = existing.DoctorID
		doctor.CreatedAt = existing.CreatedAt
		doctor.CreatedBy = existing.CreatedBy
		err = s.repo.Doctor.Update(ctx, doctor)
	}
	if err != nil {
		if errors.Is(err, pkgerrors.ErrUniqueViolation) {
			return nil, false, ErrDoctorEmailTaken
		}
		s.logger.Error("save doctor failed", zap.String("clinic_id", clinicID), zap.Error(err))
		return nil, false, err
	}

	resp := toDoctorResponse(doctor)
	return &resp, created, nil
}

func (s *doctorService) Get(ctx context.Context, clinicID, id string) (*dto.DoctorResponse, error) {
	doctor, err := s.getOwned(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	resp := toDoctorResponse(doctor)
	return &resp, nil
}

func (s *doctorService) List(ctx context.Context, clinicID string) ([]dto.DoctorResponse, error) {
	doctors, err := s.repo.Doctor.ListByClinic(ctx, clinicID)
	if err != nil {
		s.logger.Error("list doctors failed", zap.String("clinic_id", clinicID), zap.Error(err))
		return nil, err
	}
	list := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		list = append(list, toDoctorResponse(&doctors[i]))
	}
	return list, nil
}

func (s *doctorService) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.getOwned(ctx, clinicID, id); err != nil {
		return err
	}
	if err := s.repo.Doctor.Delete(ctx, id); err != nil {
		s.logger.Error("delete doctor failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// getOwned loads a doctor of the clinic; other clinics' doctors are not found.
func (s *doctorService) getOwned(ctx context.Context, clinicID, id string) (*model.Doctor, error) {
	doctor, err := s.repo.Doctor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("get doctor failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if doctor.ClinicID != clinicID {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func validateWindow(w scheduling.Window) error {
	err := w.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, scheduling.ErrInvalidWeekDay):
		return invalidField("available_from_week_day", "week days must be between 0 and 6")
	case errors.Is(err, scheduling.ErrEmptyTimeRange):
		return invalidField("available_to_time", "start time must be before end time")
	default:
		return invalidField("available_from_time", err.Error())
	}
}

// generateDoctorEmail builds "first.last.<8 hex>@clinica.local".
func generateDoctorEmail(name string) string {
	local := strings.Join(strings.Fields(strings.ToLower(name)), ".")
	return fmt.Sprintf("%s.%s@%s", local, uuid.NewString()[:8], generatedEmailDomain)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func toDoctorResponse(d *model.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:                      d.DoctorID,
		Name:                    d.Name,
		Email:                   d.Email,
		Speciality:              d.Speciality,
		AvatarImageURL:          d.AvatarImageURL,
		AvailableFromWeekDay:    d.AvailableFromWeekDay,
		AvailableToWeekDay:      d.AvailableToWeekDay,
		AvailableFromTime:       d.AvailableFromTime,
		AvailableToTime:         d.AvailableToTime,
		AppointmentPriceInCents: d.AppointmentPriceInCents,
		Availability: dto.Availability{
			From: describeAvailability(d.AvailableFromWeekDay, d.AvailableFromTime),
			To:   describeAvailability(d.AvailableToWeekDay, d.AvailableToTime),
		},
	}
}

// describeAvailability renders e.g. "Monday 08:00".
func describeAvailability(weekDay int, clock string) string {
	day := "?"
	if weekDay >= 0 && weekDay <= 6 {
		day = time.Weekday(weekDay).String()
	}
	t, err := scheduling.ParseTimeOfDay(clock)
	if err != nil {
		return day
	}
	return fmt.Sprintf("%s %02d:%02d", day, t.Hour, t.Minute)
}

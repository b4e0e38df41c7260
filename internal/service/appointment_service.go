package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/model"
	"github.com/JorgeWendell/clinics/internal/repository"
	"github.com/JorgeWendell/clinics/internal/scheduling"
	pkgerrors "github.com/JorgeWendell/clinics/pkg/errors"
)

// ── appointment errors ──

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrSlotUnavailable the requested date or time is outside the doctor's availability.
	ErrSlotUnavailable = errors.New("the doctor is not available at the requested date and time")
)

// AppointmentService booking operations. Every call is scoped to the caller's clinic;
// records of other clinics are reported as not found.
type AppointmentService interface {
	Book(ctx context.Context, clinicID, callerID string, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, clinicID, callerID, id string, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, clinicID, id string) error
	Get(ctx context.Context, clinicID, id string) (*dto.AppointmentResponse, error)
	List(ctx context.Context, clinicID string, req *dto.AppointmentListRequest) ([]dto.AppointmentResponse, int64, error)
	// AvailableSlots returns the doctor's open slots on date, excluding booked times.
	AvailableSlots(ctx context.Context, clinicID, doctorID, date string) (*dto.AvailableSlotsResponse, error)
}

type appointmentService struct {
	repo   *repository.Repository
	grids  *scheduling.GridCache
	now    Clock
	logger *zap.Logger
}

// NewAppointmentService creates an AppointmentService.
func NewAppointmentService(repo *repository.Repository, grids *scheduling.GridCache, now Clock, logger *zap.Logger) AppointmentService {
	return &appointmentService{repo: repo, grids: grids, now: now, logger: logger}
}

// ── Book ──

func (s *appointmentService) Book(ctx context.Context, clinicID, callerID string, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseDateField("date", req.Date)
	if err != nil {
		return nil, err
	}
	slot := ""
	if req.Time != "" {
		if slot, err = normalizeTimeField("time", req.Time); err != nil {
			return nil, err
		}
	}

	appt := &model.Appointment{
		ClinicID: clinicID,
		DoctorID: req.DoctorID,
		PetID:    req.PetID,
		Date:     model.NewDate(date),
	}
	if slot != "" {
		appt.Time = &slot
	}
	appt.CreatedBy = &callerID
	appt.UpdatedBy = &callerID

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.ensurePet(ctx, tx, clinicID, req.PetID); err != nil {
			return err
		}
		doctor, err := s.lockDoctor(ctx, tx, clinicID, req.DoctorID)
		if err != nil {
			return err
		}
		if err := s.ensureAvailable(doctor, date, slot); err != nil {
			return err
		}
		key := SlotKey{ClinicID: clinicID, DoctorID: doctor.DoctorID, Date: date, Time: slot}
		if err := checkConflict(ctx, tx.Appointment, key, ""); err != nil {
			return err
		}
		return tx.Appointment.Create(ctx, appt)
	})
	if err != nil {
		return nil, s.translate(err, "book appointment")
	}

	s.logger.Info("appointment booked",
		zap.String("appointment_id", appt.AppointmentID),
		zap.String("doctor_id", appt.DoctorID),
		zap.String("date", date.String()),
		zap.String("time", slot),
	)
	return s.Get(ctx, clinicID, appt.AppointmentID)
}

// ── Reschedule ──

func (s *appointmentService) Reschedule(ctx context.Context, clinicID, callerID, id string, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		current, err := tx.Appointment.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		if current.ClinicID != clinicID {
			return ErrAppointmentNotFound
		}

		// merge the partial input over the stored appointment
		next := *current
		next.Doctor, next.Pet = nil, nil
		if req.PetID != nil && *req.PetID != "" {
			next.PetID = *req.PetID
		}
		if req.DoctorID != nil && *req.DoctorID != "" {
			next.DoctorID = *req.DoctorID
		}
		if req.Date != nil && *req.Date != "" {
			date, err := parseDateField("date", *req.Date)
			if err != nil {
				return err
			}
			next.Date = model.NewDate(date)
		}
		if req.Time != nil {
			if *req.Time == "" {
				next.Time = nil
			} else {
				slot, err := normalizeTimeField("time", *req.Time)
				if err != nil {
					return err
				}
				next.Time = &slot
			}
		}
		next.UpdatedBy = &callerID

		if next.PetID != current.PetID {
			if err := s.ensurePet(ctx, tx, clinicID, next.PetID); err != nil {
				return err
			}
		}

		doctor, err := s.lockDoctor(ctx, tx, clinicID, next.DoctorID)
		if err != nil {
			return err
		}

		slotChanged := next.DoctorID != current.DoctorID ||
			next.Date.Date != current.Date.Date ||
			next.TimeValue() != current.TimeValue()
		if slotChanged {
			if err := s.ensureAvailable(doctor, next.Date.Date, next.TimeValue()); err != nil {
				return err
			}
		}

		key := SlotKey{ClinicID: clinicID, DoctorID: next.DoctorID, Date: next.Date.Date, Time: next.TimeValue()}
		if err := checkConflict(ctx, tx.Appointment, key, current.AppointmentID); err != nil {
			return err
		}
		return tx.Appointment.Update(ctx, &next)
	})
	if err != nil {
		return nil, s.translate(err, "reschedule appointment")
	}

	s.logger.Info("appointment rescheduled", zap.String("appointment_id", id))
	return s.Get(ctx, clinicID, id)
}

// ── Cancel ──

func (s *appointmentService) Cancel(ctx context.Context, clinicID, id string) error {
	appt, err := s.repo.Appointment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("get appointment failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if appt.ClinicID != clinicID {
		return ErrAppointmentNotFound
	}

	if err := s.repo.Appointment.Delete(ctx, id); err != nil {
		s.logger.Error("cancel appointment failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("appointment cancelled", zap.String("appointment_id", id))
	return nil
}

// ── queries ──

func (s *appointmentService) Get(ctx context.Context, clinicID, id string) (*dto.AppointmentResponse, error) {
	appt, err := s.repo.Appointment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("get appointment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if appt.ClinicID != clinicID {
		return nil, ErrAppointmentNotFound
	}
	resp := toAppointmentResponse(appt)
	return &resp, nil
}

func (s *appointmentService) List(ctx context.Context, clinicID string, req *dto.AppointmentListRequest) ([]dto.AppointmentResponse, int64, error) {
	from, err := parseOptionalDate("from", req.From)
	if err != nil {
		return nil, 0, err
	}
	to, err := parseOptionalDate("to", req.To)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.AppointmentFilter{
		ClinicID: clinicID,
		DoctorID: req.DoctorID,
		PetID:    req.PetID,
		From:     from,
		To:       to,
	}
	appts, total, err := s.repo.Appointment.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list appointments failed", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.AppointmentResponse, 0, len(appts))
	for i := range appts {
		list = append(list, toAppointmentResponse(&appts[i]))
	}
	return list, total, nil
}

func (s *appointmentService) AvailableSlots(ctx context.Context, clinicID, doctorID, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := parseDateField("date", date)
	if err != nil {
		return nil, err
	}
	doctor, err := s.repo.Doctor.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("get doctor failed", zap.String("id", doctorID), zap.Error(err))
		return nil, err
	}
	if doctor.ClinicID != clinicID {
		return nil, ErrDoctorNotFound
	}

	now := s.now()
	if day.Before(scheduling.DateOf(now)) {
		return &dto.AvailableSlotsResponse{DoctorID: doctorID, Date: day.String(), Slots: []string{}}, nil
	}

	booked, err := s.repo.Appointment.ListBookedTimes(ctx, clinicID, doctorID, day)
	if err != nil {
		s.logger.Error("list booked times failed", zap.String("doctor_id", doctorID), zap.Error(err))
		return nil, err
	}
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	all := s.grids.AvailableSlots(doctor.Window(), day, now)
	free := make([]string, 0, len(all))
	for _, slot := range all {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return &dto.AvailableSlotsResponse{DoctorID: doctorID, Date: day.String(), Slots: free}, nil
}

// ── helpers ──

func (s *appointmentService) ensurePet(ctx context.Context, tx *repository.Repository, clinicID, petID string) error {
	pet, err := tx.Pet.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPetNotFound
		}
		return err
	}
	if pet.ClinicID != clinicID {
		return ErrPetNotFound
	}
	return nil
}

// lockDoctor loads the doctor under a row lock so bookings for it run one at a time.
func (s *appointmentService) lockDoctor(ctx context.Context, tx *repository.Repository, clinicID, doctorID string) (*model.Doctor, error) {
	doctor, err := tx.Doctor.GetForUpdate(ctx, doctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	if doctor.ClinicID != clinicID {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// ensureAvailable rejects past dates, days outside the doctor's week window and,
// for timed bookings, times that are not an open slot.
func (s *appointmentService) ensureAvailable(doctor *model.Doctor, date scheduling.Date, slot string) error {
	now := s.now()
	if date.Before(scheduling.DateOf(now)) {
		return invalidField("date", "must not be in the past")
	}
	w := doctor.Window()
	if !w.CoversDay(date) {
		return ErrSlotUnavailable
	}
	if slot == "" {
		return nil
	}
	if !scheduling.Contains(s.grids.AvailableSlots(w, date, now), slot) {
		return ErrSlotUnavailable
	}
	return nil
}

// translate maps a unique violation to ErrSlotTaken and logs unexpected failures.
func (s *appointmentService) translate(err error, op string) error {
	if pkgerrors.IsUniqueViolation(err) {
		return ErrSlotTaken
	}
	if _, ok := AsValidationError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrSlotTaken),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrDoctorNotFound),
		errors.Is(err, ErrPetNotFound):
		return err
	}
	s.logger.Error(op+" failed", zap.Error(err))
	return err
}

func toAppointmentResponse(a *model.Appointment) dto.AppointmentResponse {
	resp := dto.AppointmentResponse{
		ID:   a.AppointmentID,
		Date: a.Date.String(),
		Time: a.Time,
	}
	if a.Doctor != nil {
		resp.Doctor = &dto.DoctorSummary{
			ID:                      a.Doctor.DoctorID,
			Name:                    a.Doctor.Name,
			Speciality:              a.Doctor.Speciality,
			AppointmentPriceInCents: a.Doctor.AppointmentPriceInCents,
		}
	}
	if a.Pet != nil {
		pet := toPetResponse(a.Pet)
		resp.Pet = &pet
	}
	return resp
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/internal/model"
	"github.com/JorgeWendell/clinics/internal/scheduling"
	pkgerrors "github.com/JorgeWendell/clinics/pkg/errors"
)

// AppointmentFilter narrows appointment listings. Zero fields are ignored; dates are inclusive.
type AppointmentFilter struct {
	ClinicID string
	DoctorID string
	PetID    string
	From     scheduling.Date
	To       scheduling.Date
}

// AppointmentRepository appointment data access
type AppointmentRepository interface {
	// Create returns pkgerrors.ErrUniqueViolation when the doctor's slot is already booked.
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	// Update returns pkgerrors.ErrUniqueViolation when the new slot is already booked.
	Update(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id string) error
	// FindConflict returns another appointment holding the same clinic, doctor, date and time,
	// ignoring excludeID; nil when the slot is free.
	FindConflict(ctx context.Context, clinicID, doctorID string, date scheduling.Date, slot, excludeID string) (*model.Appointment, error)
	// ListBookedTimes returns the non-empty times booked for the doctor on date.
	ListBookedTimes(ctx context.Context, clinicID, doctorID string, date scheduling.Date) ([]string, error)
	List(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]model.Appointment, int64, error)
	// ListAll returns every match ordered by date and time, with doctor, pet and tutor loaded.
	ListAll(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, error)
}

type appointmentRepo struct {
	db *gorm.DB
}

// NewAppointmentRepo creates an AppointmentRepository.
func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	err := r.db.WithContext(ctx).Omit("Doctor", "Pet").Create(appt).Error
	if pkgerrors.IsUniqueViolation(err) {
		return pkgerrors.ErrUniqueViolation
	}
	return err
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Pet.Tutor").
		Where("appointment_id = ?", id).
		First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepo) Update(ctx context.Context, appt *model.Appointment) error {
	err := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("appointment_id = ?", appt.AppointmentID).
		Updates(map[string]interface{}{
			"doctor_id":  appt.DoctorID,
			"pet_id":     appt.PetID,
			"date":       appt.Date,
			"time":       appt.Time,
			"updated_by": appt.UpdatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
	if pkgerrors.IsUniqueViolation(err) {
		return pkgerrors.ErrUniqueViolation
	}
	return err
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", id).
		Delete(&model.Appointment{}).Error
}

func (r *appointmentRepo) FindConflict(ctx context.Context, clinicID, doctorID string, date scheduling.Date, slot, excludeID string) (*model.Appointment, error) {
	db := r.db.WithContext(ctx).
		Where("clinic_id = ? AND doctor_id = ? AND date = ? AND time = ?", clinicID, doctorID, date.String(), slot)
	if excludeID != "" {
		db = db.Where("appointment_id <> ?", excludeID)
	}

	var found []model.Appointment
	if err := db.Limit(1).Find(&found).Error; err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *appointmentRepo) ListBookedTimes(ctx context.Context, clinicID, doctorID string, date scheduling.Date) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("clinic_id = ? AND doctor_id = ? AND date = ? AND time IS NOT NULL", clinicID, doctorID, date.String()).
		Order("time ASC").
		Pluck("time", &times).Error
	return times, err
}

func (r *appointmentRepo) List(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]model.Appointment, int64, error) {
	var appts []model.Appointment
	var total int64

	db := applyAppointmentFilter(r.db.WithContext(ctx).Model(&model.Appointment{}), filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Doctor").
		Preload("Pet.Tutor").
		Offset(offset).Limit(limit).
		Order("date DESC, time DESC NULLS LAST").
		Find(&appts).Error
	return appts, total, err
}

func (r *appointmentRepo) ListAll(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := applyAppointmentFilter(r.db.WithContext(ctx), filter).
		Preload("Doctor").
		Preload("Pet.Tutor").
		Order("date ASC, time ASC NULLS FIRST").
		Find(&appts).Error
	return appts, err
}

func applyAppointmentFilter(db *gorm.DB, f AppointmentFilter) *gorm.DB {
	db = db.Where("clinic_id = ?", f.ClinicID)
	if f.DoctorID != "" {
		db = db.Where("doctor_id = ?", f.DoctorID)
	}
	if f.PetID != "" {
		db = db.Where("pet_id = ?", f.PetID)
	}
	if !f.From.IsZero() {
		db = db.Where("date >= ?", f.From.String())
	}
	if !f.To.IsZero() {
		db = db.Where("date <= ?", f.To.String())
	}
	return db
}

package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JorgeWendell/clinics/internal/model"
	pkgerrors "github.com/JorgeWendell/clinics/pkg/errors"
)

// DoctorRepository doctor data access
type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id string) (*model.Doctor, error)
	// GetForUpdate reads the doctor holding a row lock until the surrounding transaction ends.
	// Bookings for one doctor serialize on it.
	GetForUpdate(ctx context.Context, id string) (*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id string) error
	ListByClinic(ctx context.Context, clinicID string) ([]model.Doctor, error)
	CountByClinic(ctx context.Context, clinicID string) (int64, error)
}

type doctorRepo struct {
	db *gorm.DB
}

// NewDoctorRepo creates a DoctorRepository.
func NewDoctorRepo(db *gorm.DB) DoctorRepository {
	return &doctorRepo{db: db}
}

func (r *doctorRepo) Create(ctx context.Context, doctor *model.Doctor) error {
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return pkgerrors.ErrUniqueViolation
		}
		return err
	}
	return nil
}

func (r *doctorRepo) GetByID(ctx context.Context, id string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", id).
		First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepo) GetForUpdate(ctx context.Context, id string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ?", id).
		First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepo) Update(ctx context.Context, doctor *model.Doctor) error {
	err := r.db.WithContext(ctx).
		Model(&model.Doctor{}).
		Where("doctor_id = ?", doctor.DoctorID).
		Updates(map[string]interface{}{
			"name":                       doctor.Name,
			"email":                      doctor.Email,
			"speciality":                 doctor.Speciality,
			"avatar_image_url":           doctor.AvatarImageURL,
			"available_from_week_day":    doctor.AvailableFromWeekDay,
			"available_to_week_day":      doctor.AvailableToWeekDay,
			"available_from_time":        doctor.AvailableFromTime,
			"available_to_time":          doctor.AvailableToTime,
			"appointment_price_in_cents": doctor.AppointmentPriceInCents,
			"updated_by":                 doctor.UpdatedBy,
			"updated_at":                 gorm.Expr("NOW()"),
		}).Error
	if pkgerrors.IsUniqueViolation(err) {
		return pkgerrors.ErrUniqueViolation
	}
	return err
}

func (r *doctorRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("doctor_id = ?", id).
		Delete(&model.Doctor{}).Error
}

func (r *doctorRepo) ListByClinic(ctx context.Context, clinicID string) ([]model.Doctor, error) {
	var doctors []model.Doctor
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("name ASC").
		Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepo) CountByClinic(ctx context.Context, clinicID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Doctor{}).
		Where("clinic_id = ?", clinicID).
		Count(&total).Error
	return total, err
}

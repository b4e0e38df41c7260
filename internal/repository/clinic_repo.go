package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/internal/model"
)

// ClinicRepository clinic and membership data access
type ClinicRepository interface {
	Create(ctx context.Context, clinic *model.Clinic) error
	GetByID(ctx context.Context, id string) (*model.Clinic, error)
	LinkUser(ctx context.Context, userID, clinicID string) error
	// GetUserClinic returns the user's first clinic link, or gorm.ErrRecordNotFound.
	GetUserClinic(ctx context.Context, userID string) (*model.UserClinic, error)
}

type clinicRepo struct {
	db *gorm.DB
}

// NewClinicRepo creates a ClinicRepository.
func NewClinicRepo(db *gorm.DB) ClinicRepository {
	return &clinicRepo{db: db}
}

func (r *clinicRepo) Create(ctx context.Context, clinic *model.Clinic) error {
	return r.db.WithContext(ctx).Create(clinic).Error
}

func (r *clinicRepo) GetByID(ctx context.Context, id string) (*model.Clinic, error) {
	var clinic model.Clinic
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", id).
		First(&clinic).Error
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepo) LinkUser(ctx context.Context, userID, clinicID string) error {
	return r.db.WithContext(ctx).Create(&model.UserClinic{
		UserID:   userID,
		ClinicID: clinicID,
	}).Error
}

func (r *clinicRepo) GetUserClinic(ctx context.Context, userID string) (*model.UserClinic, error) {
	var link model.UserClinic
	err := r.db.WithContext(ctx).
		Preload("Clinic").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

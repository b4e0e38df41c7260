package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/internal/model"
)

// TutorRepository tutor data access
type TutorRepository interface {
	Create(ctx context.Context, tutor *model.Tutor) error
	GetByID(ctx context.Context, id string) (*model.Tutor, error)
	Update(ctx context.Context, tutor *model.Tutor) error
	// BelongsToClinic reports whether the tutor owns at least one pet of the clinic.
	BelongsToClinic(ctx context.Context, tutorID, clinicID string) (bool, error)
}

// PetRepository pet data access
type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	GetByID(ctx context.Context, id string) (*model.Pet, error)
	Update(ctx context.Context, pet *model.Pet) error
	Delete(ctx context.Context, id string) error
	ListByClinic(ctx context.Context, clinicID string) ([]model.Pet, error)
	CountByClinic(ctx context.Context, clinicID string) (int64, error)
}

// ── Tutor ──

type tutorRepo struct {
	db *gorm.DB
}

// NewTutorRepo creates a TutorRepository.
func NewTutorRepo(db *gorm.DB) TutorRepository {
	return &tutorRepo{db: db}
}

func (r *tutorRepo) Create(ctx context.Context, tutor *model.Tutor) error {
	return r.db.WithContext(ctx).Create(tutor).Error
}

func (r *tutorRepo) GetByID(ctx context.Context, id string) (*model.Tutor, error) {
	var tutor model.Tutor
	err := r.db.WithContext(ctx).
		Where("tutor_id = ?", id).
		First(&tutor).Error
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

func (r *tutorRepo) Update(ctx context.Context, tutor *model.Tutor) error {
	return r.db.WithContext(ctx).
		Model(&model.Tutor{}).
		Where("tutor_id = ?", tutor.TutorID).
		Updates(map[string]interface{}{
			"name":       tutor.Name,
			"email":      tutor.Email,
			"phone":      tutor.Phone,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *tutorRepo) BelongsToClinic(ctx context.Context, tutorID, clinicID string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Pet{}).
		Where("tutor_id = ? AND clinic_id = ?", tutorID, clinicID).
		Count(&total).Error
	return total > 0, err
}

// ── Pet ──

type petRepo struct {
	db *gorm.DB
}

// NewPetRepo creates a PetRepository.
func NewPetRepo(db *gorm.DB) PetRepository {
	return &petRepo{db: db}
}

func (r *petRepo) Create(ctx context.Context, pet *model.Pet) error {
	return r.db.WithContext(ctx).Omit("Tutor").Create(pet).Error
}

func (r *petRepo) GetByID(ctx context.Context, id string) (*model.Pet, error) {
	var pet model.Pet
	err := r.db.WithContext(ctx).
		Preload("Tutor").
		Where("pet_id = ?", id).
		First(&pet).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepo) Update(ctx context.Context, pet *model.Pet) error {
	return r.db.WithContext(ctx).
		Model(&model.Pet{}).
		Where("pet_id = ?", pet.PetID).
		Updates(map[string]interface{}{
			"tutor_id":   pet.TutorID,
			"name":       pet.Name,
			"race":       pet.Race,
			"type":       pet.Type,
			"sex":        pet.Sex,
			"updated_by": pet.UpdatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("pet_id = ?", id).
		Delete(&model.Pet{}).Error
}

func (r *petRepo) ListByClinic(ctx context.Context, clinicID string) ([]model.Pet, error) {
	var pets []model.Pet
	err := r.db.WithContext(ctx).
		Preload("Tutor").
		Where("clinic_id = ?", clinicID).
		Order("name ASC").
		Find(&pets).Error
	return pets, err
}

func (r *petRepo) CountByClinic(ctx context.Context, clinicID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Pet{}).
		Where("clinic_id = ?", clinicID).
		Count(&total).Error
	return total, err
}

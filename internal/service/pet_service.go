package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/model"
	"github.com/JorgeWendell/clinics/internal/repository"
)

// ── pet errors ──

var (
	ErrPetNotFound   = errors.New("pet not found")
	ErrTutorNotFound = errors.New("tutor not found")
)

// PetService pet and tutor management
type PetService interface {
	// Upsert saves the pet and its tutor in one transaction.
	Upsert(ctx context.Context, clinicID, callerID string, req *dto.UpsertPetRequest) (*dto.PetResponse, bool, error)
	Get(ctx context.Context, clinicID, id string) (*dto.PetResponse, error)
	List(ctx context.Context, clinicID string) ([]dto.PetResponse, error)
	Delete(ctx context.Context, clinicID, id string) error
}

type petService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPetService creates a PetService.
func NewPetService(repo *repository.Repository, logger *zap.Logger) PetService {
	return &petService{repo: repo, logger: logger}
}

func (s *petService) Upsert(ctx context.Context, clinicID, callerID string, req *dto.UpsertPetRequest) (*dto.PetResponse, bool, error) {
	tutor := &model.Tutor{
		TutorID: req.TutorID,
		Name:    strings.TrimSpace(req.TutorName),
		Email:   strings.TrimSpace(req.TutorEmail),
		Phone:   strings.TrimSpace(req.TutorPhone),
	}
	pet := &model.Pet{
		PetID:    req.ID,
		ClinicID: clinicID,
		Name:     strings.TrimSpace(req.Name),
		Race:     strings.TrimSpace(req.Race),
		Type:     req.Type,
		Sex:      req.Sex,
	}
	pet.UpdatedBy = &callerID
	created := req.ID == ""

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if !created {
			existing, err := tx.Pet.GetByID(ctx, req.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPetNotFound
				}
				return err
			}
			if existing.ClinicID != clinicID {
				return ErrPetNotFound
			}
			pet.CreatedAt = existing.CreatedAt
			pet.CreatedBy = existing.CreatedBy
		}

		if tutor.TutorID == "" {
			if err := tx.Tutor.Create(ctx, tutor); err != nil {
				return err
			}
		} else {
			// tutors are shared rows; only one already serving this clinic may be edited
			owned, err := tx.Tutor.BelongsToClinic(ctx, tutor.TutorID, clinicID)
			if err != nil {
				return err
			}
			if !owned {
				return ErrTutorNotFound
			}
			if err := tx.Tutor.Update(ctx, tutor); err != nil {
				return err
			}
		}
		pet.TutorID = tutor.TutorID

		if created {
			pet.CreatedBy = &callerID
			return tx.Pet.Create(ctx, pet)
		}
		return tx.Pet.Update(ctx, pet)
	})
	if err != nil {
		if errors.Is(err, ErrPetNotFound) || errors.Is(err, ErrTutorNotFound) {
			return nil, false, err
		}
		s.logger.Error("save pet failed", zap.String("clinic_id", clinicID), zap.Error(err))
		return nil, false, err
	}

	pet.Tutor = tutor
	resp := toPetResponse(pet)
	return &resp, created, nil
}

func (s *petService) Get(ctx context.Context, clinicID, id string) (*dto.PetResponse, error) {
	pet, err := s.getOwned(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	resp := toPetResponse(pet)
	return &resp, nil
}

func (s *petService) List(ctx context.Context, clinicID string) ([]dto.PetResponse, error) {
	pets, err := s.repo.Pet.ListByClinic(ctx, clinicID)
	if err != nil {
		s.logger.Error("list pets failed", zap.String("clinic_id", clinicID), zap.Error(err))
		return nil, err
	}
	list := make([]dto.PetResponse, 0, len(pets))
	for i := range pets {
		list = append(list, toPetResponse(&pets[i]))
	}
	return list, nil
}

func (s *petService) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.getOwned(ctx, clinicID, id); err != nil {
		return err
	}
	if err := s.repo.Pet.Delete(ctx, id); err != nil {
		s.logger.Error("delete pet failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *petService) getOwned(ctx context.Context, clinicID, id string) (*model.Pet, error) {
	pet, err := s.repo.Pet.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		s.logger.Error("get pet failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if pet.ClinicID != clinicID {
		return nil, ErrPetNotFound
	}
	return pet, nil
}

func toPetResponse(p *model.Pet) dto.PetResponse {
	resp := dto.PetResponse{
		ID:   p.PetID,
		Name: p.Name,
		Race: p.Race,
		Type: p.Type,
		Sex:  p.Sex,
	}
	if p.Tutor != nil {
		resp.Tutor = dto.TutorResponse{
			ID:    p.Tutor.TutorID,
			Name:  p.Tutor.Name,
			Email: p.Tutor.Email,
			Phone: p.Tutor.Phone,
		}
	}
	return resp
}

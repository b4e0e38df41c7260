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
	"github.com/JorgeWendell/clinics/pkg/jwt"
)

// ErrClinicAlreadyLinked the user already belongs to a clinic.
var ErrClinicAlreadyLinked = errors.New("user already belongs to a clinic")

// ClinicService clinic set-up
type ClinicService interface {
	// Create makes the caller the administrator of a new clinic and returns
	// tokens that carry it.
	Create(ctx context.Context, userID string, req *dto.CreateClinicRequest) (*dto.TokenResponse, error)
}

type clinicService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewClinicService creates a ClinicService.
func NewClinicService(repo *repository.Repository, jwtMgr *jwt.Manager, logger *zap.Logger) ClinicService {
	return &clinicService{repo: repo, jwtMgr: jwtMgr, logger: logger}
}

func (s *clinicService) Create(ctx context.Context, userID string, req *dto.CreateClinicRequest) (*dto.TokenResponse, error) {
	var user *model.User
	clinic := &model.Clinic{Name: strings.TrimSpace(req.Name)}
	clinic.CreatedBy = &userID
	clinic.UpdatedBy = &userID

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		user, err = tx.User.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if _, err := tx.Clinic.GetUserClinic(ctx, userID); err == nil {
			return ErrClinicAlreadyLinked
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Clinic.Create(ctx, clinic); err != nil {
			return err
		}
		if err := tx.Clinic.LinkUser(ctx, userID, clinic.ClinicID); err != nil {
			return err
		}
		user.Role = model.RoleAdministrator
		return tx.User.UpdateRole(ctx, userID, model.RoleAdministrator)
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrClinicAlreadyLinked) {
			return nil, err
		}
		s.logger.Error("create clinic failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("clinic created", zap.String("clinic_id", clinic.ClinicID), zap.String("user_id", userID))
	return issueTokenPair(s.jwtMgr, user, clinic, false)
}

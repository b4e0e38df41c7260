package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/service"
	"github.com/JorgeWendell/clinics/pkg/response"
)

// ClinicHandler clinic setup
type ClinicHandler struct {
	clinicSvc service.ClinicService
}

// NewClinicHandler creates a ClinicHandler.
func NewClinicHandler(clinicSvc service.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinicSvc: clinicSvc}
}

// CreateClinic creates the caller's clinic and returns tokens that carry it.
// POST /api/v1/clinics
func (h *ClinicHandler) CreateClinic(c *gin.Context) {
	var req dto.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.clinicSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClinicAlreadyLinked):
			response.Conflict(c, 12002, "user already belongs to a clinic")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11004, "user not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

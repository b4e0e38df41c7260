package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/service"
	"github.com/JorgeWendell/clinics/pkg/response"
)

// PetHandler pet and tutor CRUD
type PetHandler struct {
	petSvc service.PetService
}

// NewPetHandler creates a PetHandler.
func NewPetHandler(petSvc service.PetService) *PetHandler {
	return &PetHandler{petSvc: petSvc}
}

// ListPets GET /api/v1/pets
func (h *PetHandler) ListPets(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	pets, err := h.petSvc.List(c.Request.Context(), clinicID)
	if err != nil {
		h.handlePetError(c, err)
		return
	}

	response.OK(c, gin.H{"list": pets})
}

// GetPet GET /api/v1/pets/:id
func (h *PetHandler) GetPet(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	pet, err := h.petSvc.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.handlePetError(c, err)
		return
	}

	response.OK(c, pet)
}

// UpsertPet saves a pet with its tutor.
// POST /api/v1/pets
// PUT  /api/v1/pets/:id
func (h *PetHandler) UpsertPet(c *gin.Context) {
	var req dto.UpsertPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if c.Param("id") != "" {
		id, ok := MustGetPathID(c)
		if !ok {
			return
		}
		req.ID = id
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	pet, created, err := h.petSvc.Upsert(c.Request.Context(), clinicID, callerID, &req)
	if err != nil {
		h.handlePetError(c, err)
		return
	}

	if created {
		response.Created(c, pet)
		return
	}
	response.OK(c, pet)
}

// DeletePet DELETE /api/v1/pets/:id
func (h *PetHandler) DeletePet(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	if err := h.petSvc.Delete(c.Request.Context(), clinicID, id); err != nil {
		h.handlePetError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *PetHandler) handlePetError(c *gin.Context, err error) {
	if writeValidationError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrPetNotFound):
		response.NotFound(c, 13101, "pet not found")
	case errors.Is(err, service.ErrTutorNotFound):
		response.NotFound(c, 13102, "tutor not found")
	default:
		response.InternalError(c)
	}
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/service"
	"github.com/JorgeWendell/clinics/pkg/response"
)

// DoctorHandler doctor CRUD
type DoctorHandler struct {
	doctorSvc service.DoctorService
}

// NewDoctorHandler creates a DoctorHandler.
func NewDoctorHandler(doctorSvc service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorSvc: doctorSvc}
}

// ListDoctors GET /api/v1/doctors
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	doctors, err := h.doctorSvc.List(c.Request.Context(), clinicID)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, gin.H{"list": doctors})
}

// GetDoctor GET /api/v1/doctors/:id
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	doctor, err := h.doctorSvc.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, doctor)
}

// UpsertDoctor creates a doctor, or replaces one when the body or path carries an id.
// POST /api/v1/doctors
// PUT  /api/v1/doctors/:id
func (h *DoctorHandler) UpsertDoctor(c *gin.Context) {
	var req dto.UpsertDoctorRequest
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

	doctor, created, err := h.doctorSvc.Upsert(c.Request.Context(), clinicID, callerID, &req)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	if created {
		response.Created(c, doctor)
		return
	}
	response.OK(c, doctor)
}

// DeleteDoctor DELETE /api/v1/doctors/:id
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	if err := h.doctorSvc.Delete(c.Request.Context(), clinicID, id); err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *DoctorHandler) handleDoctorError(c *gin.Context, err error) {
	if writeValidationError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrDoctorNotFound):
		response.NotFound(c, 13001, "doctor not found")
	case errors.Is(err, service.ErrDoctorEmailTaken):
		response.Conflict(c, 13002, "a doctor with this email already exists")
	default:
		response.InternalError(c)
	}
}

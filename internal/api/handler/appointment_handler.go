package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/service"
	"github.com/JorgeWendell/clinics/pkg/response"
)

// AppointmentHandler booking endpoints
type AppointmentHandler struct {
	apptSvc service.AppointmentService
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(apptSvc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptSvc: apptSvc}
}

// ListAppointments GET /api/v1/appointments?doctor_id=&pet_id=&from=&to=&page=&page_size=
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	var req dto.AppointmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	list, total, err := h.apptSvc.List(c.Request.Context(), clinicID, &req)
	if err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetAppointment GET /api/v1/appointments/:id
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	appt, err := h.apptSvc.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.OK(c, appt)
}

// BookAppointment POST /api/v1/appointments
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req dto.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	appt, err := h.apptSvc.Book(c.Request.Context(), clinicID, callerID, &req)
	if err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.Created(c, appt)
}

// RescheduleAppointment applies a partial update.
// PATCH /api/v1/appointments/:id
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	appt, err := h.apptSvc.Reschedule(c.Request.Context(), clinicID, callerID, id, &req)
	if err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.OK(c, appt)
}

// CancelAppointment DELETE /api/v1/appointments/:id
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	if err := h.apptSvc.Cancel(c.Request.Context(), clinicID, id); err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// AvailableSlots GET /api/v1/appointments/availability?doctor_id=&date=
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	var req dto.AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	result, err := h.apptSvc.AvailableSlots(c.Request.Context(), clinicID, req.DoctorID, req.Date)
	if err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *AppointmentHandler) handleAppointmentError(c *gin.Context, err error) {
	if writeValidationError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrSlotTaken):
		response.Conflict(c, 14002, service.ErrSlotTaken.Error())
	case errors.Is(err, service.ErrSlotUnavailable):
		response.BadRequest(c, 14003, service.ErrSlotUnavailable.Error())
	case errors.Is(err, service.ErrAppointmentNotFound):
		response.NotFound(c, 14001, "appointment not found")
	case errors.Is(err, service.ErrDoctorNotFound):
		response.NotFound(c, 13001, "doctor not found")
	case errors.Is(err, service.ErrPetNotFound):
		response.NotFound(c, 13101, "pet not found")
	default:
		response.InternalError(c)
	}
}

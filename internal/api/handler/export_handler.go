package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/service"
	"github.com/JorgeWendell/clinics/pkg/response"
)

const (
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	calendarContentType = "text/calendar; charset=utf-8"
)

// ExportHandler file downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAppointments GET /api/v1/exports/appointments?from=&to=
func (h *ExportHandler) ExportAppointments(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportAppointments(c.Request.Context(), clinicID, req.From, req.To)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// DoctorAgenda GET /api/v1/exports/doctors/:id/agenda.ics
func (h *ExportHandler) DoctorAgenda(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.DoctorAgenda(c.Request.Context(), clinicID, id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, calendarContentType, data)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if writeValidationError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrExportRangeTooLarge):
		response.BadRequest(c, 16101, "export range must not exceed one year")
	case errors.Is(err, service.ErrDoctorNotFound):
		response.NotFound(c, 13001, "doctor not found")
	default:
		response.InternalError(c)
	}
}

package handler

import "github.com/JorgeWendell/clinics/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	Clinic      *ClinicHandler
	Doctor      *DoctorHandler
	Pet         *PetHandler
	Appointment *AppointmentHandler
	Dashboard   *DashboardHandler
	Export      *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Clinic:      NewClinicHandler(svc.Clinic),
		Doctor:      NewDoctorHandler(svc.Doctor),
		Pet:         NewPetHandler(svc.Pet),
		Appointment: NewAppointmentHandler(svc.Appointment),
		Dashboard:   NewDashboardHandler(svc.Dashboard),
		Export:      NewExportHandler(svc.Export),
	}
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JorgeWendell/clinics/config"
	"github.com/JorgeWendell/clinics/internal/api/handler"
	"github.com/JorgeWendell/clinics/internal/api/middleware"
	"github.com/JorgeWendell/clinics/internal/model"
	"github.com/JorgeWendell/clinics/pkg/jwt"
	"github.com/JorgeWendell/clinics/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.POST("/clinics", h.Clinic.CreateClinic)
		}

		// everything below is scoped to the caller's clinic
		clinic := authorized.Group("")
		clinic.Use(middleware.ClinicRequired())
		{
			doctors := clinic.Group("/doctors")
			{
				doctors.GET("", h.Doctor.ListDoctors)
				doctors.GET("/:id", h.Doctor.GetDoctor)
				doctors.POST("", h.Doctor.UpsertDoctor)
				doctors.PUT("/:id", h.Doctor.UpsertDoctor)
				doctors.DELETE("/:id", middleware.RoleAuth(model.RoleAdministrator, model.RoleManager), h.Doctor.DeleteDoctor)
			}

			pets := clinic.Group("/pets")
			{
				pets.GET("", h.Pet.ListPets)
				pets.GET("/:id", h.Pet.GetPet)
				pets.POST("", h.Pet.UpsertPet)
				pets.PUT("/:id", h.Pet.UpsertPet)
				pets.DELETE("/:id", h.Pet.DeletePet)
			}

			appointments := clinic.Group("/appointments")
			{
				appointments.GET("", h.Appointment.ListAppointments)
				appointments.GET("/availability", h.Appointment.AvailableSlots)
				appointments.GET("/:id", h.Appointment.GetAppointment)
				appointments.POST("", h.Appointment.BookAppointment)
				appointments.PATCH("/:id", h.Appointment.RescheduleAppointment)
				appointments.DELETE("/:id", h.Appointment.CancelAppointment)
			}

			clinic.GET("/dashboard", h.Dashboard.Stats)

			exports := clinic.Group("/exports")
			{
				exports.GET("/appointments", middleware.RoleAuth(model.RoleAdministrator, model.RoleManager), h.Export.ExportAppointments)
				exports.GET("/doctors/:id/agenda.ics", h.Export.DoctorAgenda)
			}
		}
	}

	return r
}

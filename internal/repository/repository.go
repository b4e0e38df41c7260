package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository.
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Clinic      ClinicRepository
	Doctor      DoctorRepository
	Tutor       TutorRepository
	Pet         PetRepository
	Appointment AppointmentRepository
	Dashboard   DashboardRepository
}

// NewRepository builds the aggregate over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Clinic:      NewClinicRepo(db),
		Doctor:      NewDoctorRepo(db),
		Tutor:       NewTutorRepo(db),
		Pet:         NewPetRepo(db),
		Appointment: NewAppointmentRepo(db),
		Dashboard:   NewDashboardRepo(db),
	}
}

// Transaction runs fn with an aggregate bound to one database transaction.
// fn returning an error rolls the transaction back.
// An aggregate without a database handle (assembled in tests) runs fn on itself.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

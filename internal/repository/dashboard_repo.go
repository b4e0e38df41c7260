package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/internal/scheduling"
)

// DoctorRanking a doctor with its appointment count in a period
type DoctorRanking struct {
	DoctorID                string  `gorm:"column:doctor_id"`
	Name                    string  `gorm:"column:name"`
	Speciality              string  `gorm:"column:speciality"`
	AvatarImageURL          *string `gorm:"column:avatar_image_url"`
	AppointmentPriceInCents int     `gorm:"column:appointment_price_in_cents"`
	Appointments            int64   `gorm:"column:appointments"`
}

// DailyStat appointment count and revenue of one date
type DailyStat struct {
	Date         time.Time `gorm:"column:date"`
	Appointments int64     `gorm:"column:appointments"`
	Revenue      int64     `gorm:"column:revenue"`
}

// DashboardRepository aggregate queries over a clinic's appointments
type DashboardRepository interface {
	// Totals returns the appointment count and the summed doctor price in [from, to].
	Totals(ctx context.Context, clinicID string, from, to scheduling.Date) (count int64, revenue int64, err error)
	TopDoctors(ctx context.Context, clinicID string, from, to scheduling.Date, limit int) ([]DoctorRanking, error)
	// Daily returns one row per date that has appointments in [from, to], ascending.
	Daily(ctx context.Context, clinicID string, from, to scheduling.Date) ([]DailyStat, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

// NewDashboardRepo creates a DashboardRepository.
func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) Totals(ctx context.Context, clinicID string, from, to scheduling.Date) (int64, int64, error) {
	var row struct {
		Count   int64 `gorm:"column:count"`
		Revenue int64 `gorm:"column:revenue"`
	}
	err := r.db.WithContext(ctx).
		Table("appointments a").
		Select("COUNT(a.appointment_id) AS count, COALESCE(SUM(d.appointment_price_in_cents), 0) AS revenue").
		Joins("JOIN doctors d ON d.doctor_id = a.doctor_id").
		Where("a.clinic_id = ? AND a.date BETWEEN ? AND ?", clinicID, from.String(), to.String()).
		Scan(&row).Error
	return row.Count, row.Revenue, err
}

func (r *dashboardRepo) TopDoctors(ctx context.Context, clinicID string, from, to scheduling.Date, limit int) ([]DoctorRanking, error) {
	var rows []DoctorRanking
	err := r.db.WithContext(ctx).
		Table("doctors d").
		Select("d.doctor_id, d.name, d.speciality, d.avatar_image_url, d.appointment_price_in_cents, COUNT(a.appointment_id) AS appointments").
		Joins("LEFT JOIN appointments a ON a.doctor_id = d.doctor_id AND a.date BETWEEN ? AND ?", from.String(), to.String()).
		Where("d.clinic_id = ?", clinicID).
		Group("d.doctor_id").
		Order("appointments DESC, d.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) Daily(ctx context.Context, clinicID string, from, to scheduling.Date) ([]DailyStat, error) {
	var rows []DailyStat
	err := r.db.WithContext(ctx).
		Table("appointments a").
		Select("a.date, COUNT(a.appointment_id) AS appointments, COALESCE(SUM(d.appointment_price_in_cents), 0) AS revenue").
		Joins("JOIN doctors d ON d.doctor_id = a.doctor_id").
		Where("a.clinic_id = ? AND a.date BETWEEN ? AND ?", clinicID, from.String(), to.String()).
		Group("a.date").
		Order("a.date ASC").
		Scan(&rows).Error
	return rows, err
}

package service

import (
	"context"
	"errors"

	"github.com/JorgeWendell/clinics/internal/repository"
	"github.com/JorgeWendell/clinics/internal/scheduling"
)

// ErrSlotTaken the doctor already has an appointment at that date and time.
var ErrSlotTaken = errors.New("this time is already booked for this doctor on this date")

// SlotKey identifies a bookable slot. An empty Time means a whole-day booking.
type SlotKey struct {
	ClinicID string
	DoctorID string
	Date     scheduling.Date
	Time     string
}

// checkConflict fails with ErrSlotTaken when another appointment than excludeID holds key.
// Whole-day bookings never conflict.
func checkConflict(ctx context.Context, repo repository.AppointmentRepository, key SlotKey, excludeID string) error {
	if key.Time == "" {
		return nil
	}
	found, err := repo.FindConflict(ctx, key.ClinicID, key.DoctorID, key.Date, key.Time, excludeID)
	if err != nil {
		return err
	}
	if found != nil {
		return ErrSlotTaken
	}
	return nil
}

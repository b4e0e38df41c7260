package dto

// ── appointments ──

// BookAppointmentRequest new booking. Time is "HH:MM" or "HH:MM:SS"; empty books the whole day.
type BookAppointmentRequest struct {
	PetID    string `json:"pet_id"    binding:"required,uuid"`
	DoctorID string `json:"doctor_id" binding:"required,uuid"`
	Date     string `json:"date"      binding:"required"`
	Time     string `json:"time"`
}

// RescheduleAppointmentRequest partial update; absent fields keep their stored value.
// Time set to "" clears the time.
type RescheduleAppointmentRequest struct {
	PetID    *string `json:"pet_id"    binding:"omitempty,uuid"`
	DoctorID *string `json:"doctor_id" binding:"omitempty,uuid"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
}

// AppointmentListRequest list filters
type AppointmentListRequest struct {
	PaginationRequest
	DoctorID string `form:"doctor_id" binding:"omitempty,uuid"`
	PetID    string `form:"pet_id"    binding:"omitempty,uuid"`
	From     string `form:"from"`
	To       string `form:"to"`
}

// AvailableSlotsRequest availability query
type AvailableSlotsRequest struct {
	DoctorID string `form:"doctor_id" binding:"required,uuid"`
	Date     string `form:"date"      binding:"required"`
}

// AppointmentResponse appointment with its doctor and pet
type AppointmentResponse struct {
	ID     string         `json:"id"`
	Date   string         `json:"date"`
	Time   *string        `json:"time"`
	Doctor *DoctorSummary `json:"doctor,omitempty"`
	Pet    *PetResponse   `json:"pet,omitempty"`
}

// DoctorSummary doctor fields shown alongside an appointment
type DoctorSummary struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Speciality              string `json:"speciality"`
	AppointmentPriceInCents int    `json:"appointment_price_in_cents"`
}

// AvailableSlotsResponse free slots of a doctor on a date
type AvailableSlotsResponse struct {
	DoctorID string   `json:"doctor_id"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}

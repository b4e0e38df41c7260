package dto

// ── doctors ──

// UpsertDoctorRequest creates a doctor when ID is empty, otherwise replaces it.
type UpsertDoctorRequest struct {
	ID                      string  `json:"id"                         binding:"omitempty,uuid"`
	Name                    string  `json:"name"                       binding:"required,min=1,max=150"`
	Email                   string  `json:"email"                      binding:"omitempty,email"`
	Speciality              string  `json:"speciality"                 binding:"required,min=1,max=100"`
	AvatarImageURL          *string `json:"avatar_image_url"           binding:"omitempty,url"`
	AvailableFromWeekDay    *int    `json:"available_from_week_day"    binding:"required,min=0,max=6"`
	AvailableToWeekDay      *int    `json:"available_to_week_day"      binding:"required,min=0,max=6"`
	AvailableFromTime       string  `json:"available_from_time"        binding:"required"`
	AvailableToTime         string  `json:"available_to_time"          binding:"required"`
	AppointmentPriceInCents *int    `json:"appointment_price_in_cents" binding:"required,min=0"`
}

// DoctorResponse doctor with a readable availability summary
type DoctorResponse struct {
	ID                      string       `json:"id"`
	Name                    string       `json:"name"`
	Email                   string       `json:"email"`
	Speciality              string       `json:"speciality"`
	AvatarImageURL          *string      `json:"avatar_image_url,omitempty"`
	AvailableFromWeekDay    int          `json:"available_from_week_day"`
	AvailableToWeekDay      int          `json:"available_to_week_day"`
	AvailableFromTime       string       `json:"available_from_time"`
	AvailableToTime         string       `json:"available_to_time"`
	AppointmentPriceInCents int          `json:"appointment_price_in_cents"`
	Availability            Availability `json:"availability"`
}

// Availability e.g. {"from": "Monday 08:00", "to": "Friday 18:00"}
type Availability struct {
	From string `json:"from"`
	To   string `json:"to"`
}

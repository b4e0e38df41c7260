package dto

// ── dashboard ──

// DashboardRequest period; both default in the service
type DashboardRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// DashboardResponse clinic statistics
type DashboardResponse struct {
	From              string                `json:"from"`
	To                string                `json:"to"`
	RevenueInCents    int64                 `json:"revenue_in_cents"`
	Appointments      int64                 `json:"appointments"`
	Pets              int64                 `json:"pets"`
	Doctors           int64                 `json:"doctors"`
	TopDoctors        []TopDoctor           `json:"top_doctors"`
	TodayAppointments []AppointmentResponse `json:"today_appointments"`
	DailyChart        []DailyPoint          `json:"daily_chart"`
}

// TopDoctor doctor ranked by appointments in the period
type TopDoctor struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Speciality     string  `json:"speciality"`
	AvatarImageURL *string `json:"avatar_image_url,omitempty"`
	Appointments   int64   `json:"appointments"`
}

// DailyPoint one chart day; days without appointments are zero-filled
type DailyPoint struct {
	Date           string `json:"date"`
	Appointments   int64  `json:"appointments"`
	RevenueInCents int64  `json:"revenue_in_cents"`
}

// ExportRequest export period
type ExportRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to"   binding:"required"`
}

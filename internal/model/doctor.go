package model

import "github.com/JorgeWendell/clinics/internal/scheduling"

// Doctor doctors table
type Doctor struct {
	DoctorID                string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"doctor_id"`
	ClinicID                string  `gorm:"type:uuid;not null;index"                       json:"clinic_id"`
	Name                    string  `gorm:"type:varchar(150);not null"                     json:"name"`
	Email                   string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Speciality              string  `gorm:"type:varchar(100);not null"                     json:"speciality"`
	AvatarImageURL          *string `gorm:"column:avatar_image_url;type:text"              json:"avatar_image_url,omitempty"`
	AvailableFromWeekDay    int     `gorm:"type:smallint;not null"                         json:"available_from_week_day"` // 0 = Sunday
	AvailableToWeekDay      int     `gorm:"type:smallint;not null"                         json:"available_to_week_day"`
	AvailableFromTime       string  `gorm:"type:time;not null"                             json:"available_from_time"`
	AvailableToTime         string  `gorm:"type:time;not null"                             json:"available_to_time"`
	AppointmentPriceInCents int     `gorm:"not null"                                       json:"appointment_price_in_cents"`
	BaseModel
}

// TableName table name
func (Doctor) TableName() string { return "doctors" }

// Window returns the doctor's weekly availability.
func (d *Doctor) Window() scheduling.Window {
	return scheduling.Window{
		FromWeekDay: d.AvailableFromWeekDay,
		ToWeekDay:   d.AvailableToWeekDay,
		FromTime:    d.AvailableFromTime,
		ToTime:      d.AvailableToTime,
	}
}

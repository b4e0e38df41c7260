package model

// Appointment appointments table
type Appointment struct {
	AppointmentID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"appointment_id"`
	ClinicID      string  `gorm:"type:uuid;not null"                             json:"clinic_id"`
	DoctorID      string  `gorm:"type:uuid;not null"                             json:"doctor_id"`
	PetID         string  `gorm:"type:uuid;not null"                             json:"pet_id"`
	Date          Date    `gorm:"type:date;not null"                             json:"date"`
	Time          *string `gorm:"type:text"                                      json:"time,omitempty"` // "HH:MM:SS"; nil = no specific time
	BaseModel

	Doctor *Doctor `gorm:"foreignKey:DoctorID;references:DoctorID" json:"doctor,omitempty"`
	Pet    *Pet    `gorm:"foreignKey:PetID;references:PetID"       json:"pet,omitempty"`
}

// TableName table name
func (Appointment) TableName() string { return "appointments" }

// TimeValue returns the time or "".
func (a *Appointment) TimeValue() string {
	if a.Time == nil {
		return ""
	}
	return *a.Time
}

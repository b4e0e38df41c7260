package model

// Clinic is a tenant. Every doctor, pet and appointment belongs to exactly one clinic.
type Clinic struct {
	ClinicID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"clinic_id"`
	Name     string `gorm:"type:varchar(150);not null"                     json:"name"`
	BaseModel
}

// TableName table name
func (Clinic) TableName() string { return "clinics" }

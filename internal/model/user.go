package model

// Roles
const (
	RoleAdministrator = "administrator"
	RoleManager       = "manager"
	RoleOperator      = "operator"
)

// User users table
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'operator'"   json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	Timestamps
}

// TableName table name
func (User) TableName() string { return "users" }

// UserClinic links a user to their clinic (user_to_clinic)
type UserClinic struct {
	UserID   string `gorm:"type:uuid;primaryKey" json:"user_id"`
	ClinicID string `gorm:"type:uuid;primaryKey" json:"clinic_id"`
	Timestamps

	Clinic *Clinic `gorm:"foreignKey:ClinicID;references:ClinicID" json:"clinic,omitempty"`
}

// TableName table name
func (UserClinic) TableName() string { return "user_to_clinic" }

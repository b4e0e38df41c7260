package model

// Pet sexes
const (
	PetSexMale   = "Macho"
	PetSexFemale = "Femea"
)

// PetTypes lists the accepted pet species.
var PetTypes = []string{"canino", "felino", "ave", "roedor", "reptil", "outro"}

// Tutor is a pet owner. Tutors are not clinic-scoped; access goes through a pet.
type Tutor struct {
	TutorID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tutor_id"`
	Name    string `gorm:"type:varchar(150);not null"                     json:"name"`
	Email   string `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone   string `gorm:"type:varchar(30);not null"                      json:"phone"`
	Timestamps
}

// TableName table name
func (Tutor) TableName() string { return "tutors" }

// Pet pets table
type Pet struct {
	PetID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pet_id"`
	ClinicID string `gorm:"type:uuid;not null;index"                       json:"clinic_id"`
	TutorID  string `gorm:"type:uuid;not null;index"                       json:"tutor_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Race     string `gorm:"type:varchar(100);not null"                     json:"race"`
	Type     string `gorm:"type:pets_type;not null"                        json:"type"`
	Sex      string `gorm:"type:pets_sex;not null"                         json:"sex"`
	BaseModel

	Tutor *Tutor `gorm:"foreignKey:TutorID;references:TutorID" json:"tutor,omitempty"`
}

// TableName table name
func (Pet) TableName() string { return "pets" }

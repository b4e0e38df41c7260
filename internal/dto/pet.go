package dto

// ── pets ──

// UpsertPetRequest creates or updates a pet together with its tutor.
// No TutorID creates a tutor; with TutorID the existing tutor is updated.
type UpsertPetRequest struct {
	ID         string `json:"id"          binding:"omitempty,uuid"`
	Name       string `json:"name"        binding:"required,min=1,max=100"`
	Race       string `json:"race"        binding:"required,min=1,max=100"`
	Type       string `json:"type"        binding:"required,oneof=canino felino ave roedor reptil outro"`
	Sex        string `json:"sex"         binding:"required,oneof=Macho Femea"`
	TutorID    string `json:"tutor_id"    binding:"omitempty,uuid"`
	TutorName  string `json:"tutor_name"  binding:"required,min=1,max=150"`
	TutorEmail string `json:"tutor_email" binding:"required,email"`
	TutorPhone string `json:"tutor_phone" binding:"required,min=8,max=30"`
}

// PetResponse pet with tutor
type PetResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Race  string        `json:"race"`
	Type  string        `json:"type"`
	Sex   string        `json:"sex"`
	Tutor TutorResponse `json:"tutor"`
}

// TutorResponse tutor contact
type TutorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

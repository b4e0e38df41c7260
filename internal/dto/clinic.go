package dto

// CreateClinicRequest clinic set-up
type CreateClinicRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
}

package models

// CreateApplicationRequest is the payload for creating an application.
type CreateApplicationRequest struct {
	Company         string `json:"company" validate:"required,min=1,max=120"`
	Role            string `json:"role" validate:"required,min=1,max=120"`
	DateApplied     string `json:"date_applied" validate:"required,datetime=2006-01-02"`
	Status          string `json:"status" validate:"omitempty"`
	VisaSponsorship bool   `json:"visa_sponsorship"`
	Tags            []Tag  `json:"tags" validate:"omitempty,dive"`
}

// UpdateApplicationRequest is the payload for partially updating an
// application. Absent fields are left untouched.
type UpdateApplicationRequest struct {
	Company         *string `json:"company" validate:"omitempty,min=1,max=120"`
	Role            *string `json:"role" validate:"omitempty,min=1,max=120"`
	DateApplied     *string `json:"date_applied" validate:"omitempty,datetime=2006-01-02"`
	Status          *string `json:"status"`
	VisaSponsorship *bool   `json:"visa_sponsorship"`
	Tags            *[]Tag  `json:"tags" validate:"omitempty,dive"`
}

package models

import (
	"fmt"
	"time"
)

// Status is the pipeline stage an application currently sits in.
//
// Progression:
//
//	Applied ──► Phone Screen ──► Technical Interview ──► Final Round ──► Offer
//	    └──────────────┴──────────────────┴───────────────────┴────────► Rejected
//
// Offer and Rejected are terminal.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusPhone     Status = "Phone Screen"
	StatusTechnical Status = "Technical Interview"
	StatusFinal     Status = "Final Round"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// StatusOrder lists every status in pipeline order. Rank relies on this.
var StatusOrder = []Status{
	StatusApplied,
	StatusPhone,
	StatusTechnical,
	StatusFinal,
	StatusOffer,
	StatusRejected,
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	for _, known := range StatusOrder {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Rank returns the position of the status in the pipeline (Applied=0 ...
// Rejected=5). Unknown statuses rank after every known one so they sort to
// the end deterministically instead of being dropped.
func (s Status) Rank() int {
	for i, known := range StatusOrder {
		if s == known {
			return i
		}
	}
	return len(StatusOrder)
}

// IsTerminal reports whether the status ends the pipeline.
func (s Status) IsTerminal() bool {
	return s == StatusOffer || s == StatusRejected
}

// TagCategory groups tags into the fixed set of dimensions the UI filters on.
type TagCategory string

const (
	TagIndustry    TagCategory = "industry"
	TagRoleType    TagCategory = "role-type"
	TagCompanySize TagCategory = "company-size"
	TagLocation    TagCategory = "location"
	TagSeniority   TagCategory = "seniority"
	TagRemoteWork  TagCategory = "remote-work"
)

// Tag is a category-labeled marker attached to an application.
type Tag struct {
	ID       string      `json:"id"`
	Category TagCategory `json:"category"`
	Label    string      `json:"label"`
}

// Application represents one tracked job application.
//
// DateApplied is a calendar date string (YYYY-MM-DD). ID is assigned by the
// store at creation and never changes; CreatedAt never changes either.
// UpdatedAt is nil until the first mutation — time-in-status calculations
// fall back to CreatedAt when it is absent.
type Application struct {
	ID              string     `json:"id"`
	Company         string     `json:"company" validate:"required,max=120"`
	Role            string     `json:"role" validate:"required,max=120"`
	DateApplied     string     `json:"date_applied" validate:"required"`
	Status          Status     `json:"status"`
	VisaSponsorship bool       `json:"visa_sponsorship"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	Tags            []Tag      `json:"tags,omitempty"`
}

// DateLayout is the calendar-date wire format for DateApplied.
const DateLayout = "2006-01-02"

// AppliedDate parses DateApplied. The bool is false when the date cannot be
// parsed; callers treat such records as non-matching/non-contributing rather
// than failing.
func (a *Application) AppliedDate() (time.Time, bool) {
	t, err := time.Parse(DateLayout, a.DateApplied)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StatusSince returns the timestamp used for "time in current status":
// UpdatedAt when present, otherwise CreatedAt.
func (a *Application) StatusSince() time.Time {
	if a.UpdatedAt != nil {
		return *a.UpdatedAt
	}
	return a.CreatedAt
}

// ApplicationPatch is a partial update; nil fields are left untouched.
type ApplicationPatch struct {
	Company         *string `json:"company,omitempty" validate:"omitempty,max=120"`
	Role            *string `json:"role,omitempty" validate:"omitempty,max=120"`
	DateApplied     *string `json:"date_applied,omitempty"`
	Status          *Status `json:"status,omitempty"`
	VisaSponsorship *bool   `json:"visa_sponsorship,omitempty"`
	Tags            *[]Tag  `json:"tags,omitempty"`
}

// Apply copies the non-nil patch fields onto the application.
func (p *ApplicationPatch) Apply(a *Application) {
	if p.Company != nil {
		a.Company = *p.Company
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.DateApplied != nil {
		a.DateApplied = *p.DateApplied
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.VisaSponsorship != nil {
		a.VisaSponsorship = *p.VisaSponsorship
	}
	if p.Tags != nil {
		a.Tags = *p.Tags
	}
}

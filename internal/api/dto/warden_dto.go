package dto

import (
	"time"

	"github.com/spec-kit/warden-register/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	StaffNumber string `json:"staffNumber"`
	FirstName   string `json:"firstName"`
	Surname     string `json:"surname"`
	Location    string `json:"location"`
}

// UpdateLocationRequest payload.
type UpdateLocationRequest struct {
	StaffNumber string `json:"staffNumber"`
	Location    string `json:"location"`
}

// AmendRequest payload for partial updates. Empty fields mean "no change".
type AmendRequest struct {
	StaffNumber string `json:"staffNumber"`
	FirstName   string `json:"firstName"`
	Surname     string `json:"surname"`
	Location    string `json:"location"`
}

// Amendment converts the request into the domain's partial-update form,
// treating empty strings as absent fields.
func (r AmendRequest) Amendment() domain.WardenAmendment {
	var amendment domain.WardenAmendment
	if r.FirstName != "" {
		amendment.FirstName = &r.FirstName
	}
	if r.Surname != "" {
		amendment.Surname = &r.Surname
	}
	if r.Location != "" {
		amendment.Location = &r.Location
	}
	return amendment
}

// WardenResponse is the wire shape of a check-in record. Timestamps are
// RFC 3339 UTC so that textual ordering matches chronological ordering.
type WardenResponse struct {
	StaffNumber string `json:"staffNumber"`
	FirstName   string `json:"firstName"`
	Surname     string `json:"surname"`
	Location    string `json:"location"`
	CreatedAt   string `json:"createdAt"`
	LastUpdated string `json:"lastUpdated"`
}

// LookupResponse reports whether a warden is checked in.
type LookupResponse struct {
	Found  bool            `json:"found"`
	Warden *WardenResponse `json:"warden,omitempty"`
}

// MessageResponse carries a human-readable outcome message.
type MessageResponse struct {
	Message string `json:"message"`
}

// FromWarden maps a domain record to its wire shape.
func FromWarden(w *domain.Warden) WardenResponse {
	return WardenResponse{
		StaffNumber: w.StaffNumber,
		FirstName:   w.FirstName,
		Surname:     w.Surname,
		Location:    w.Location,
		CreatedAt:   w.CreatedAt.UTC().Format(time.RFC3339),
		LastUpdated: w.LastUpdated.UTC().Format(time.RFC3339),
	}
}

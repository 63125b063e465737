package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventWardenCheckedIn       EventType = "warden_checked_in"
	EventWardenLocationChanged EventType = "warden_location_changed"
	EventWardenDetailsAmended  EventType = "warden_details_amended"
	EventWardenCheckedOut      EventType = "warden_checked_out"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	StaffNumber string      `json:"staff_number"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// CheckedInPayload payload.
type CheckedInPayload struct {
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Location  string `json:"location"`
}

// LocationChangedPayload payload.
type LocationChangedPayload struct {
	NewLocation string `json:"new_location"`
}

// DetailsAmendedPayload lists the fields that actually changed.
type DetailsAmendedPayload struct {
	FirstName *string `json:"first_name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	Location  *string `json:"location,omitempty"`
}

// CheckedOutPayload payload.
type CheckedOutPayload struct{}

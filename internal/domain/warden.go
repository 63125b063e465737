package domain

import "time"

// Field length limits enforced on registration and amendment. They match the
// column widths of the wardens table.
const (
	MaxStaffNumberLen = 50
	MaxNameLen        = 100
)

// Warden models a staff member currently checked in at a campus location.
// The presence of a row is the checked-in state; checkout deletes it.
type Warden struct {
	StaffNumber string
	FirstName   string
	Surname     string
	Location    string
	CreatedAt   time.Time
	LastUpdated time.Time
}

// WardenAmendment carries a partial update. A nil field means "leave
// unchanged", never "clear to empty".
type WardenAmendment struct {
	FirstName *string
	Surname   *string
	Location  *string
}

// Empty reports whether the amendment touches no fields.
func (a WardenAmendment) Empty() bool {
	return a.FirstName == nil && a.Surname == nil && a.Location == nil
}

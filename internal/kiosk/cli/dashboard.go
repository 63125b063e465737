package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spec-kit/warden-register/internal/api/dto"
)

// Dashboard presents the active session and its actions: change location,
// amend details, clock off. It returns when the session ends or the user
// goes back; the check-in row on the server survives a plain "back".
func (a *App) Dashboard(ctx context.Context) error {
	for a.hasSession() {
		a.printSession()
		fmt.Fprintln(a.out, "  [1] Change location")
		fmt.Fprintln(a.out, "  [2] Amend details")
		fmt.Fprintln(a.out, "  [3] Clock off")
		fmt.Fprintln(a.out, "  [q] Back")

		choice, err := promptLine(a.reader, "Select an option", a.out)
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := a.changeLocation(ctx); err != nil {
				return err
			}
		case "2":
			if err := a.amendDetails(ctx); err != nil {
				return err
			}
		case "3":
			done, err := a.clockOff(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case "q":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown option:", choice)
		}
	}
	return nil
}

func (a *App) printSession() {
	s := a.session
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Active session")
	fmt.Fprintf(a.out, "  Name:       %s %s\n", s.FirstName, s.Surname)
	fmt.Fprintf(a.out, "  Staff ID:   %s\n", s.StaffNumber)
	fmt.Fprintf(a.out, "  Location:   %s\n", s.Location)
	fmt.Fprintf(a.out, "  Checked in: %s\n", s.CreatedAt)
	if s.LastUpdated != "" && s.LastUpdated != s.CreatedAt {
		fmt.Fprintf(a.out, "  Updated:    %s\n", s.LastUpdated)
	}
}

// changeLocation is a no-op when the chosen location matches the current one.
// On success the session is updated locally with a client-stamped time that
// only bridges the gap until the next server read.
func (a *App) changeLocation(ctx context.Context) error {
	location, err := promptLocation(a.reader, a.session.Location, a.out)
	if err != nil {
		return err
	}
	if location == a.session.Location {
		fmt.Fprintln(a.out, "Location unchanged.")
		return nil
	}

	if err := a.api.UpdateWardenLocation(ctx, a.session.StaffNumber, location); err != nil {
		fmt.Fprintln(a.out, "Failed to update location:", err)
		return nil
	}

	a.session.Location = location
	a.session.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintln(a.out, "Location updated successfully.")
	return nil
}

// amendDetails computes a diff against the session and sends only changed
// fields. An empty diff exits edit mode without a network call.
func (a *App) amendDetails(ctx context.Context) error {
	firstName, err := promptDetail(a.reader, "First name", a.session.FirstName, a.out)
	if err != nil {
		return err
	}
	surname, err := promptDetail(a.reader, "Surname", a.session.Surname, a.out)
	if err != nil {
		return err
	}
	location, err := promptLocation(a.reader, a.session.Location, a.out)
	if err != nil {
		return err
	}

	req := dto.AmendRequest{StaffNumber: a.session.StaffNumber}
	if firstName != a.session.FirstName {
		req.FirstName = firstName
	}
	if surname != a.session.Surname {
		req.Surname = surname
	}
	if location != a.session.Location {
		req.Location = location
	}

	if req.FirstName == "" && req.Surname == "" && req.Location == "" {
		fmt.Fprintln(a.out, "No changes to save.")
		return nil
	}

	if err := a.api.AmendWardenDetails(ctx, req); err != nil {
		fmt.Fprintln(a.out, "Failed to amend details:", err)
		return nil
	}

	a.session.FirstName = firstName
	a.session.Surname = surname
	a.session.Location = location
	a.session.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintln(a.out, "Details amended successfully.")
	return nil
}

// clockOff requires explicit confirmation before deleting the check-in. It
// reports true when the session ended.
func (a *App) clockOff(ctx context.Context) (bool, error) {
	confirmed, err := promptConfirm(a.reader,
		"Are you sure you want to clock off? This will remove you from the active warden list.", a.out)
	if err != nil {
		return false, err
	}
	if !confirmed {
		return false, nil
	}

	if err := a.api.CheckoutWarden(ctx, a.session.StaffNumber); err != nil {
		fmt.Fprintln(a.out, "Failed to clock off:", err)
		return false, nil
	}

	a.session = nil
	fmt.Fprintln(a.out, "You have clocked off.")
	return true, nil
}

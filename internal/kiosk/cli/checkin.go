package cli

import (
	"context"
	"fmt"

	"github.com/spec-kit/warden-register/internal/api/dto"
)

// CheckIn walks a staff member through the two-step check-in flow: staff
// identification first, then a registration form only when the identifier is
// not already on site. On success the established session opens the
// dashboard.
func (a *App) CheckIn(ctx context.Context) error {
	for {
		staffID, err := promptLine(a.reader, "Enter your staff ID (blank to go back)", a.out)
		if err != nil {
			return err
		}
		if staffID == "" {
			return nil
		}

		result, err := a.api.CheckWarden(ctx, staffID)
		if err != nil {
			fmt.Fprintln(a.out, "Unable to verify staff ID. Please try again.")
			continue
		}

		if result.Found {
			a.session = result.Warden
			fmt.Fprintf(a.out, "Welcome back, %s. You are checked in at %s.\n",
				a.session.FirstName, a.session.Location)
			return a.Dashboard(ctx)
		}

		registered, err := a.newRegistration(ctx, staffID)
		if err != nil {
			return err
		}
		if registered {
			return a.Dashboard(ctx)
		}
		// cancelled: back to the lookup prompt with everything cleared
	}
}

// newRegistration collects name and location for an unknown staff ID and
// registers the check-in. It reports true once a session is established, or
// false when the user cancels. API failures keep the user on the form.
func (a *App) newRegistration(ctx context.Context, staffID string) (bool, error) {
	fmt.Fprintf(a.out, "Staff ID %s is not currently on site.\n", staffID)

	for {
		firstName, err := promptLine(a.reader, "First name (blank to cancel)", a.out)
		if err != nil {
			return false, err
		}
		if firstName == "" {
			return false, nil
		}

		surname, err := promptLine(a.reader, "Last name", a.out)
		if err != nil {
			return false, err
		}

		location, err := promptLocation(a.reader, "", a.out)
		if err != nil {
			return false, err
		}

		err = a.api.RegisterWarden(ctx, dto.RegisterRequest{
			StaffNumber: staffID,
			FirstName:   firstName,
			Surname:     surname,
			Location:    location,
		})
		if err != nil {
			fmt.Fprintln(a.out, "Check-in failed:", err)
			continue
		}

		// Re-fetch so the session carries the server-stamped timestamps.
		result, err := a.api.CheckWarden(ctx, staffID)
		if err != nil || !result.Found {
			fmt.Fprintln(a.out, "Checked in, but the session could not be loaded. Please look up your staff ID again.")
			return false, nil
		}

		a.session = result.Warden
		fmt.Fprintf(a.out, "Checked in at %s.\n", a.session.Location)
		return true, nil
	}
}

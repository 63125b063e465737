package cli

import (
	"context"
	"fmt"

	"github.com/spec-kit/warden-register/internal/api/dto"
	"github.com/spec-kit/warden-register/internal/domain"
)

const adminPageSize = 10

// Admin gates the roster view behind the shared password. The comparison
// happens here in the client; it is a casual access gate for a wall-mounted
// kiosk, not an authentication system.
func (a *App) Admin(ctx context.Context) error {
	password, err := promptPassword(a.out)
	if err != nil {
		return err
	}
	if password != a.adminPassword {
		fmt.Fprintln(a.out, "Invalid password. Please try again.")
		return nil
	}
	return a.roster(ctx)
}

// roster shows per-location occupancy and the paged warden list. Reloading
// re-fetches the roster and resets to the first page.
func (a *App) roster(ctx context.Context) error {
	wardens, err := a.loadRoster(ctx)
	if err != nil {
		return nil
	}
	page := 1

	for {
		a.printRoster(wardens, page)

		choice, err := promptLine(a.reader, "[n]ext page, [p]revious page, [r]eload, [q]uit", a.out)
		if err != nil {
			return err
		}

		switch choice {
		case "n":
			if page < totalPages(len(wardens)) {
				page++
			}
		case "p":
			if page > 1 {
				page--
			}
		case "r":
			reloaded, err := a.loadRoster(ctx)
			if err != nil {
				continue
			}
			wardens = reloaded
			page = 1
		case "q":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown option:", choice)
		}
	}
}

func (a *App) loadRoster(ctx context.Context) ([]dto.WardenResponse, error) {
	wardens, err := a.api.FetchWardens(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to load warden data.")
		return nil, err
	}
	return wardens, nil
}

func (a *App) printRoster(wardens []dto.WardenResponse, page int) {
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Active wardens: %d\n", len(wardens))

	for _, entry := range occupancySummary(wardens) {
		fmt.Fprintf(a.out, "  %-30s %d\n", entry.Location, entry.Count)
	}

	if len(wardens) == 0 {
		fmt.Fprintln(a.out, "No wardens are currently checked in.")
		return
	}

	start := (page - 1) * adminPageSize
	end := start + adminPageSize
	if end > len(wardens) {
		end = len(wardens)
	}

	fmt.Fprintf(a.out, "Page %d/%d\n", page, totalPages(len(wardens)))
	for _, w := range wardens[start:end] {
		fmt.Fprintf(a.out, "  %-12s %-20s %-30s %s\n",
			w.StaffNumber, w.FirstName+" "+w.Surname, w.Location, w.LastUpdated)
	}
}

// occupancyEntry is one row of the per-location summary.
type occupancyEntry struct {
	Location string
	Count    int
}

// occupancySummary counts wardens per registry location in registry order,
// omitting locations with zero occupancy.
func occupancySummary(wardens []dto.WardenResponse) []occupancyEntry {
	counts := make(map[string]int, len(wardens))
	for _, w := range wardens {
		counts[w.Location]++
	}

	summary := make([]occupancyEntry, 0, len(counts))
	for _, location := range domain.Locations() {
		if n := counts[location]; n > 0 {
			summary = append(summary, occupancyEntry{Location: location, Count: n})
		}
	}
	return summary
}

func totalPages(total int) int {
	if total == 0 {
		return 1
	}
	return (total + adminPageSize - 1) / adminPageSize
}

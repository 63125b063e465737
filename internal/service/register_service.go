package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/warden-register/internal/domain"
	"github.com/spec-kit/warden-register/internal/events"
	"github.com/spec-kit/warden-register/internal/repository"
	apperrors "github.com/spec-kit/warden-register/pkg/util/errorutil"
)

// RegisterService implements the check-in register operations: lookup,
// roster listing, registration, location update, partial amendment and
// checkout. It owns input validation against the location registry;
// store-level error kinds arrive already translated by the repository.
type RegisterService struct {
	wardens    repository.WardenRepository
	dispatcher events.Dispatcher
}

// NewRegisterService constructs the service.
func NewRegisterService(wardens repository.WardenRepository, dispatcher events.Dispatcher) *RegisterService {
	return &RegisterService{wardens: wardens, dispatcher: dispatcher}
}

// Lookup fetches the active check-in for a staff number. A missing record is
// a normal outcome, reported as (nil, nil), never as an error.
func (s *RegisterService) Lookup(ctx context.Context, staffNumber string) (*domain.Warden, error) {
	warden, err := s.wardens.GetByStaffNumber(ctx, staffNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewInternalError(err)
	}
	return warden, nil
}

// ListAll returns every active check-in, most recently created first.
func (s *RegisterService) ListAll(ctx context.Context) ([]domain.Warden, error) {
	list, err := s.wardens.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// Register creates a new check-in record. The staff number must not already
// be registered; all four fields are required and the location must be a
// registry member.
func (s *RegisterService) Register(ctx context.Context, staffNumber, firstName, surname, location string) (*domain.Warden, error) {
	staffNumber = strings.TrimSpace(staffNumber)
	firstName = strings.TrimSpace(firstName)
	surname = strings.TrimSpace(surname)

	if staffNumber == "" || firstName == "" || surname == "" || location == "" {
		return nil, apperrors.NewValidationError("staffNumber, firstName, surname, and location are required", nil)
	}
	if len(staffNumber) > domain.MaxStaffNumberLen {
		return nil, apperrors.NewValidationError("staffNumber exceeds maximum length", nil)
	}
	if len(firstName) > domain.MaxNameLen || len(surname) > domain.MaxNameLen {
		return nil, apperrors.NewValidationError("name exceeds maximum length", nil)
	}
	if !domain.IsValidLocation(location) {
		return nil, apperrors.NewValidationError("location must be one of the allowed campus locations", nil)
	}

	warden := &domain.Warden{
		StaffNumber: staffNumber,
		FirstName:   firstName,
		Surname:     surname,
		Location:    location,
	}
	if err := s.wardens.Create(ctx, warden); err != nil {
		if errors.Is(err, repository.ErrDuplicateStaffNumber) {
			return nil, apperrors.NewConflict("Staff number already exists", map[string]any{"staffNumber": staffNumber})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventWardenCheckedIn, staffNumber, events.CheckedInPayload{
		FirstName: firstName,
		Surname:   surname,
		Location:  location,
	})
	return warden, nil
}

// UpdateLocation moves an existing warden to a new location and refreshes
// the last-updated stamp.
func (s *RegisterService) UpdateLocation(ctx context.Context, staffNumber, location string) error {
	staffNumber = strings.TrimSpace(staffNumber)
	if staffNumber == "" || location == "" {
		return apperrors.NewValidationError("staffNumber and location are required", nil)
	}
	if !domain.IsValidLocation(location) {
		return apperrors.NewValidationError("location must be one of the allowed campus locations", nil)
	}

	if err := s.wardens.UpdateLocation(ctx, staffNumber, location); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Warden not found", map[string]any{"staffNumber": staffNumber})
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventWardenLocationChanged, staffNumber, events.LocationChangedPayload{
		NewLocation: location,
	})
	return nil
}

// AmendDetails applies a partial update. At least one field must be
// supplied; unsupplied fields stay untouched.
func (s *RegisterService) AmendDetails(ctx context.Context, staffNumber string, amendment domain.WardenAmendment) error {
	staffNumber = strings.TrimSpace(staffNumber)
	if staffNumber == "" {
		return apperrors.NewValidationError("staffNumber is required", nil)
	}
	if amendment.Empty() {
		return apperrors.NewValidationError("At least one field (firstName, surname, or location) must be provided", nil)
	}
	if amendment.FirstName != nil && (len(*amendment.FirstName) == 0 || len(*amendment.FirstName) > domain.MaxNameLen) {
		return apperrors.NewValidationError("firstName must be between 1 and 100 characters", nil)
	}
	if amendment.Surname != nil && (len(*amendment.Surname) == 0 || len(*amendment.Surname) > domain.MaxNameLen) {
		return apperrors.NewValidationError("surname must be between 1 and 100 characters", nil)
	}
	if amendment.Location != nil && !domain.IsValidLocation(*amendment.Location) {
		return apperrors.NewValidationError("location must be one of the allowed campus locations", nil)
	}

	if err := s.wardens.Amend(ctx, staffNumber, amendment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Warden not found", map[string]any{"staffNumber": staffNumber})
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventWardenDetailsAmended, staffNumber, events.DetailsAmendedPayload{
		FirstName: amendment.FirstName,
		Surname:   amendment.Surname,
		Location:  amendment.Location,
	})
	return nil
}

// Checkout deletes the check-in record, ending the warden's session.
func (s *RegisterService) Checkout(ctx context.Context, staffNumber string) error {
	if err := s.wardens.Delete(ctx, staffNumber); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Warden not found", map[string]any{"staffNumber": staffNumber})
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventWardenCheckedOut, staffNumber, events.CheckedOutPayload{})
	return nil
}

func (s *RegisterService) publish(ctx context.Context, eventType events.EventType, staffNumber string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		StaffNumber: staffNumber,
		Timestamp:   time.Now().UTC(),
		Payload:     payload,
	})
}

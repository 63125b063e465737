package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/warden-register/internal/api/dto"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func newTestApp(api *fakeAPI, lines ...string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		api:           api,
		reader:        readerFromLines(lines...),
		out:           out,
		adminPassword: "Winchester2026",
	}, out
}

func wardenS1() *dto.WardenResponse {
	return &dto.WardenResponse{
		StaffNumber: "S1",
		FirstName:   "Ann",
		Surname:     "Lee",
		Location:    "Chapel",
		CreatedAt:   "2026-03-01T09:00:01Z",
		LastUpdated: "2026-03-01T09:00:01Z",
	}
}

// fakeAPI is a scripted stand-in for the registration API.
type fakeAPI struct {
	// CheckWarden returns lookups in order, repeating the last one.
	lookups    []*dto.LookupResponse
	lookupErr  error
	lookupIDs  []string
	registered []dto.RegisterRequest
	regErr     error

	roster    []dto.WardenResponse
	rosterErr error

	updated   []dto.UpdateLocationRequest
	updateErr error

	amended  []dto.AmendRequest
	amendErr error

	checkedOut  []string
	checkoutErr error
}

func (f *fakeAPI) CheckWarden(_ context.Context, staffID string) (*dto.LookupResponse, error) {
	f.lookupIDs = append(f.lookupIDs, staffID)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if len(f.lookups) == 0 {
		return &dto.LookupResponse{Found: false}, nil
	}
	next := f.lookups[0]
	if len(f.lookups) > 1 {
		f.lookups = f.lookups[1:]
	}
	return next, nil
}

func (f *fakeAPI) FetchWardens(context.Context) ([]dto.WardenResponse, error) {
	return f.roster, f.rosterErr
}

func (f *fakeAPI) RegisterWarden(_ context.Context, req dto.RegisterRequest) error {
	if f.regErr != nil {
		return f.regErr
	}
	f.registered = append(f.registered, req)
	return nil
}

func (f *fakeAPI) UpdateWardenLocation(_ context.Context, staffNumber, location string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, dto.UpdateLocationRequest{StaffNumber: staffNumber, Location: location})
	return nil
}

func (f *fakeAPI) AmendWardenDetails(_ context.Context, req dto.AmendRequest) error {
	if f.amendErr != nil {
		return f.amendErr
	}
	f.amended = append(f.amended, req)
	return nil
}

func (f *fakeAPI) CheckoutWarden(_ context.Context, staffID string) error {
	if f.checkoutErr != nil {
		return f.checkoutErr
	}
	f.checkedOut = append(f.checkedOut, staffID)
	return nil
}

// ------------ tests ------------

func TestCheckInExistingWardenEstablishesSession(t *testing.T) {
	api := &fakeAPI{lookups: []*dto.LookupResponse{{Found: true, Warden: wardenS1()}}}
	// staff ID, then leave the dashboard
	app, out := newTestApp(api, "S1", "q")

	require.NoError(t, app.CheckIn(context.Background()))

	require.True(t, app.hasSession())
	assert.Equal(t, "S1", app.session.StaffNumber)
	assert.Contains(t, out.String(), "Welcome back, Ann")
}

func TestCheckInBlankIDGoesBack(t *testing.T) {
	api := &fakeAPI{}
	app, _ := newTestApp(api, "")

	require.NoError(t, app.CheckIn(context.Background()))
	assert.False(t, app.hasSession())
	assert.Empty(t, api.lookupIDs)
}

func TestCheckInNewRegistrationFlow(t *testing.T) {
	stamped := wardenS1()
	stamped.StaffNumber = "S2"
	api := &fakeAPI{lookups: []*dto.LookupResponse{
		{Found: false},
		{Found: true, Warden: stamped},
	}}
	// staff ID, first name, last name, location 6 (Chapel), leave dashboard
	app, out := newTestApp(api, "S2", "Ann", "Lee", "6", "q")

	require.NoError(t, app.CheckIn(context.Background()))

	require.Len(t, api.registered, 1)
	assert.Equal(t, dto.RegisterRequest{
		StaffNumber: "S2",
		FirstName:   "Ann",
		Surname:     "Lee",
		Location:    "Chapel",
	}, api.registered[0])

	// session comes from the post-register lookup, carrying server stamps
	require.True(t, app.hasSession())
	assert.Equal(t, "2026-03-01T09:00:01Z", app.session.CreatedAt)
	assert.Contains(t, out.String(), "not currently on site")
	// registered, then re-fetched
	assert.Equal(t, []string{"S2", "S2"}, api.lookupIDs)
}

func TestCheckInRegistrationCancelReturnsToLookup(t *testing.T) {
	api := &fakeAPI{lookups: []*dto.LookupResponse{{Found: false}}}
	// staff ID, blank first name cancels, blank staff ID leaves
	app, _ := newTestApp(api, "S2", "", "")

	require.NoError(t, app.CheckIn(context.Background()))
	assert.False(t, app.hasSession())
	assert.Empty(t, api.registered)
}

func TestCheckInLookupFailureIsRecoverable(t *testing.T) {
	api := &fakeAPI{lookupErr: errors.New("connection refused")}
	// one failed attempt, then give up
	app, out := newTestApp(api, "S1", "")

	require.NoError(t, app.CheckIn(context.Background()))
	assert.False(t, app.hasSession())
	assert.Contains(t, out.String(), "Unable to verify staff ID")
}

func TestCheckInRegistrationFailureStaysOnForm(t *testing.T) {
	stamped := wardenS1()
	api := &fakeAPI{
		lookups: []*dto.LookupResponse{
			{Found: false},
			{Found: true, Warden: stamped},
		},
	}
	// first form attempt fails; clear the error, retry succeeds
	app, out := newTestApp(api, "S1", "Ann", "Lee", "6", "Ann", "Lee", "6", "q")

	// only the first Register call errors
	first := true
	app.api = &retryOnceAPI{fake: api, failFirst: &first}

	require.NoError(t, app.CheckIn(context.Background()))
	assert.Contains(t, out.String(), "Check-in failed")
	require.True(t, app.hasSession())
}

// retryOnceAPI fails the first RegisterWarden call and delegates the rest.
type retryOnceAPI struct {
	fake      *fakeAPI
	failFirst *bool
}

func (r *retryOnceAPI) CheckWarden(ctx context.Context, staffID string) (*dto.LookupResponse, error) {
	return r.fake.CheckWarden(ctx, staffID)
}

func (r *retryOnceAPI) FetchWardens(ctx context.Context) ([]dto.WardenResponse, error) {
	return r.fake.FetchWardens(ctx)
}

func (r *retryOnceAPI) RegisterWarden(ctx context.Context, req dto.RegisterRequest) error {
	if *r.failFirst {
		*r.failFirst = false
		return errors.New("Staff number already exists")
	}
	return r.fake.RegisterWarden(ctx, req)
}

func (r *retryOnceAPI) UpdateWardenLocation(ctx context.Context, staffNumber, location string) error {
	return r.fake.UpdateWardenLocation(ctx, staffNumber, location)
}

func (r *retryOnceAPI) AmendWardenDetails(ctx context.Context, req dto.AmendRequest) error {
	return r.fake.AmendWardenDetails(ctx, req)
}

func (r *retryOnceAPI) CheckoutWarden(ctx context.Context, staffID string) error {
	return r.fake.CheckoutWarden(ctx, staffID)
}

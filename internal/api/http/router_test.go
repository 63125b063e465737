package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/warden-register/internal/api/dto"
	"github.com/spec-kit/warden-register/internal/api/http/handlers"
	"github.com/spec-kit/warden-register/internal/config"
	"github.com/spec-kit/warden-register/internal/domain"
	"github.com/spec-kit/warden-register/internal/observability"
	"github.com/spec-kit/warden-register/internal/persistence"
	"github.com/spec-kit/warden-register/internal/repository"
	"github.com/spec-kit/warden-register/internal/service"
)

// memoryRepo backs the handler tests without Postgres.
type memoryRepo struct {
	records map[string]*domain.Warden
	clock   time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		records: make(map[string]*domain.Warden),
		clock:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memoryRepo) Create(_ context.Context, warden *domain.Warden) error {
	if _, exists := m.records[warden.StaffNumber]; exists {
		return repository.ErrDuplicateStaffNumber
	}
	now := m.tick()
	warden.CreatedAt = now
	warden.LastUpdated = now
	copied := *warden
	m.records[warden.StaffNumber] = &copied
	return nil
}

func (m *memoryRepo) GetByStaffNumber(_ context.Context, staffNumber string) (*domain.Warden, error) {
	record, ok := m.records[staffNumber]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *record
	return &copied, nil
}

func (m *memoryRepo) List(_ context.Context) ([]domain.Warden, error) {
	result := make([]domain.Warden, 0, len(m.records))
	for _, record := range m.records {
		result = append(result, *record)
	}
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].CreatedAt.After(result[i].CreatedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (m *memoryRepo) UpdateLocation(_ context.Context, staffNumber, location string) error {
	record, ok := m.records[staffNumber]
	if !ok {
		return pgx.ErrNoRows
	}
	record.Location = location
	record.LastUpdated = m.tick()
	return nil
}

func (m *memoryRepo) Amend(_ context.Context, staffNumber string, amendment domain.WardenAmendment) error {
	record, ok := m.records[staffNumber]
	if !ok {
		return pgx.ErrNoRows
	}
	if amendment.FirstName != nil {
		record.FirstName = *amendment.FirstName
	}
	if amendment.Surname != nil {
		record.Surname = *amendment.Surname
	}
	if amendment.Location != nil {
		record.Location = *amendment.Location
	}
	record.LastUpdated = m.tick()
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, staffNumber string) error {
	if _, ok := m.records[staffNumber]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.records, staffNumber)
	return nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)

	registerService := service.NewRegisterService(newMemoryRepo(), nil)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("warden-register", &persistence.Postgres{}, &persistence.Redis{}),
		Wardens: handlers.NewWardensHandler(registerService),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)

	_, err := time.Parse(time.RFC3339, health.Time)
	assert.NoError(t, err)
}

func TestReadinessReportsUnavailableDependencies(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLookupNotFoundIsOK(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/warden/S1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lookup dto.LookupResponse
	require.NoError(t, json.Unmarshal(body, &lookup))
	assert.False(t, lookup.Found)
	assert.Nil(t, lookup.Warden)
}

func TestRegisterValidationFailures(t *testing.T) {
	app := newTestApp(t)

	cases := []dto.RegisterRequest{
		{StaffNumber: "", FirstName: "Ann", Surname: "Lee", Location: "Chapel"},
		{StaffNumber: "S1", FirstName: "", Surname: "Lee", Location: "Chapel"},
		{StaffNumber: "S1", FirstName: "Ann", Surname: "Lee", Location: "Narnia"},
	}
	for _, payload := range cases {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/register", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestRegisterDuplicateConflict(t *testing.T) {
	app := newTestApp(t)
	payload := dto.RegisterRequest{StaffNumber: "S1", FirstName: "Ann", Surname: "Lee", Location: "Chapel"}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/register", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/register", payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var msg dto.MessageResponse
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.Equal(t, "Staff number already exists", msg.Message)
}

func TestUpdateLocationNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/update",
		dto.UpdateLocationRequest{StaffNumber: "ghost", Location: "Chapel"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAmendZeroFieldsRejected(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/register",
		dto.RegisterRequest{StaffNumber: "S1", FirstName: "Ann", Surname: "Lee", Location: "Chapel"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/amend", dto.AmendRequest{StaffNumber: "S1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/checkout/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListOrderingNewestFirst(t *testing.T) {
	app := newTestApp(t)

	for _, id := range []string{"S1", "S2", "S3"} {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/register",
			dto.RegisterRequest{StaffNumber: id, FirstName: "Ann", Surname: "Lee", Location: "Chapel"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/wardens", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []dto.WardenResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 3)
	assert.Equal(t, "S3", list[0].StaffNumber)
	assert.Equal(t, "S1", list[2].StaffNumber)
}

func TestCheckInLifecycleScenario(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/register",
		dto.RegisterRequest{StaffNumber: "S1", FirstName: "Ann", Surname: "Lee", Location: "Chapel"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/warden/S1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lookup dto.LookupResponse
	require.NoError(t, json.Unmarshal(body, &lookup))
	require.True(t, lookup.Found)
	assert.Equal(t, "Chapel", lookup.Warden.Location)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/update",
		dto.UpdateLocationRequest{StaffNumber: "S1", Location: "The Cottage"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/warden/S1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &lookup))
	require.True(t, lookup.Found)
	assert.Equal(t, "The Cottage", lookup.Warden.Location)
	assert.True(t, lookup.Warden.LastUpdated > lookup.Warden.CreatedAt)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/checkout/S1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/warden/S1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &lookup))
	assert.False(t, lookup.Found)
}

func TestAmendPartialUpdateViaHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/register",
		dto.RegisterRequest{StaffNumber: "S1", FirstName: "Ann", Surname: "Lee", Location: "Chapel"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/amend",
		dto.AmendRequest{StaffNumber: "S1", FirstName: "Annette"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/warden/S1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lookup dto.LookupResponse
	require.NoError(t, json.Unmarshal(body, &lookup))
	require.True(t, lookup.Found)
	assert.Equal(t, "Annette", lookup.Warden.FirstName)
	assert.Equal(t, "Lee", lookup.Warden.Surname)
	assert.Equal(t, "Chapel", lookup.Warden.Location)
}

func TestRateLimiterDisabledPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(&persistence.Redis{}, config.RateLimitConfig{MaxRequests: 1, WindowSeconds: 60}))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestErrorResponsesCountedUnderRealStatus(t *testing.T) {
	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 5*time.Second)

	registerService := service.NewRegisterService(newMemoryRepo(), nil)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("warden-register", &persistence.Postgres{}, &persistence.Redis{}),
		Wardens: handlers.NewWardensHandler(registerService),
	})

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/checkout/S404", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, int64(1), metrics.RequestCount("/api/checkout/S404", http.MethodDelete, http.StatusNotFound))
	assert.Equal(t, int64(0), metrics.RequestCount("/api/checkout/S404", http.MethodDelete, http.StatusOK))
	assert.Equal(t, int64(1), metrics.ErrorCount("/api/checkout/S404", http.MethodDelete, "NOT_FOUND"))

	resp, _ = doJSON(t, app, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), metrics.RequestCount("/api/health", http.MethodGet, http.StatusOK))
}

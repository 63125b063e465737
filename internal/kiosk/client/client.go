package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spec-kit/warden-register/internal/api/dto"
)

// RegisterAPI is the surface of the registration service the kiosk flows
// depend on. The concrete HTTP client satisfies it; tests substitute a stub.
type RegisterAPI interface {
	CheckWarden(ctx context.Context, staffID string) (*dto.LookupResponse, error)
	FetchWardens(ctx context.Context) ([]dto.WardenResponse, error)
	RegisterWarden(ctx context.Context, req dto.RegisterRequest) error
	UpdateWardenLocation(ctx context.Context, staffNumber, location string) error
	AmendWardenDetails(ctx context.Context, req dto.AmendRequest) error
	CheckoutWarden(ctx context.Context, staffID string) error
}

// Client talks JSON over HTTP to the registration API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given API base, e.g. "http://localhost:4000/api".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CheckWarden looks up a staff number. found=false is a normal response.
func (c *Client) CheckWarden(ctx context.Context, staffID string) (*dto.LookupResponse, error) {
	var resp dto.LookupResponse
	if err := c.do(ctx, http.MethodGet, "/warden/"+url.PathEscape(staffID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchWardens retrieves the full roster.
func (c *Client) FetchWardens(ctx context.Context) ([]dto.WardenResponse, error) {
	var resp []dto.WardenResponse
	if err := c.do(ctx, http.MethodGet, "/wardens", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// RegisterWarden creates a new check-in.
func (c *Client) RegisterWarden(ctx context.Context, req dto.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", req, nil)
}

// UpdateWardenLocation moves a checked-in warden.
func (c *Client) UpdateWardenLocation(ctx context.Context, staffNumber, location string) error {
	return c.do(ctx, http.MethodPut, "/update", dto.UpdateLocationRequest{
		StaffNumber: staffNumber,
		Location:    location,
	}, nil)
}

// AmendWardenDetails sends a partial update; empty fields mean "no change".
func (c *Client) AmendWardenDetails(ctx context.Context, req dto.AmendRequest) error {
	return c.do(ctx, http.MethodPut, "/amend", req, nil)
}

// CheckoutWarden ends a warden's session.
func (c *Client) CheckoutWarden(ctx context.Context, staffID string) error {
	return c.do(ctx, http.MethodDelete, "/checkout/"+url.PathEscape(staffID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg dto.MessageResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&msg); decodeErr == nil && msg.Message != "" {
			return fmt.Errorf("%s", msg.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

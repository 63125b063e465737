package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/warden-register/internal/api/dto"
	"github.com/spec-kit/warden-register/internal/service"
	apperrors "github.com/spec-kit/warden-register/pkg/util/errorutil"
)

// WardensHandler exposes the check-in register endpoints.
type WardensHandler struct {
	register *service.RegisterService
}

// NewWardensHandler constructs handler.
func NewWardensHandler(register *service.RegisterService) *WardensHandler {
	return &WardensHandler{register: register}
}

// Lookup handles GET /api/warden/:id. A missing record answers 200 with
// found=false; only infrastructure failures produce an error status.
func (h *WardensHandler) Lookup(c *fiber.Ctx) error {
	warden, err := h.register.Lookup(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if warden == nil {
		return c.JSON(dto.LookupResponse{Found: false})
	}
	resp := dto.FromWarden(warden)
	return c.JSON(dto.LookupResponse{Found: true, Warden: &resp})
}

// List handles GET /api/wardens, returning the full roster most recently
// checked-in first. Pagination is a client concern.
func (h *WardensHandler) List(c *fiber.Ctx) error {
	wardens, err := h.register.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.WardenResponse, 0, len(wardens))
	for i := range wardens {
		resp = append(resp, dto.FromWarden(&wardens[i]))
	}
	return c.JSON(resp)
}

// Register handles POST /api/register.
func (h *WardensHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.register.Register(c.UserContext(), req.StaffNumber, req.FirstName, req.Surname, req.Location); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "Warden registered successfully"})
}

// UpdateLocation handles PUT /api/update.
func (h *WardensHandler) UpdateLocation(c *fiber.Ctx) error {
	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.register.UpdateLocation(c.UserContext(), req.StaffNumber, req.Location); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Location updated successfully"})
}

// Amend handles PUT /api/amend.
func (h *WardensHandler) Amend(c *fiber.Ctx) error {
	var req dto.AmendRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.register.AmendDetails(c.UserContext(), req.StaffNumber, req.Amendment()); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Details amended successfully"})
}

// Checkout handles DELETE /api/checkout/:id.
func (h *WardensHandler) Checkout(c *fiber.Ctx) error {
	if err := h.register.Checkout(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Warden clocked off successfully"})
}

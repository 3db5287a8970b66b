package handlers

import (
	"errors"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/services/admin"
	"github.com/vkolotikov/loyalty-bolt/internal/services/ledger"
	"github.com/vkolotikov/loyalty-bolt/internal/services/registration"
	"github.com/vkolotikov/loyalty-bolt/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back-office roster management surface.
type AdminHandler struct {
	adminService        admin.Service
	registrationService registration.Service
	ledgerService       ledger.Service
}

func NewAdminHandler(
	adminService admin.Service,
	registrationService registration.Service,
	ledgerService ledger.Service,
) *AdminHandler {
	return &AdminHandler{
		adminService:        adminService,
		registrationService: registrationService,
		ledgerService:       ledgerService,
	}
}

func (h *AdminHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.adminService.ListClients(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to list clients")
	}

	return utils.Success(c, fiber.Map{
		"clients": clients,
	})
}

func (h *AdminHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.adminService.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, admin.ErrClientNotFound) {
			return utils.NotFound(c, "Client not found")
		}
		return utils.InternalError(c, "Failed to get client")
	}

	return utils.Success(c, fiber.Map{
		"client": client,
	})
}

func (h *AdminHandler) RegisterClient(c *fiber.Ctx) error {
	var input models.ClientRegistration
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	client, err := h.registrationService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrDuplicateCardNumber):
			return utils.Conflict(c, "Card number already in use")
		case errors.Is(err, registration.ErrInvalidCardType):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, registration.ErrCardNumberSpace):
			return utils.Conflict(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to register client")
		}
	}

	return utils.Created(c, fiber.Map{
		"client": client,
	})
}

// UpdateClient is the administrative override path. It does not go
// through the ledger's validation; see the admin service.
func (h *AdminHandler) UpdateClient(c *fiber.Ctx) error {
	var update models.ClientUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	client, err := h.adminService.OverrideUpdate(c.Context(), c.Params("id"), update)
	if err != nil {
		if errors.Is(err, admin.ErrClientNotFound) {
			return utils.NotFound(c, "Client not found")
		}
		return utils.InternalError(c, "Failed to update client")
	}

	return utils.Success(c, fiber.Map{
		"client": client,
	})
}

func (h *AdminHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.adminService.DeleteClient(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, admin.ErrClientNotFound) {
			return utils.NotFound(c, "Client not found")
		}
		return utils.InternalError(c, "Failed to delete client")
	}

	return utils.Success(c, fiber.Map{
		"message": "Client deleted",
	})
}

// AdjustBalance handles gift-card top-ups and corrections. The delta is
// signed; the ledger still enforces non-negativity.
func (h *AdminHandler) AdjustBalance(c *fiber.Ctx) error {
	cardNumber, err := cardNumberParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input struct {
		Delta float64 `json:"delta"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	client, err := h.ledgerService.AdjustBalance(c.Context(), cardNumber, input.Delta)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"client": client,
	})
}

package handlers

import (
	"errors"

	"github.com/vkolotikov/loyalty-bolt/internal/services/ledger"
	"github.com/vkolotikov/loyalty-bolt/internal/services/notify"
	"github.com/vkolotikov/loyalty-bolt/internal/utils"
	"github.com/vkolotikov/loyalty-bolt/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler serves the kiosk flow: card lookup, the guarded ledger
// operations triggered from the client screen, and details dispatch.
type ClientHandler struct {
	ledgerService ledger.Service
	notifyService notify.Service
}

func NewClientHandler(ledgerService ledger.Service, notifyService notify.Service) *ClientHandler {
	return &ClientHandler{
		ledgerService: ledgerService,
		notifyService: notifyService,
	}
}

// cardNumberParam normalizes and format-checks the :cardNumber route
// parameter before the ledger is invoked.
func cardNumberParam(c *fiber.Ctx) (string, error) {
	cardNumber := validation.NormalizeCardNumber(c.Params("cardNumber"))
	if err := validation.ValidateCardNumber(cardNumber); err != nil {
		return "", err
	}
	return cardNumber, nil
}

// ledgerError maps ledger sentinel errors to HTTP responses.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ledger.ErrClientNotFound):
		return utils.NotFound(c, "Client not found. Please check the card number and try again.")
	case errors.Is(err, ledger.ErrWrongCardType):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, ledger.ErrInvalidAmount):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return utils.UnprocessableEntity(c, err.Error())
	case errors.Is(err, ledger.ErrNoBonusAvailable):
		return utils.Conflict(c, err.Error())
	default:
		return utils.InternalError(c, "operation failed")
	}
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	cardNumber, err := cardNumberParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	client, err := h.ledgerService.GetClient(c.Context(), cardNumber)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"client": client,
	})
}

func (h *ClientHandler) ConfirmVisit(c *fiber.Ctx) error {
	cardNumber, err := cardNumberParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	client, visit, err := h.ledgerService.ConfirmVisit(c.Context(), cardNumber)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"client": client,
		"visit":  visit,
	})
}

func (h *ClientHandler) RedeemPoints(c *fiber.Ctx) error {
	cardNumber, err := cardNumberParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input struct {
		Amount int `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	client, err := h.ledgerService.RedeemPoints(c.Context(), cardNumber, input.Amount)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"client": client,
	})
}

func (h *ClientHandler) UseBalance(c *fiber.Ctx) error {
	cardNumber, err := cardNumberParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	client, err := h.ledgerService.UseBalance(c.Context(), cardNumber, input.Amount)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"client": client,
	})
}

// SendDetails emails the card summary to the address on file. The scan
// flow fires it right after a successful lookup.
func (h *ClientHandler) SendDetails(c *fiber.Ctx) error {
	cardNumber, err := cardNumberParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := h.notifyService.SendClientDetails(c.Context(), cardNumber); err != nil {
		switch {
		case errors.Is(err, notify.ErrClientNotFound):
			return utils.NotFound(c, "Client not found. Please check the card number and try again.")
		case errors.Is(err, notify.ErrNoEmailOnFile):
			return utils.UnprocessableEntity(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to send details")
		}
	}

	return utils.Success(c, fiber.Map{
		"message": "Details sent",
	})
}

func (h *ClientHandler) ConsumeBonusDiscount(c *fiber.Ctx) error {
	cardNumber, err := cardNumberParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	client, err := h.ledgerService.ConsumeBonusDiscount(c.Context(), cardNumber)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"client": client,
	})
}

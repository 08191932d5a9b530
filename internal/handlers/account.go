// Package handlers exposes the HTTP surface over the service layer.
// Handlers translate service sentinels into categorical response codes;
// raw storage errors never reach a client.
package handlers

import (
	"errors"

	"github.com/omokarogabriel/banking-system/internal/services/account"
	"github.com/omokarogabriel/banking-system/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AccountHandler exposes account store endpoints.
type AccountHandler struct {
	service  account.Service
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service account.Service, validate *validator.Validate) *AccountHandler {
	return &AccountHandler{service: service, validate: validate}
}

// CreateAccount handles POST /api/accounts.
func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req account.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	created, err := h.service.Create(c.Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Created(c, "account created successfully", fiber.Map{
		"accountName":    created.AccountName(),
		"accountNumber":  created.AccountNumber,
		"accountBalance": created.AccountBalance,
	})
}

// GetAccount handles GET /api/accounts/:accountNumber.
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	acct, err := h.service.GetByNumber(c.Context(), c.Params("accountNumber"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "account found", fiber.Map{
		"accountName":    acct.AccountName(),
		"accountNumber":  acct.AccountNumber,
		"accountBalance": acct.AccountBalance,
		"status":         acct.Status,
	})
}

// AdjustBalance handles PUT /api/accounts/:accountNumber/balance.
// Amount and operation come in as query parameters, matching the
// internal collaborator contract.
func (h *AccountHandler) AdjustBalance(c *fiber.Ctx) error {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		return response.BadRequest(c, "invalid amount")
	}

	acct, err := h.service.AdjustBalance(c.Context(), account.AdjustBalanceRequest{
		AccountNumber: c.Params("accountNumber"),
		Amount:        amount,
		Direction:     account.BalanceDirection(c.Query("operation")),
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "balance updated", fiber.Map{
		"accountNumber":  acct.AccountNumber,
		"accountBalance": acct.AccountBalance,
	})
}

func (h *AccountHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, account.ErrAccountExists):
		return response.Conflict(c, err.Error())
	case errors.Is(err, account.ErrAccountNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, account.ErrInsufficientFunds):
		return response.UnprocessableFunds(c, err.Error())
	case errors.Is(err, account.ErrInvalidDirection), errors.Is(err, account.ErrInvalidAmount):
		return response.BadRequest(c, err.Error())
	default:
		return response.ServerError(c, "internal server error occurred")
	}
}

package handlers

import (
	"errors"

	"github.com/omokarogabriel/banking-system/internal/services/transaction"
	"github.com/omokarogabriel/banking-system/internal/utils/pagination"
	"github.com/omokarogabriel/banking-system/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TransactionHandler exposes ledger endpoints.
type TransactionHandler struct {
	service  transaction.Service
	validate *validator.Validate
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(service transaction.Service, validate *validator.Validate) *TransactionHandler {
	return &TransactionHandler{service: service, validate: validate}
}

// Transfer handles POST /api/transactions/transfer.
func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	var req transaction.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	info, err := h.service.ProcessTransfer(c.Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "transfer completed successfully", info)
}

// Deposit handles POST /api/transactions/deposit.
func (h *TransactionHandler) Deposit(c *fiber.Ctx) error {
	var req transaction.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	info, err := h.service.Deposit(c.Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "deposit completed successfully", info)
}

// Withdraw handles POST /api/transactions/withdraw.
func (h *TransactionHandler) Withdraw(c *fiber.Ctx) error {
	var req transaction.WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	info, err := h.service.Withdraw(c.Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "withdrawal completed successfully", info)
}

// History handles GET /api/transactions/history/:accountNumber.
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	infos, err := h.service.History(c.Context(), c.Params("accountNumber"), p.Page, p.Size)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "transaction history", infos)
}

// GetTransaction handles GET /api/transactions/:reference.
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	info, err := h.service.GetByReference(c.Context(), c.Params("reference"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "transaction found", info)
}

func (h *TransactionHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transaction.ErrSourceAccountNotFound),
		errors.Is(err, transaction.ErrDestinationAccountNotFound),
		errors.Is(err, transaction.ErrAccountNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, transaction.ErrInsufficientFunds):
		return response.UnprocessableFunds(c, err.Error())
	case errors.Is(err, transaction.ErrInvalidAmount), errors.Is(err, transaction.ErrSameAccount):
		return response.BadRequest(c, err.Error())
	default:
		return response.ServerError(c, "internal server error occurred")
	}
}

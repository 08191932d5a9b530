// Package response provides standardized JSON response helpers.
// Every response carries a categorical code; callers branch on the
// code, never on human-readable messages.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// Categorical response codes
const (
	CodeSuccess           = "success"
	CodeAlreadyExists     = "already-exists"
	CodeNotFound          = "not-found"
	CodeInsufficientFunds = "insufficient-funds"
	CodeInvalidInput      = "invalid-input"
	CodeInternalError     = "internal-error"
)

// Success writes a 200 response with the success code.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"code":    CodeSuccess,
		"message": message,
		"data":    data,
	})
}

// Created writes a 201 response with the success code.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"code":    CodeSuccess,
		"message": message,
		"data":    data,
	})
}

// Error writes an error response with the given status and code.
func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"code":  code,
		"error": message,
	})
}

// BadRequest writes a 400 invalid-input response.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, CodeInvalidInput, message)
}

// NotFound writes a 404 not-found response.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, CodeNotFound, message)
}

// Conflict writes a 409 already-exists response.
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, CodeAlreadyExists, message)
}

// UnprocessableFunds writes a 400 insufficient-funds response.
func UnprocessableFunds(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, CodeInsufficientFunds, message)
}

// ServerError writes a 500 internal-error response.
func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, CodeInternalError, message)
}

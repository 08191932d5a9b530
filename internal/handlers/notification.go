package handlers

import (
	"errors"

	"github.com/omokarogabriel/banking-system/internal/models"
	"github.com/omokarogabriel/banking-system/internal/services/notification"
	"github.com/omokarogabriel/banking-system/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler exposes the notification sink endpoint.
type NotificationHandler struct {
	service *notification.Service
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Send handles POST /api/notifications/send. Delivery is
// fire-and-forget; a success response only means the message was
// accepted for dispatch.
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var req models.Notification
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.service.Send(req); err != nil {
		if errors.Is(err, notification.ErrInvalidChannel) || errors.Is(err, notification.ErrMissingRecipient) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "internal server error occurred")
	}
	return response.Success(c, "notification accepted", nil)
}

// Package routes wires repositories, services, and handlers onto the
// fiber app.
package routes

import (
	"time"

	"github.com/omokarogabriel/banking-system/internal/config"
	"github.com/omokarogabriel/banking-system/internal/handlers"
	"github.com/omokarogabriel/banking-system/internal/middleware"
	"github.com/omokarogabriel/banking-system/internal/repositories"
	"github.com/omokarogabriel/banking-system/internal/services/account"
	"github.com/omokarogabriel/banking-system/internal/services/notification"
	"github.com/omokarogabriel/banking-system/internal/services/transaction"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, notifier *notification.Service) {
	accountRepo := repositories.NewAccountRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)

	validate := validator.New()

	accountService := account.NewService(accountRepo, repositories.CacheService, notifier, account.Config{
		NumberAttempts: config.GetIntEnv("ACCOUNT_NUMBER_ATTEMPTS", account.DefaultNumberAttempts),
	})
	transactionService := transaction.NewService(transactionRepo, accountService, repositories.CacheService, notifier, transaction.Config{
		ProcessingTimeout: config.GetDurationEnv("PROCESSING_TIMEOUT", transaction.DefaultProcessingTimeout),
	})

	accountHandler := handlers.NewAccountHandler(accountService, validate)
	transactionHandler := handlers.NewTransactionHandler(transactionService, validate)
	notificationHandler := handlers.NewNotificationHandler(notifier)
	healthHandler := handlers.NewHealthHandler(db, repositories.CacheService)

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	accounts := api.Group("/accounts")
	accounts.Post("/", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("CREATE_ACCOUNT_RATE_LIMIT", 5),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}), accountHandler.CreateAccount)
	accounts.Get("/:accountNumber", accountHandler.GetAccount)

	// Internal collaborator endpoint: balance mutation requires a
	// service token.
	serviceSecret := config.GetEnv("SERVICE_TOKEN_SECRET", "banking-internal")
	accounts.Put("/:accountNumber/balance", middleware.ServiceAuth(serviceSecret), accountHandler.AdjustBalance)

	transactions := api.Group("/transactions")
	transactions.Post("/transfer", transactionHandler.Transfer)
	transactions.Post("/deposit", transactionHandler.Deposit)
	transactions.Post("/withdraw", transactionHandler.Withdraw)
	transactions.Get("/history/:accountNumber", transactionHandler.History)
	transactions.Get("/:reference", transactionHandler.GetTransaction)

	notifications := api.Group("/notifications")
	notifications.Post("/send", notificationHandler.Send)
}

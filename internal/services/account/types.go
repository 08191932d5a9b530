package account

import "github.com/shopspring/decimal"

// BalanceDirection selects how AdjustBalance mutates a balance.
type BalanceDirection string

// Balance directions
const (
	DirectionCredit BalanceDirection = "CREDIT"
	DirectionDebit  BalanceDirection = "DEBIT"
)

// CreateAccountRequest carries the profile for a new account.
// Field rules mirror the storage constraints.
type CreateAccountRequest struct {
	FirstName              string `json:"firstName" validate:"required,min=2,max=50"`
	LastName               string `json:"lastName" validate:"required,min=2,max=50"`
	OtherName              string `json:"otherName,omitempty" validate:"omitempty,max=50"`
	Gender                 string `json:"gender" validate:"required"`
	Address                string `json:"address" validate:"required"`
	StateOfOrigin          string `json:"stateOfOrigin,omitempty"`
	Email                  string `json:"email" validate:"required,email"`
	PhoneNumber            string `json:"phoneNumber" validate:"required,e164"`
	AlternativePhoneNumber string `json:"alternativePhoneNumber,omitempty" validate:"omitempty,e164"`
}

// AdjustBalanceRequest mutates an account balance in one direction.
type AdjustBalanceRequest struct {
	AccountNumber string           `json:"accountNumber" validate:"required"`
	Amount        decimal.Decimal  `json:"amount"`
	Direction     BalanceDirection `json:"direction" validate:"required"`
}

// Config holds account service tuning knobs.
type Config struct {
	// NumberAttempts bounds the generate-and-retry loop when a freshly
	// generated account number collides with an existing one.
	NumberAttempts int
}

// DefaultNumberAttempts is used when Config.NumberAttempts is zero.
const DefaultNumberAttempts = 5

package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account statuses
const (
	AccountStatusActive = "ACTIVE"
	AccountStatusFrozen = "FROZEN"
	AccountStatusClosed = "CLOSED"
)

// Account is a customer bank account. The account number is the
// caller-facing identifier; the surrogate ID never leaves the store.
type Account struct {
	ID                     uint            `gorm:"primarykey" json:"id"`
	FirstName              string          `gorm:"not null" json:"firstName"`
	LastName               string          `gorm:"not null" json:"lastName"`
	OtherName              string          `json:"otherName,omitempty"`
	Gender                 string          `gorm:"not null" json:"gender"`
	Address                string          `gorm:"not null" json:"address"`
	StateOfOrigin          string          `json:"stateOfOrigin,omitempty"`
	AccountNumber          string          `gorm:"uniqueIndex;not null" json:"accountNumber"`
	AccountBalance         decimal.Decimal `gorm:"type:decimal(19,2);not null;default:0" json:"accountBalance"`
	Email                  string          `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber            string          `gorm:"not null" json:"phoneNumber"`
	AlternativePhoneNumber string          `json:"alternativePhoneNumber,omitempty"`
	Status                 string          `gorm:"not null;default:'ACTIVE'" json:"status"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

// AccountName joins the name parts into the display name used on statements.
func (a *Account) AccountName() string {
	parts := []string{a.FirstName, a.LastName}
	if a.OtherName != "" {
		parts = append(parts, a.OtherName)
	}
	return strings.Join(parts, " ")
}

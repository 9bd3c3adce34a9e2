package models

import "github.com/shopspring/decimal"

// Account represents a wallet, bank account or credit card
type Account struct {
	Base
	Name           string          `gorm:"not null;uniqueIndex" json:"name"`
	InitialBalance decimal.Decimal `gorm:"type:real;not null;default:0" json:"initial_balance"`
	IsCreditCard   bool            `gorm:"not null;default:false" json:"is_credit_card"`

	// Balance is initial_balance plus revenue minus expense over the rows
	// that reference the account. Computed on read, never stored.
	Balance decimal.Decimal `gorm:"-" json:"balance"`
}

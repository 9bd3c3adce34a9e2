package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreatedAtLayout matches the ISO timestamps SQLite writes with
// strftime('%Y-%m-%dT%H:%M:%fZ', 'now').
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

func init() {
	// Amounts travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base contains common columns for all tables
type Base struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CreatedAt string `gorm:"column:created_at;not null" json:"created_at"`
}

// BeforeCreate hook stamps the creation time in the legacy text format
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.CreatedAt == "" {
		b.CreatedAt = time.Now().UTC().Format(CreatedAtLayout)
	}
	return nil
}

// EntryType distinguishes money going out from money coming in. Both
// categories and ledger rows carry one and they must agree.
type EntryType string

const (
	EntryTypeExpense EntryType = "expense"
	EntryTypeRevenue EntryType = "revenue"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	return t == EntryTypeExpense || t == EntryTypeRevenue
}

package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"mywallet/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates an account with the given opening balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, initialBalance string) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:           fmt.Sprintf("Test Account %d", nextID()),
		InitialBalance: decimal.RequireFromString(initialBalance),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.EntryType, subgroups ...string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:      fmt.Sprintf("Test Category %d", nextID()),
		Type:      categoryType,
		Subgroups: models.SubgroupList(subgroups),
	}
	if categoryType == models.EntryTypeExpense {
		color := models.DefaultExpenseColor
		category.Color = &color
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a single ledger row settling and purchased
// on date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryID uint, entryType models.EntryType, amount, date string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionWith(t, db, models.Transaction{
		CategoryID: categoryID,
		Type:       entryType,
		Amount:     decimal.RequireFromString(amount),
		Date:       date,
	})
}

// CreateTestTransactionWith creates a ledger row from a template, filling
// in the description and purchase date when missing.
func CreateTestTransactionWith(t *testing.T, db *gorm.DB, tx models.Transaction) *models.Transaction {
	t.Helper()

	if tx.Description == "" {
		tx.Description = fmt.Sprintf("Test Transaction %d", nextID())
	}
	if tx.PurchaseDate == nil {
		pd := tx.Date
		tx.PurchaseDate = &pd
	}
	if tx.InstallmentTotal == nil {
		one := 1
		tx.InstallmentNumber = &one
		tx.InstallmentTotal = &one
	}
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return &tx
}

// AddTestChecklistItem registers a checklist pair.
func AddTestChecklistItem(t *testing.T, db *gorm.DB, categoryID uint, subgroup string) {
	t.Helper()

	item := &models.ChecklistItem{CategoryID: categoryID, SubgroupName: subgroup}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create checklist item: %v", err)
	}
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// UintPtr returns a pointer to v.
func UintPtr(v uint) *uint { return &v }

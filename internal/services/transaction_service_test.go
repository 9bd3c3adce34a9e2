package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mywallet/internal/models"
	"mywallet/internal/testutil"
)

func newTransactionServiceForTest(db *gorm.DB) TransactionServicer {
	store := NewLedgerStore(db)
	return NewTransactionService(store, NewAccountService(db, store), NewCategoryService(db, store))
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestCreateTransaction(t *testing.T) {
	t.Run("installments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense, "Electronics")
		account := testutil.CreateTestAccount(t, db, "0")

		result, err := svc.CreateTransaction(ExpenseIntent{
			Description:      "Laptop",
			Amount:           decimal.RequireFromString("1000"),
			SettlementDate:   "2024-03-10",
			CategoryID:       cat.ID,
			AccountID:        &account.ID,
			Subgroup:         "Electronics",
			IsInstallment:    true,
			InstallmentCount: 3,
		})
		testutil.AssertNoError(t, err)

		if result.Count != 3 || len(result.Transactions) != 3 {
			t.Fatalf("expected 3 rows, got %d", result.Count)
		}
		if result.GroupID == nil {
			t.Fatal("expected group id in result")
		}
		if countRows(t, db) != 3 {
			t.Errorf("expected 3 persisted rows")
		}

		sum := decimal.Zero
		for _, row := range result.Transactions {
			sum = sum.Add(row.Amount)
		}
		if !sum.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected group to sum to 1000, got %s", sum)
		}
	})

	t.Run("revenue_single", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeRevenue)

		zero := uint(0)
		result, err := svc.CreateTransaction(ExpenseIntent{
			Description:    "Salary",
			Amount:         decimal.NewFromInt(3000),
			Type:           models.EntryTypeRevenue,
			SettlementDate: "2024-03-05",
			CategoryID:     cat.ID,
			AccountID:      &zero,
		})
		testutil.AssertNoError(t, err)
		if result.Count != 1 || result.GroupID != nil {
			t.Errorf("expected one ungrouped row, got %d (group %v)", result.Count, result.GroupID)
		}
		if result.Transactions[0].AccountID != nil {
			t.Error("expected account id 0 to be stored as no account")
		}
	})

	t.Run("category_type_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeRevenue)

		_, err := svc.CreateTransaction(ExpenseIntent{
			Description:    "Oops",
			Amount:         decimal.NewFromInt(10),
			SettlementDate: "2024-03-05",
			CategoryID:     cat.ID,
		})
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
		if countRows(t, db) != 0 {
			t.Error("expected nothing written")
		}
	})

	t.Run("revenue_installments_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeRevenue)

		_, err := svc.CreateTransaction(ExpenseIntent{
			Description:      "Bonus",
			Amount:           decimal.NewFromInt(10),
			Type:             models.EntryTypeRevenue,
			SettlementDate:   "2024-03-05",
			CategoryID:       cat.ID,
			IsInstallment:    true,
			InstallmentCount: 2,
		})
		testutil.AssertAppError(t, err, "INSTALLMENT_NOT_ALLOWED")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)

		_, err := svc.CreateTransaction(ExpenseIntent{
			Description:    "x",
			Amount:         decimal.NewFromInt(10),
			SettlementDate: "2024-03-05",
			CategoryID:     999,
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("missing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)

		_, err := svc.CreateTransaction(ExpenseIntent{
			Description:    "x",
			Amount:         decimal.NewFromInt(10),
			SettlementDate: "2024-03-05",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)

		missing := uint(777)
		_, err := svc.CreateTransaction(ExpenseIntent{
			Description:    "x",
			Amount:         decimal.NewFromInt(10),
			SettlementDate: "2024-03-05",
			CategoryID:     cat.ID,
			AccountID:      &missing,
		})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("invalid_amount_writes_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)

		_, err := svc.CreateTransaction(ExpenseIntent{
			Description:      "x",
			Amount:           decimal.NewFromInt(-1),
			SettlementDate:   "2024-03-05",
			CategoryID:       cat.ID,
			IsInstallment:    true,
			InstallmentCount: 3,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		if countRows(t, db) != 0 {
			t.Error("expected nothing written")
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("edits_one_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)

		result, err := svc.CreateTransaction(ExpenseIntent{
			Description:      "Bike",
			Amount:           decimal.NewFromInt(600),
			SettlementDate:   "2024-03-10",
			CategoryID:       cat.ID,
			IsInstallment:    true,
			InstallmentCount: 2,
		})
		testutil.AssertNoError(t, err)

		date := "20/04/2024"
		updated, err := svc.UpdateTransaction(result.Transactions[1].ID, RowUpdate{Date: &date})
		testutil.AssertNoError(t, err)
		if updated.Date != "2024-04-20" {
			t.Errorf("expected normalized date 2024-04-20, got %s", updated.Date)
		}

		first, err := svc.GetTransactionByID(result.Transactions[0].ID)
		testutil.AssertNoError(t, err)
		if first.Date != "2024-03-10" {
			t.Errorf("sibling date should be unchanged, got %s", first.Date)
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, cat.ID, models.EntryTypeExpense, "10", "2024-03-01")

		zero := decimal.Zero
		_, err := svc.UpdateTransaction(tx.ID, RowUpdate{Amount: &zero})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_category_of_other_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		rev := testutil.CreateTestCategory(t, db, models.EntryTypeRevenue)
		tx := testutil.CreateTestTransaction(t, db, cat.ID, models.EntryTypeExpense, "10", "2024-03-01")

		_, err := svc.UpdateTransaction(tx.ID, RowUpdate{CategoryID: &rev.ID})
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTransactionServiceForTest(db)

		_, err := svc.UpdateTransaction(31337, RowUpdate{})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTransactionServiceForTest(db)
	cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)

	result, err := svc.CreateTransaction(ExpenseIntent{
		Description:      "Couch",
		Amount:           decimal.NewFromInt(1200),
		SettlementDate:   "2024-01-05",
		CategoryID:       cat.ID,
		IsInstallment:    true,
		InstallmentCount: 12,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteTransaction(result.Transactions[0].ID))
	if countRows(t, db) != 11 {
		t.Errorf("expected 11 rows after deleting one")
	}

	n, err := svc.DeleteInstallmentGroup(*result.GroupID)
	testutil.AssertNoError(t, err)
	if n != 11 {
		t.Errorf("expected 11 rows deleted with the group, got %d", n)
	}
	if countRows(t, db) != 0 {
		t.Errorf("expected empty ledger")
	}

	err = svc.DeleteTransaction(result.Transactions[0].ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

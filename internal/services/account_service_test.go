package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"mywallet/internal/models"
	"mywallet/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewLedgerStore(db))

		account, err := svc.CreateAccount("Wallet", decimal.RequireFromString("25.50"), false)
		testutil.AssertNoError(t, err)

		if account.ID == 0 {
			t.Fatal("expected non-zero account ID")
		}
		if account.Name != "Wallet" {
			t.Errorf("expected name Wallet, got %s", account.Name)
		}
		if !account.Balance.Equal(decimal.RequireFromString("25.5")) {
			t.Errorf("expected balance 25.5, got %s", account.Balance)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewLedgerStore(db))

		_, err := svc.CreateAccount("  ", decimal.Zero, false)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewLedgerStore(db))

		_, err := svc.CreateAccount("Card", decimal.Zero, true)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateAccount("Card", decimal.Zero, true)
		testutil.AssertAppError(t, err, "DUPLICATE_NAME")
	})
}

func TestAccountBalances(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db, NewLedgerStore(db))

	account := testutil.CreateTestAccount(t, db, "100")
	expense := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
	revenue := testutil.CreateTestCategory(t, db, models.EntryTypeRevenue)

	testutil.CreateTestTransactionWith(t, db, models.Transaction{
		AccountID: &account.ID, CategoryID: expense.ID, Type: models.EntryTypeExpense,
		Amount: decimal.RequireFromString("30.10"), Date: "2024-01-02",
	})
	testutil.CreateTestTransactionWith(t, db, models.Transaction{
		AccountID: &account.ID, CategoryID: revenue.ID, Type: models.EntryTypeRevenue,
		Amount: decimal.RequireFromString("50.20"), Date: "2024-01-03",
	})
	testutil.CreateTestTransaction(t, db, expense.ID, models.EntryTypeExpense, "999", "2024-01-04")

	got, err := svc.GetAccountByID(account.ID)
	testutil.AssertNoError(t, err)
	if !got.Balance.Equal(decimal.RequireFromString("120.1")) {
		t.Errorf("expected balance 120.1, got %s", got.Balance)
	}

	all, err := svc.GetAccounts()
	testutil.AssertNoError(t, err)
	if len(all) != 1 || !all[0].Balance.Equal(got.Balance) {
		t.Errorf("expected listing to carry the same balance, got %+v", all)
	}
}

func TestUpdateAccount(t *testing.T) {
	t.Run("rename_and_rebalance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewLedgerStore(db))
		account := testutil.CreateTestAccount(t, db, "10")

		name := "Savings"
		balance := decimal.NewFromInt(500)
		updated, err := svc.UpdateAccount(account.ID, AccountUpdate{Name: &name, InitialBalance: &balance})
		testutil.AssertNoError(t, err)

		if updated.Name != "Savings" {
			t.Errorf("expected name Savings, got %s", updated.Name)
		}
		if !updated.InitialBalance.Equal(balance) {
			t.Errorf("expected initial balance 500, got %s", updated.InitialBalance)
		}
	})

	t.Run("name_taken", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewLedgerStore(db))
		first := testutil.CreateTestAccount(t, db, "0")
		second := testutil.CreateTestAccount(t, db, "0")

		_, err := svc.UpdateAccount(second.ID, AccountUpdate{Name: &first.Name})
		testutil.AssertAppError(t, err, "DUPLICATE_NAME")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewLedgerStore(db))

		_, err := svc.UpdateAccount(404, AccountUpdate{})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("blocked_by_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewLedgerStore(db))
		account := testutil.CreateTestAccount(t, db, "0")
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		for i := 0; i < 2; i++ {
			testutil.CreateTestTransactionWith(t, db, models.Transaction{
				AccountID: &account.ID, CategoryID: cat.ID, Type: models.EntryTypeExpense,
				Amount: decimal.NewFromInt(1), Date: "2024-01-01",
			})
		}

		testutil.AssertInUse(t, svc.DeleteAccount(account.ID), "ACCOUNT_IN_USE", 2)

		if _, err := svc.GetAccountByID(account.ID); err != nil {
			t.Errorf("expected blocked account to survive, got %v", err)
		}
	})

	t.Run("unused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewLedgerStore(db))
		account := testutil.CreateTestAccount(t, db, "0")

		testutil.AssertNoError(t, svc.DeleteAccount(account.ID))

		_, err := svc.GetAccountByID(account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

package services

import (
	"fmt"
	"strings"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/logger"
	"mywallet/internal/models"
	"mywallet/internal/normalize"
	"mywallet/internal/pagination"
)

// transactionService validates ledger writes, expands them and hands the
// rows to the store.
type transactionService struct {
	store           LedgerStore
	accountService  AccountServicer
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(store LedgerStore, accountService AccountServicer, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		store:           store,
		accountService:  accountService,
		categoryService: categoryService,
	}
}

// CreateTransaction validates an intent, expands it into one or more rows
// and persists them atomically. Nothing is written when validation fails.
func (s *transactionService) CreateTransaction(intent ExpenseIntent) (*CreateResult, error) {
	if intent.Type == "" {
		intent.Type = models.EntryTypeExpense
	}
	if !intent.Type.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if intent.IsInstallment && intent.Type != models.EntryTypeExpense {
		return nil, apperrors.ErrInstallmentNotAllowed
	}
	if intent.CategoryID == 0 {
		return nil, apperrors.Invalid("category_id", "is required")
	}

	category, err := s.categoryService.GetCategoryByID(intent.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.Type != intent.Type {
		return nil, apperrors.ErrCategoryTypeMismatch
	}

	if intent.AccountID != nil && *intent.AccountID == 0 {
		intent.AccountID = nil
	}
	if intent.AccountID != nil {
		if _, err := s.accountService.GetAccountByID(*intent.AccountID); err != nil {
			return nil, err
		}
	}

	rows, err := ExpandInstallments(intent)
	if err != nil {
		return nil, err
	}

	created, err := s.store.CreateRows(rows)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{
		Count:        len(created),
		Transactions: created,
		GroupID:      created[0].InstallmentGroupID,
	}
	if intent.IsInstallment {
		result.Message = fmt.Sprintf("%d installments created", len(created))
	} else {
		result.Message = "transaction created"
	}

	logger.Named("ledger").Infow("Ledger write",
		"type", intent.Type,
		"category_id", intent.CategoryID,
		"rows", len(created),
		"amount", intent.Amount.String(),
	)
	return result, nil
}

// GetTransactionByID retrieves one row with its account and category names.
func (s *transactionService) GetTransactionByID(transactionID uint) (*models.LedgerRow, error) {
	return s.store.GetRow(transactionID)
}

// GetTransactions returns every row matching filter.
func (s *transactionService) GetTransactions(filter LedgerFilter) ([]models.LedgerRow, error) {
	return s.store.Query(filter)
}

// GetTransactionsPage returns one page of rows matching filter.
func (s *transactionService) GetTransactionsPage(filter LedgerFilter, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerRow], error) {
	return s.store.QueryPage(filter, page)
}

// UpdateTransaction edits a single row. Siblings in an installment group
// are not touched.
func (s *transactionService) UpdateTransaction(transactionID uint, update RowUpdate) (*models.LedgerRow, error) {
	existing, err := s.store.GetRow(transactionID)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return existing, nil
	}

	if update.Description != nil {
		d := strings.TrimSpace(*update.Description)
		if d == "" {
			return nil, apperrors.Invalid("description", "must not be empty")
		}
		update.Description = &d
	}
	if update.Amount != nil {
		amount := update.Amount.Round(2)
		if !amount.IsPositive() {
			return nil, apperrors.Invalid("amount", "must be greater than zero")
		}
		update.Amount = &amount
	}
	if update.Date != nil {
		d, err := normalize.ParseDate(*update.Date)
		if err != nil {
			return nil, apperrors.Invalid("date", err.Error())
		}
		iso := d.String()
		update.Date = &iso
	}
	if update.PurchaseDate != nil {
		d, err := normalize.ParseDate(*update.PurchaseDate)
		if err != nil {
			return nil, apperrors.Invalid("purchase_date", err.Error())
		}
		iso := d.String()
		update.PurchaseDate = &iso
	}
	if update.CategoryID != nil {
		category, err := s.categoryService.GetCategoryByID(*update.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.Type != existing.Type {
			return nil, apperrors.ErrCategoryTypeMismatch
		}
	}
	if update.AccountID != nil && *update.AccountID != 0 {
		if _, err := s.accountService.GetAccountByID(*update.AccountID); err != nil {
			return nil, err
		}
	}
	if update.Subgroup != nil && existing.Type == models.EntryTypeRevenue {
		update.Subgroup = nil
	}

	if err := s.store.UpdateRow(transactionID, update); err != nil {
		return nil, err
	}
	return s.store.GetRow(transactionID)
}

// DeleteTransaction deletes one row, even when it belongs to a group.
func (s *transactionService) DeleteTransaction(transactionID uint) error {
	return s.store.DeleteRow(transactionID)
}

// DeleteInstallmentGroup deletes every row sharing groupID.
func (s *transactionService) DeleteInstallmentGroup(groupID string) (int64, error) {
	count, err := s.store.DeleteGroup(groupID)
	if err != nil {
		return 0, err
	}
	logger.Named("ledger").Infow("Deleted installment group", "group_id", groupID, "rows", count)
	return count, nil
}

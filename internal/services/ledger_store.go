package services

import (
	"errors"
	"strings"

	"cloud.google.com/go/civil"
	"gorm.io/gorm"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/models"
	"mywallet/internal/normalize"
	"mywallet/internal/pagination"
)

// DateAxis selects which date of a row places it in time.
type DateAxis string

const (
	AxisSettlement DateAxis = "settlement"
	AxisPurchase   DateAxis = "purchase"
)

// Valid reports whether a is a known axis.
func (a DateAxis) Valid() bool {
	return a == AxisSettlement || a == AxisPurchase
}

// column returns the SQL expression of the axis date on the aliased
// transactions table. Rows without a purchase date fall back to settlement.
func (a DateAxis) column() string {
	if a == AxisPurchase {
		return "COALESCE(NULLIF(t.purchase_date, ''), t.date)"
	}
	return "t.date"
}

// LedgerFilter holds optional filter parameters for ledger queries. From and
// To are inclusive and measured on Axis. Period matches rows whose
// settlement or purchase date falls in the month.
type LedgerFilter struct {
	Type       *models.EntryType
	From       *civil.Date
	To         *civil.Date
	Axis       DateAxis
	CategoryID *uint
	AccountID  *uint
	GroupID    *string
	Period     *Period
	Order      pagination.Direction
}

const ledgerSelect = "t.*, a.name AS account_name, COALESCE(c.name, '') AS category_name"

// ledgerStore is the gorm-backed LedgerStore.
type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(db *gorm.DB) LedgerStore {
	return &ledgerStore{db: db}
}

// WithTx returns a store bound to an open database transaction.
func (s *ledgerStore) WithTx(tx *gorm.DB) LedgerStore {
	return &ledgerStore{db: tx}
}

// CreateRows inserts all rows in one transaction. If any insert fails none
// of the rows are kept.
func (s *ledgerStore) CreateRows(rows []models.Transaction) ([]models.Transaction, error) {
	if len(rows) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no rows to create")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRow retrieves one annotated row.
func (s *ledgerStore) GetRow(id uint) (*models.LedgerRow, error) {
	var rows []models.LedgerRow
	if err := s.base().Where("t.id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	rows[0].Normalize()
	return &rows[0], nil
}

// UpdateRow changes only the addressed row. Installment siblings are left
// untouched and the group is never re-expanded.
func (s *ledgerStore) UpdateRow(id uint, u RowUpdate) error {
	fields := map[string]interface{}{}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Amount != nil {
		fields["amount"] = *u.Amount
	}
	if u.Date != nil {
		fields["date"] = normalize.Date(*u.Date)
	}
	if u.PurchaseDate != nil {
		fields["purchase_date"] = normalize.Date(*u.PurchaseDate)
	}
	if u.AccountID != nil {
		if *u.AccountID == 0 {
			fields["account_id"] = nil
		} else {
			fields["account_id"] = *u.AccountID
		}
	}
	if u.CategoryID != nil {
		fields["category_id"] = *u.CategoryID
	}
	if u.Subgroup != nil {
		if label := normalize.Subgroup(*u.Subgroup); label != "" {
			fields["subgroup"] = label
		} else {
			fields["subgroup"] = nil
		}
	}
	if u.IsFixed != nil {
		fields["is_fixed"] = *u.IsFixed
	}

	if len(fields) == 0 {
		if _, err := s.GetRow(id); err != nil {
			return err
		}
		return nil
	}

	res := s.db.Table("transactions").Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteRow deletes exactly one row.
func (s *ledgerStore) DeleteRow(id uint) error {
	res := s.db.Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteGroup deletes every row of an installment group in one statement
// and returns how many were removed.
func (s *ledgerStore) DeleteGroup(groupID string) (int64, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return 0, apperrors.Invalid("group_id", "is required")
	}

	res := s.db.Where("installment_group_id = ?", groupID).Delete(&models.Transaction{})
	if res.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, apperrors.ErrInstallmentGroupNotFound
	}
	return res.RowsAffected, nil
}

// ListByType returns every row of one type, newest first.
func (s *ledgerStore) ListByType(entryType models.EntryType) ([]models.LedgerRow, error) {
	return s.Query(LedgerFilter{Type: &entryType})
}

// Query returns the rows matching filter, newest settlement date first
// unless filter.Order is ascending.
func (s *ledgerStore) Query(filter LedgerFilter) ([]models.LedgerRow, error) {
	var rows []models.LedgerRow
	if err := applyLedgerFilters(s.base(), filter).
		Scopes(pagination.SortBy(filter.Order, "t.date", "t.id")).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rows == nil {
		rows = []models.LedgerRow{}
	}
	normalizeRows(rows)
	return rows, nil
}

// QueryPage is Query with OFFSET/LIMIT paging.
func (s *ledgerStore) QueryPage(filter LedgerFilter, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerRow], error) {
	page.Defaults()

	var totalItems int64
	if err := applyLedgerFilters(s.db.Table("transactions AS t"), filter).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []models.LedgerRow
	if err := applyLedgerFilters(s.base(), filter).
		Scopes(pagination.Paginate(page)).
		Scopes(pagination.SortBy(filter.Order, "t.date", "t.id")).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	normalizeRows(rows)
	result := pagination.NewPageResponse(rows, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// CountByCategory counts the rows referencing a category.
func (s *ledgerStore) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// CountByAccount counts the rows referencing an account.
func (s *ledgerStore) CountByAccount(accountID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

func (s *ledgerStore) base() *gorm.DB {
	return s.db.Table("transactions AS t").
		Select(ledgerSelect).
		Joins("LEFT JOIN accounts a ON a.id = t.account_id").
		Joins("LEFT JOIN categories c ON c.id = t.category_id")
}

func applyLedgerFilters(q *gorm.DB, f LedgerFilter) *gorm.DB {
	axis := f.Axis
	if !axis.Valid() {
		axis = AxisSettlement
	}

	if f.Type != nil {
		q = q.Where("t.type = ?", *f.Type)
	}
	if f.From != nil {
		q = q.Where(axis.column()+" >= ?", f.From.String())
	}
	if f.To != nil {
		// Half-open upper bound so stored timestamps on the last day match.
		q = q.Where(axis.column()+" < ?", f.To.AddDays(1).String())
	}
	if f.CategoryID != nil {
		q = q.Where("t.category_id = ?", *f.CategoryID)
	}
	if f.AccountID != nil {
		q = q.Where("t.account_id = ?", *f.AccountID)
	}
	if f.GroupID != nil {
		q = q.Where("t.installment_group_id = ?", *f.GroupID)
	}
	if f.Period != nil {
		key := f.Period.String()
		q = q.Where("(substr(t.date, 1, 7) = ? OR substr(COALESCE(t.purchase_date, ''), 1, 7) = ?)", key, key)
	}
	return q
}

func normalizeRows(rows []models.LedgerRow) {
	for i := range rows {
		rows[i].Normalize()
	}
}

// isNotFound reports whether err is gorm's record-not-found.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

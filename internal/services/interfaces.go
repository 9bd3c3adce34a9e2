package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mywallet/internal/models"
	"mywallet/internal/pagination"
)

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name string, initialBalance decimal.Decimal, isCreditCard bool) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	GetAccountByID(accountID uint) (*models.Account, error)
	UpdateAccount(accountID uint, update AccountUpdate) (*models.Account, error)
	DeleteAccount(accountID uint) error
}

// AccountUpdate carries the optional fields of an account edit.
type AccountUpdate struct {
	Name           *string
	InitialBalance *decimal.Decimal
	IsCreditCard   *bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.EntryType, subgroups []string, isFixed bool, color string) (*models.Category, error)
	GetCategories(categoryType *models.EntryType) ([]models.Category, error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	UpdateCategory(categoryID uint, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(categoryID uint) error
}

// CategoryUpdate carries the optional fields of a category edit. The type of
// a category is fixed at creation.
type CategoryUpdate struct {
	Name      *string
	Subgroups *[]string
	IsFixed   *bool
	Color     *string
}

// LedgerStore persists ledger rows. Every multi-row write is atomic.
type LedgerStore interface {
	CreateRows(rows []models.Transaction) ([]models.Transaction, error)
	GetRow(id uint) (*models.LedgerRow, error)
	UpdateRow(id uint, update RowUpdate) error
	DeleteRow(id uint) error
	DeleteGroup(groupID string) (int64, error)
	ListByType(entryType models.EntryType) ([]models.LedgerRow, error)
	Query(filter LedgerFilter) ([]models.LedgerRow, error)
	QueryPage(filter LedgerFilter, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerRow], error)
	CountByCategory(categoryID uint) (int64, error)
	CountByAccount(accountID uint) (int64, error)
	WithTx(tx *gorm.DB) LedgerStore
}

// RowUpdate carries the optional fields of a single-row edit. A non-nil
// AccountID of 0 detaches the row from its account.
type RowUpdate struct {
	Description  *string
	Amount       *decimal.Decimal
	Date         *string
	PurchaseDate *string
	AccountID    *uint
	CategoryID   *uint
	Subgroup     *string
	IsFixed      *bool
}

// IsEmpty reports whether the update changes nothing.
func (u RowUpdate) IsEmpty() bool {
	return u.Description == nil && u.Amount == nil && u.Date == nil && u.PurchaseDate == nil &&
		u.AccountID == nil && u.CategoryID == nil && u.Subgroup == nil && u.IsFixed == nil
}

// TransactionServicer defines the contract for ledger writes and reads.
type TransactionServicer interface {
	CreateTransaction(intent ExpenseIntent) (*CreateResult, error)
	GetTransactionByID(transactionID uint) (*models.LedgerRow, error)
	GetTransactions(filter LedgerFilter) ([]models.LedgerRow, error)
	GetTransactionsPage(filter LedgerFilter, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerRow], error)
	UpdateTransaction(transactionID uint, update RowUpdate) (*models.LedgerRow, error)
	DeleteTransaction(transactionID uint) error
	DeleteInstallmentGroup(groupID string) (int64, error)
}

// CreateResult describes the rows written for one ledger write.
type CreateResult struct {
	Count        int                  `json:"count"`
	Message      string               `json:"message"`
	GroupID      *string              `json:"group_id,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
}

// ChecklistServicer defines the contract for the monthly obligations checklist.
type ChecklistServicer interface {
	Status(period Period) ([]ChecklistStatus, error)
	List() ([]ChecklistEntry, error)
	Add(categoryID uint, subgroup string) error
	Remove(categoryID uint, subgroup string) error
	Toggle(categoryID uint, subgroup string, active bool) error
}

// ReportServicer defines the contract for trend, breakdown and summary reports.
type ReportServicer interface {
	Build(req ReportRequest) (*Report, error)
	Dashboard(today Period) (*Dashboard, error)
}

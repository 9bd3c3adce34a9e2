package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/models"
)

// accountService handles account-related business logic.
type accountService struct {
	db    *gorm.DB
	store LedgerStore
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB, store LedgerStore) AccountServicer {
	return &accountService{db: db, store: store}
}

// CreateAccount creates a new account
func (s *accountService) CreateAccount(name string, initialBalance decimal.Decimal, isCreditCard bool) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Invalid("name", "is required")
	}

	if err := s.ensureUniqueName(name, 0); err != nil {
		return nil, err
	}

	account := &models.Account{
		Name:           name,
		InitialBalance: initialBalance.Round(2),
		IsCreditCard:   isCreditCard,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	account.Balance = account.InitialBalance
	return account, nil
}

// GetAccounts lists every account ordered by name, with computed balances.
func (s *accountService) GetAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.enrichBalances(accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

// GetAccountByID retrieves an account by ID
func (s *accountService) GetAccountByID(accountID uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	accounts := []models.Account{account}
	if err := s.enrichBalances(accounts); err != nil {
		return nil, err
	}
	return &accounts[0], nil
}

// UpdateAccount renames an account or edits its initial balance.
func (s *accountService) UpdateAccount(accountID uint, update AccountUpdate) (*models.Account, error) {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.Invalid("name", "must not be empty")
		}
		if name != account.Name {
			if err := s.ensureUniqueName(name, accountID); err != nil {
				return nil, err
			}
		}
		fields["name"] = name
	}
	if update.InitialBalance != nil {
		fields["initial_balance"] = update.InitialBalance.Round(2)
	}
	if update.IsCreditCard != nil {
		fields["is_credit_card"] = *update.IsCreditCard
	}

	if len(fields) > 0 {
		if err := s.db.Model(&models.Account{}).Where("id = ?", accountID).Updates(fields).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetAccountByID(accountID)
}

// DeleteAccount deletes an account that no ledger row references.
func (s *accountService) DeleteAccount(accountID uint) error {
	if _, err := s.GetAccountByID(accountID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		count, err := s.store.WithTx(tx).CountByAccount(accountID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.InUse(apperrors.ErrAccountInUse, count)
		}

		if err := tx.Delete(&models.Account{}, accountID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func (s *accountService) ensureUniqueName(name string, exceptID uint) error {
	var count int64
	q := s.db.Model(&models.Account{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.WithMessage(apperrors.ErrDuplicateName, "an account with this name already exists")
	}
	return nil
}

type accountNet struct {
	AccountID uint
	Net       decimal.Decimal
}

// enrichBalances sets Balance = initial balance + revenue - expense for
// each account in place.
func (s *accountService) enrichBalances(accounts []models.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	ids := make([]uint, len(accounts))
	for i := range accounts {
		ids[i] = accounts[i].ID
	}

	var nets []accountNet
	if err := s.db.Model(&models.Transaction{}).
		Select("account_id, COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0) AS net", models.EntryTypeRevenue).
		Where("account_id IN ?", ids).
		Group("account_id").
		Scan(&nets).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byID := make(map[uint]decimal.Decimal, len(nets))
	for _, n := range nets {
		byID[n.AccountID] = n.Net.Round(2)
	}
	for i := range accounts {
		accounts[i].Balance = accounts[i].InitialBalance.Add(byID[accounts[i].ID])
	}
	return nil
}

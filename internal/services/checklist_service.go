package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/models"
	"mywallet/internal/normalize"
)

// ChecklistState is the reconciliation outcome of one checklist entry.
type ChecklistState string

const (
	ChecklistPaid    ChecklistState = "paid"
	ChecklistPending ChecklistState = "pending"
)

// ChecklistEntry is a configured obligation with its category name.
type ChecklistEntry struct {
	CategoryID   uint   `json:"category_id"`
	SubgroupName string `json:"subgroup_name"`
	CategoryName string `json:"category_name"`
}

// ChecklistStatus reports whether an obligation was paid in a period.
// When several rows match, Amount is their sum, Date is the most recent
// matched date and Matches counts them.
type ChecklistStatus struct {
	ChecklistEntry
	Status  ChecklistState  `json:"status"`
	Amount  decimal.Decimal `json:"amount"`
	Date    *string         `json:"date"`
	Matches int             `json:"matches"`
}

// checklistService reconciles the checklist against the ledger.
type checklistService struct {
	db    *gorm.DB
	store LedgerStore
}

// NewChecklistService creates a new ChecklistServicer.
func NewChecklistService(db *gorm.DB, store LedgerStore) ChecklistServicer {
	return &checklistService{db: db, store: store}
}

// Status reconciles every checklist entry against the rows whose settlement
// or purchase date falls in period. Subgroups are compared normalized and
// case-insensitively.
func (s *checklistService) Status(period Period) ([]ChecklistStatus, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}

	expense := models.EntryTypeExpense
	rows, err := s.store.Query(LedgerFilter{Type: &expense, Period: &period})
	if err != nil {
		return nil, err
	}

	type matchKey struct {
		categoryID uint
		subgroup   string
	}
	byKey := make(map[matchKey][]models.LedgerRow)
	for _, row := range rows {
		label := strings.ToLower(row.SubgroupLabel())
		if label == "" {
			continue
		}
		k := matchKey{row.CategoryID, label}
		byKey[k] = append(byKey[k], row)
	}

	result := make([]ChecklistStatus, 0, len(entries))
	for _, entry := range entries {
		status := ChecklistStatus{
			ChecklistEntry: entry,
			Status:         ChecklistPending,
			Amount:         decimal.Zero,
		}

		matches := byKey[matchKey{entry.CategoryID, strings.ToLower(normalize.Subgroup(entry.SubgroupName))}]
		if len(matches) > 0 {
			status.Status = ChecklistPaid
			status.Matches = len(matches)

			var latest string
			for _, m := range matches {
				status.Amount = status.Amount.Add(m.Amount)
				if d := m.EffectivePurchaseDate(); d > latest {
					latest = d
				}
			}
			status.Date = &latest
		}
		result = append(result, status)
	}
	return result, nil
}

// List returns the configured entries ordered by category then subgroup.
func (s *checklistService) List() ([]ChecklistEntry, error) {
	var entries []ChecklistEntry
	if err := s.db.Table("checklist AS ch").
		Select("ch.category_id, ch.subgroup_name, c.name AS category_name").
		Joins("JOIN categories c ON c.id = ch.category_id").
		Scan(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range entries {
		entries[i].SubgroupName = normalize.Subgroup(entries[i].SubgroupName)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !strings.EqualFold(a.CategoryName, b.CategoryName) {
			return strings.ToLower(a.CategoryName) < strings.ToLower(b.CategoryName)
		}
		return strings.ToLower(a.SubgroupName) < strings.ToLower(b.SubgroupName)
	})
	if entries == nil {
		entries = []ChecklistEntry{}
	}
	return entries, nil
}

// Add registers an obligation. Adding an existing pair, in any letter case,
// is a no-op.
func (s *checklistService) Add(categoryID uint, subgroup string) error {
	label, err := s.validate(categoryID, subgroup)
	if err != nil {
		return err
	}

	exists, err := s.exists(categoryID, label)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	item := &models.ChecklistItem{CategoryID: categoryID, SubgroupName: label}
	if err := s.db.Create(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Remove deletes an obligation.
func (s *checklistService) Remove(categoryID uint, subgroup string) error {
	label := normalize.Subgroup(subgroup)
	if label == "" {
		return apperrors.Invalid("subgroup_name", "is required")
	}

	res := s.db.Where("category_id = ? AND subgroup_name = ? COLLATE NOCASE", categoryID, label).
		Delete(&models.ChecklistItem{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrChecklistEntryNotFound
	}
	return nil
}

// Toggle adds the pair when active and removes it otherwise. Both
// directions are idempotent.
func (s *checklistService) Toggle(categoryID uint, subgroup string, active bool) error {
	if active {
		return s.Add(categoryID, subgroup)
	}

	err := s.Remove(categoryID, subgroup)
	if errors.Is(err, apperrors.ErrChecklistEntryNotFound) {
		return nil
	}
	return err
}

func (s *checklistService) validate(categoryID uint, subgroup string) (string, error) {
	if categoryID == 0 {
		return "", apperrors.Invalid("category_id", "is required")
	}
	label := normalize.Subgroup(subgroup)
	if label == "" {
		return "", apperrors.Invalid("subgroup_name", "is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return "", apperrors.ErrCategoryNotFound
	}
	return label, nil
}

func (s *checklistService) exists(categoryID uint, label string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.ChecklistItem{}).
		Where("category_id = ? AND subgroup_name = ? COLLATE NOCASE", categoryID, label).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

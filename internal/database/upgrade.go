package database

import (
	"fmt"

	"mywallet/internal/logger"
	"mywallet/internal/models"
	"mywallet/internal/normalize"

	"gorm.io/gorm"
)

// columnUpgrade is a column added after the first data files were written.
type columnUpgrade struct {
	Table  string
	Column string
	DDL    string
}

var columnUpgrades = []columnUpgrade{
	{"categories", "color", "ALTER TABLE categories ADD COLUMN color TEXT DEFAULT '#ef4444'"},
	{"categories", "is_fixed", "ALTER TABLE categories ADD COLUMN is_fixed BOOLEAN NOT NULL DEFAULT 0"},
	{"transactions", "purchase_date", "ALTER TABLE transactions ADD COLUMN purchase_date TEXT"},
	{"transactions", "subgroup", "ALTER TABLE transactions ADD COLUMN subgroup TEXT"},
	{"transactions", "installment_group_id", "ALTER TABLE transactions ADD COLUMN installment_group_id TEXT"},
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date)",
	"CREATE INDEX IF NOT EXISTS idx_transactions_purchase_date ON transactions (purchase_date)",
	"CREATE INDEX IF NOT EXISTS idx_transactions_group ON transactions (installment_group_id)",
	"CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions (category_id)",
	"CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (account_id)",
}

// EnsureColumns adds any missing column. Presence is checked against the
// table definition, never inferred from a failing query.
func EnsureColumns(db *gorm.DB) error {
	log := logger.Named("database")

	for _, u := range columnUpgrades {
		exists, err := HasColumn(db, u.Table, u.Column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := db.Exec(u.DDL).Error; err != nil {
			return fmt.Errorf("add column %s.%s: %w", u.Table, u.Column, err)
		}
		log.Infow("Added missing column", "table", u.Table, "column", u.Column)
	}
	return nil
}

// HasColumn reports whether table has column. pragma_table_info resolves
// the table name case-insensitively, which matters for files created with
// capitalized table names.
func HasColumn(db *gorm.DB, table, column string) (bool, error) {
	var count int64
	err := db.Raw("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("inspect %s.%s: %w", table, column, err)
	}
	return count > 0, nil
}

// EnsureIndexes creates the lookup indexes used by reports and the checklist.
func EnsureIndexes(db *gorm.DB) error {
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// RepairReport counts the rows each repair step touched.
type RepairReport struct {
	Dates             int64 `json:"dates"`
	PurchaseDates     int64 `json:"purchase_dates"`
	Subgroups         int64 `json:"subgroups"`
	CategorySubgroups int64 `json:"category_subgroups"`
	InstallmentFields int64 `json:"installment_fields"`
	Colors            int64 `json:"colors"`
}

// Total is the number of rows changed across all steps.
func (r RepairReport) Total() int64 {
	return r.Dates + r.PurchaseDates + r.Subgroups + r.CategorySubgroups + r.InstallmentFields + r.Colors
}

// Repair fixes data written by older versions. Every step only touches rows
// that are still in a legacy shape, so a second run changes nothing.
func Repair(db *gorm.DB) (RepairReport, error) {
	var report RepairReport
	log := logger.Named("database")

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if report.Dates, err = repairDates(tx); err != nil {
			return fmt.Errorf("repair dates: %w", err)
		}

		res := tx.Exec("UPDATE transactions SET purchase_date = date WHERE purchase_date IS NULL OR purchase_date = ''")
		if res.Error != nil {
			return fmt.Errorf("backfill purchase dates: %w", res.Error)
		}
		report.PurchaseDates = res.RowsAffected

		if report.Subgroups, err = repairSubgroups(tx); err != nil {
			return fmt.Errorf("repair subgroups: %w", err)
		}
		if report.CategorySubgroups, err = repairCategorySubgroups(tx); err != nil {
			return fmt.Errorf("repair category subgroups: %w", err)
		}

		res = tx.Exec(`UPDATE transactions SET installment_number = 1, installment_total = 1
			WHERE is_installment = 0 AND (installment_number IS NULL OR installment_total IS NULL)`)
		if res.Error != nil {
			return fmt.Errorf("repair installment fields: %w", res.Error)
		}
		report.InstallmentFields = res.RowsAffected

		res = tx.Exec("UPDATE categories SET color = ? WHERE type = ? AND (color IS NULL OR color = '')",
			models.DefaultExpenseColor, models.EntryTypeExpense)
		if res.Error != nil {
			return fmt.Errorf("repair colors: %w", res.Error)
		}
		report.Colors = res.RowsAffected
		return nil
	})
	if err != nil {
		return RepairReport{}, err
	}

	if report.Total() > 0 {
		log.Infow("Repaired legacy data",
			"dates", report.Dates,
			"purchase_dates", report.PurchaseDates,
			"subgroups", report.Subgroups,
			"category_subgroups", report.CategorySubgroups,
			"installment_fields", report.InstallmentFields,
			"colors", report.Colors,
		)
	}
	return report, nil
}

type dateRow struct {
	ID           uint
	Date         string
	PurchaseDate *string
}

func repairDates(tx *gorm.DB) (int64, error) {
	var rows []dateRow
	if err := tx.Raw(`SELECT id, date, purchase_date FROM transactions
		WHERE date LIKE '%/%' OR purchase_date LIKE '%/%'`).Scan(&rows).Error; err != nil {
		return 0, err
	}

	var changed int64
	for _, r := range rows {
		date := normalize.Date(r.Date)
		var purchase *string
		if r.PurchaseDate != nil {
			p := normalize.Date(*r.PurchaseDate)
			purchase = &p
		}
		if date == r.Date && equalPtr(purchase, r.PurchaseDate) {
			continue
		}
		if err := tx.Exec("UPDATE transactions SET date = ?, purchase_date = ? WHERE id = ?", date, purchase, r.ID).Error; err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

type subgroupRow struct {
	ID       uint
	Subgroup string
}

func repairSubgroups(tx *gorm.DB) (int64, error) {
	var rows []subgroupRow
	if err := tx.Raw(`SELECT id, subgroup FROM transactions
		WHERE subgroup IS NOT NULL AND (
			subgroup LIKE '[%' OR subgroup LIKE '{%' OR subgroup LIKE '"%' OR subgroup LIKE '''%'
			OR subgroup LIKE ' %' OR subgroup LIKE '% ' OR subgroup = ''
		)`).Scan(&rows).Error; err != nil {
		return 0, err
	}

	var changed int64
	for _, r := range rows {
		label := normalize.Subgroup(r.Subgroup)
		if label == r.Subgroup {
			continue
		}
		var value any
		if label != "" {
			value = label
		}
		if err := tx.Exec("UPDATE transactions SET subgroup = ? WHERE id = ?", value, r.ID).Error; err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

type categorySubgroupRow struct {
	ID        uint
	Subgroups string
}

func repairCategorySubgroups(tx *gorm.DB) (int64, error) {
	var rows []categorySubgroupRow
	if err := tx.Raw("SELECT id, subgroups FROM categories WHERE subgroups IS NOT NULL").Scan(&rows).Error; err != nil {
		return 0, err
	}

	var changed int64
	for _, r := range rows {
		var list models.SubgroupList
		if err := list.Scan(r.Subgroups); err != nil {
			return changed, err
		}
		value, err := list.Value()
		if err != nil {
			return changed, err
		}
		if s, ok := value.(string); ok && s == r.Subgroups {
			continue
		}
		if err := tx.Exec("UPDATE categories SET subgroups = ? WHERE id = ?", value, r.ID).Error; err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

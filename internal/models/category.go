package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"mywallet/internal/normalize"
)

// DefaultExpenseColor is assigned to expense categories created without one.
const DefaultExpenseColor = "#ef4444"

// Category groups ledger rows. Expense categories carry an ordered list of
// subgroup labels used to tag rows and to drive the monthly checklist.
type Category struct {
	Base
	Name      string       `gorm:"not null;uniqueIndex:idx_categories_name_type" json:"name"`
	Type      EntryType    `gorm:"not null;uniqueIndex:idx_categories_name_type" json:"type"`
	Subgroups SubgroupList `gorm:"type:text" json:"subgroups"`
	IsFixed   bool         `gorm:"not null;default:false" json:"is_fixed"`
	Color     *string      `json:"color"`
}

// SubgroupList is the ordered list of subgroup labels of a category. It is
// stored as a JSON array in a text column; older files hold arrays of
// objects or doubly-encoded strings, which are normalized on scan.
type SubgroupList []string

// Scan implements sql.Scanner.
func (s *SubgroupList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = SubgroupList{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("subgroups: unsupported source type %T", src)
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Not an array: treat the whole value as a single label.
		*s = SubgroupList(normalize.Subgroups([]string{raw}))
		return nil
	}

	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, normalize.Subgroup(item))
	}
	*s = SubgroupList(normalize.Subgroups(labels))
	return nil
}

// Value implements driver.Valuer. Empty lists are stored as NULL.
func (s SubgroupList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// MarshalJSON always emits an array, never null.
func (s SubgroupList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

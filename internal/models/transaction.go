package models

import (
	"fmt"
	"regexp"
	"strings"

	"mywallet/internal/normalize"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var installmentPrefix = regexp.MustCompile(`^\[(?:Parc )?\d+/\d+\]\s*`)

// Transaction is one ledger row. An installment purchase is stored as N rows
// sharing InstallmentGroupID, one per settlement month.
type Transaction struct {
	Base
	AccountID          *uint           `json:"account_id"`
	CategoryID         uint            `gorm:"not null" json:"category_id"`
	Description        string          `gorm:"not null" json:"description"`
	Type               EntryType       `gorm:"not null" json:"type"`
	Amount             decimal.Decimal `gorm:"type:real;not null" json:"amount"`
	Date               string          `gorm:"column:date;not null" json:"date"`
	PurchaseDate       *string         `json:"purchase_date"`
	IsFixed            bool            `gorm:"not null;default:false" json:"is_fixed"`
	IsInstallment      bool            `gorm:"not null;default:false" json:"is_installment"`
	InstallmentNumber  *int            `json:"installment_number"`
	InstallmentTotal   *int            `json:"installment_total"`
	InstallmentGroupID *string         `json:"installment_group_id"`
	Subgroup           *string         `json:"subgroup"`
}

// LedgerRow is a transaction annotated with the display names of its
// account and category. DescriptionRoot is the description without the
// installment position prefix.
type LedgerRow struct {
	Transaction
	AccountName     *string `json:"account_name"`
	CategoryName    string  `json:"category_name"`
	DescriptionRoot string  `gorm:"-" json:"description_root"`
}

// Normalize normalizes the underlying row and derives DescriptionRoot.
func (r *LedgerRow) Normalize() {
	r.Transaction.Normalize()
	r.DescriptionRoot = DescriptionRoot(r.Description)
}

// BeforeSave normalizes the legacy date and subgroup shapes on every write.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Normalize()
	return nil
}

// AfterFind applies the same normalization to rows read back from older files.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.Normalize()
	return nil
}

// Normalize rewrites dates to YYYY-MM-DD and reduces the subgroup to a plain
// label. Revenue rows never carry a subgroup.
func (t *Transaction) Normalize() {
	t.Date = normalize.Date(t.Date)
	if t.PurchaseDate != nil {
		pd := normalize.Date(*t.PurchaseDate)
		t.PurchaseDate = &pd
	}

	if t.Type == EntryTypeRevenue {
		t.Subgroup = nil
		return
	}
	t.Subgroup = SubgroupPtr(t.Subgroup)
}

// SubgroupPtr normalizes a nullable subgroup, mapping empty labels to nil.
func SubgroupPtr(v *string) *string {
	if v == nil {
		return nil
	}
	label := normalize.Subgroup(*v)
	if label == "" {
		return nil
	}
	return &label
}

// SubgroupLabel returns the normalized subgroup or "".
func (t *Transaction) SubgroupLabel() string {
	if t.Subgroup == nil {
		return ""
	}
	return normalize.Subgroup(*t.Subgroup)
}

// EffectivePurchaseDate returns the purchase date, falling back to the
// settlement date for rows written before the column existed.
func (t *Transaction) EffectivePurchaseDate() string {
	if t.PurchaseDate != nil && *t.PurchaseDate != "" {
		return *t.PurchaseDate
	}
	return t.Date
}

// InstallmentDescription prefixes a description with its position in the group.
func InstallmentDescription(description string, number, total int) string {
	return fmt.Sprintf("[%d/%d] %s", number, total, description)
}

// DescriptionRoot strips the installment position prefix, returning the
// description the user typed.
func DescriptionRoot(description string) string {
	return strings.TrimSpace(installmentPrefix.ReplaceAllString(description, ""))
}

package services

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/models"
	"mywallet/internal/normalize"
	"mywallet/internal/uuid"
)

// MaxInstallments bounds the number of rows one purchase may expand into.
const MaxInstallments = 480

// ExpenseIntent is a user-entered ledger write before expansion.
type ExpenseIntent struct {
	Description      string
	Amount           decimal.Decimal
	Type             models.EntryType
	SettlementDate   string
	PurchaseDate     string
	AccountID        *uint
	CategoryID       uint
	Subgroup         any
	IsInstallment    bool
	InstallmentCount int
	IsFixed          bool
}

// ExpandInstallments turns one intent into the ledger rows it stands for.
//
// A plain write yields one row. An installment purchase of N yields N rows
// sharing a fresh group id: row i settles i months after the first, every row
// keeps the original purchase date, and the per-row amount is the total
// divided by N rounded to cents with the remainder carried into the last row,
// so the group always sums to the entered total.
func ExpandInstallments(intent ExpenseIntent) ([]models.Transaction, error) {
	description := strings.TrimSpace(intent.Description)
	if description == "" {
		return nil, apperrors.Invalid("description", "is required")
	}

	entryType := intent.Type
	if entryType == "" {
		entryType = models.EntryTypeExpense
	}
	if !entryType.Valid() {
		return nil, apperrors.Invalid("type", "must be expense or revenue")
	}

	total := intent.Amount.Round(2)
	if !total.IsPositive() {
		return nil, apperrors.Invalid("amount", "must be greater than zero")
	}

	settlement, err := normalize.ParseDate(intent.SettlementDate)
	if err != nil {
		return nil, apperrors.Invalid("settlement_date", err.Error())
	}

	purchaseDate := settlement.String()
	if strings.TrimSpace(intent.PurchaseDate) != "" {
		pd, err := normalize.ParseDate(intent.PurchaseDate)
		if err != nil {
			return nil, apperrors.Invalid("purchase_date", err.Error())
		}
		purchaseDate = pd.String()
	}

	var subgroup *string
	if entryType == models.EntryTypeExpense {
		if label := normalize.Subgroup(intent.Subgroup); label != "" {
			subgroup = &label
		}
	}

	if !intent.IsInstallment {
		one := 1
		return []models.Transaction{{
			AccountID:         intent.AccountID,
			CategoryID:        intent.CategoryID,
			Description:       description,
			Type:              entryType,
			Amount:            total,
			Date:              settlement.String(),
			PurchaseDate:      &purchaseDate,
			IsFixed:           intent.IsFixed,
			InstallmentNumber: &one,
			InstallmentTotal:  &one,
			Subgroup:          subgroup,
		}}, nil
	}

	n := intent.InstallmentCount
	if n < 1 || n > MaxInstallments {
		return nil, apperrors.Invalid("installment_count", "must be between 1 and 480")
	}

	amounts, err := splitAmount(total, n)
	if err != nil {
		return nil, err
	}

	groupID := uuid.NewGroupID()
	rows := make([]models.Transaction, n)
	for i := 0; i < n; i++ {
		number := i + 1
		totalCount := n
		pd := purchaseDate
		gid := groupID
		var sg *string
		if subgroup != nil {
			label := *subgroup
			sg = &label
		}

		rows[i] = models.Transaction{
			AccountID:          intent.AccountID,
			CategoryID:         intent.CategoryID,
			Description:        models.InstallmentDescription(description, number, n),
			Type:               entryType,
			Amount:             amounts[i],
			Date:               addMonthsClamped(settlement, i).String(),
			PurchaseDate:       &pd,
			IsFixed:            intent.IsFixed,
			IsInstallment:      true,
			InstallmentNumber:  &number,
			InstallmentTotal:   &totalCount,
			InstallmentGroupID: &gid,
			Subgroup:           sg,
		}
	}
	return rows, nil
}

// splitAmount divides total into n cent-rounded parts whose sum is total.
func splitAmount(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	count := decimal.NewFromInt(int64(n))
	per := total.DivRound(count, 2)
	last := total.Sub(per.Mul(decimal.NewFromInt(int64(n - 1))))
	if !per.IsPositive() || !last.IsPositive() {
		return nil, apperrors.Invalid("amount", "too small to split into the requested installments")
	}

	parts := make([]decimal.Decimal, n)
	for i := 0; i < n-1; i++ {
		parts[i] = per
	}
	parts[n-1] = last
	return parts, nil
}

package services

import (
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/models"
	"mywallet/internal/normalize"
)

// NoSubgroupLabel names the breakdown slice of rows without a subgroup.
const NoSubgroupLabel = "(no subgroup)"

// maxReportMonths bounds the zero-filled trend.
const maxReportMonths = 1200

// ReportRequest selects the rows of a report. Start and End are inclusive
// and measured on Axis. CategoryID restricts the expense side only.
type ReportRequest struct {
	Start      civil.Date
	End        civil.Date
	Axis       DateAxis
	CategoryID *uint
}

// TrendPoint is one month of the trend.
type TrendPoint struct {
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// BreakdownItem is one slice of the expense breakdown: a category when the
// report is unfiltered, a subgroup of the filtered category otherwise.
type BreakdownItem struct {
	CategoryID *uint           `json:"category_id,omitempty"`
	Label      string          `json:"label"`
	Color      *string         `json:"color,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
}

// Summary holds the totals of a report.
type Summary struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// Report is the trend, breakdown and summary of one row set.
type Report struct {
	Start      string          `json:"start"`
	End        string          `json:"end"`
	Axis       DateAxis        `json:"axis"`
	CategoryID *uint           `json:"category_id,omitempty"`
	Trend      []TrendPoint    `json:"trend"`
	Breakdown  []BreakdownItem `json:"breakdown"`
	Summary    Summary         `json:"summary"`
}

// Dashboard is the landing overview: overall balance, the current month and
// a short trend ending in it.
type Dashboard struct {
	OverallBalance decimal.Decimal `json:"overall_balance"`
	Period         string          `json:"period"`
	Month          Summary         `json:"month"`
	Categories     []BreakdownItem `json:"categories"`
	Trend          []TrendPoint    `json:"trend"`
}

// reportService aggregates ledger rows. It never writes.
type reportService struct {
	db              *gorm.DB
	store           LedgerStore
	dashboardMonths int
}

// NewReportService creates a new ReportServicer. dashboardMonths is the
// length of the dashboard trend.
func NewReportService(db *gorm.DB, store LedgerStore, dashboardMonths int) ReportServicer {
	if dashboardMonths < 1 {
		dashboardMonths = 6
	}
	return &reportService{db: db, store: store, dashboardMonths: dashboardMonths}
}

// Build reads the row set once and derives all three views from it, so the
// summary always equals the trend sums and the summary expense always equals
// the breakdown sum.
func (s *reportService) Build(req ReportRequest) (*Report, error) {
	if req.Axis == "" {
		req.Axis = AxisSettlement
	}
	if !req.Axis.Valid() {
		return nil, apperrors.Invalid("axis", "must be settlement or purchase")
	}
	if !req.Start.IsValid() {
		return nil, apperrors.Invalid("start", "is not a valid date")
	}
	if !req.End.IsValid() {
		return nil, apperrors.Invalid("end", "is not a valid date")
	}
	if req.End.Before(req.Start) {
		return nil, apperrors.Invalid("end", "must not be before start")
	}

	first, last := PeriodOf(req.Start), PeriodOf(req.End)
	if last.Year*12+int(last.Month)-(first.Year*12+int(first.Month)) >= maxReportMonths {
		return nil, apperrors.Invalid("end", "range is too long")
	}

	if req.CategoryID != nil {
		if err := s.ensureCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	rows, err := s.store.Query(LedgerFilter{From: &req.Start, To: &req.End, Axis: req.Axis})
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryIndex()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Start:      req.Start.String(),
		End:        req.End.String(),
		Axis:       req.Axis,
		CategoryID: req.CategoryID,
	}

	points := make(map[string]*TrendPoint)
	for p := first; !last.Before(p); p = p.AddMonths(1) {
		report.Trend = append(report.Trend, TrendPoint{
			Period:  p.String(),
			Revenue: decimal.Zero,
			Expense: decimal.Zero,
		})
	}
	for i := range report.Trend {
		points[report.Trend[i].Period] = &report.Trend[i]
	}

	parts := make(map[string]*BreakdownItem)
	summary := Summary{TotalRevenue: decimal.Zero, TotalExpense: decimal.Zero}

	for _, row := range rows {
		point, ok := points[normalize.MonthKey(axisDate(row, req.Axis))]
		if !ok {
			continue
		}

		switch row.Type {
		case models.EntryTypeRevenue:
			point.Revenue = point.Revenue.Add(row.Amount)
			summary.TotalRevenue = summary.TotalRevenue.Add(row.Amount)
		case models.EntryTypeExpense:
			if req.CategoryID != nil && row.CategoryID != *req.CategoryID {
				continue
			}
			point.Expense = point.Expense.Add(row.Amount)
			summary.TotalExpense = summary.TotalExpense.Add(row.Amount)
			addSlice(parts, row, req.CategoryID != nil, categories)
		}
	}

	for i := range report.Trend {
		report.Trend[i].Balance = report.Trend[i].Revenue.Sub(report.Trend[i].Expense)
	}
	summary.Balance = summary.TotalRevenue.Sub(summary.TotalExpense)
	report.Summary = summary
	report.Breakdown = sortedSlices(parts)
	return report, nil
}

// Dashboard computes the overview for the month containing today. The three
// reads are independent and run concurrently.
func (s *reportService) Dashboard(today Period) (*Dashboard, error) {
	var (
		g       errgroup.Group
		balance decimal.Decimal
		month   *Report
		trend   *Report
	)

	g.Go(func() error {
		var err error
		balance, err = s.overallBalance()
		return err
	})
	g.Go(func() error {
		var err error
		month, err = s.Build(ReportRequest{Start: today.Start(), End: today.End(), Axis: AxisSettlement})
		return err
	})
	g.Go(func() error {
		var err error
		trend, err = s.Build(ReportRequest{
			Start: today.AddMonths(-(s.dashboardMonths - 1)).Start(),
			End:   today.End(),
			Axis:  AxisSettlement,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		OverallBalance: balance,
		Period:         today.String(),
		Month:          month.Summary,
		Categories:     month.Breakdown,
		Trend:          trend.Trend,
	}, nil
}

// overallBalance is the sum of account opening balances plus all revenue
// minus all expense.
func (s *reportService) overallBalance() (decimal.Decimal, error) {
	var opening, net struct{ Total decimal.Decimal }
	if err := s.db.Model(&models.Account{}).
		Select("COALESCE(SUM(initial_balance), 0) AS total").
		Scan(&opening).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0) AS total", models.EntryTypeRevenue).
		Scan(&net).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return opening.Total.Add(net.Total).Round(2), nil
}

func (s *reportService) ensureCategory(categoryID uint) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func (s *reportService) categoryIndex() (map[uint]models.Category, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	index := make(map[uint]models.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index, nil
}

func axisDate(row models.LedgerRow, axis DateAxis) string {
	if axis == AxisPurchase {
		return row.EffectivePurchaseDate()
	}
	return row.Date
}

func addSlice(parts map[string]*BreakdownItem, row models.LedgerRow, bySubgroup bool, categories map[uint]models.Category) {
	var key string
	item := &BreakdownItem{Total: decimal.Zero}

	if bySubgroup {
		label := row.SubgroupLabel()
		if label == "" {
			label = NoSubgroupLabel
		}
		// Subgroups that differ only in case share a slice.
		key = "s:" + strings.ToLower(label)
		item.Label = label
	} else {
		id := row.CategoryID
		key = "c:" + strconv.FormatUint(uint64(id), 10)
		item.CategoryID = &id
		item.Label = row.CategoryName
		if c, ok := categories[id]; ok {
			item.Label = c.Name
			item.Color = c.Color
		}
	}

	existing, ok := parts[key]
	if !ok {
		parts[key] = item
		existing = item
	}
	existing.Total = existing.Total.Add(row.Amount)
	existing.Count++
}

func sortedSlices(parts map[string]*BreakdownItem) []BreakdownItem {
	out := make([]BreakdownItem, 0, len(parts))
	for _, item := range parts {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Label < out[j].Label
	})
	return out
}

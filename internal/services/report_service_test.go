package services

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"mywallet/internal/models"
	"mywallet/internal/testutil"
)

func date(year, month, day int) civil.Date {
	return civil.Date{Year: year, Month: time.Month(month), Day: day}
}

func TestReportTrend(t *testing.T) {
	t.Run("zero_filled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewLedgerStore(db), 6)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		testutil.CreateTestTransaction(t, db, cat.ID, models.EntryTypeExpense, "40", "2024-02-10")

		report, err := svc.Build(ReportRequest{Start: date(2024, 1, 1), End: date(2024, 4, 30)})
		testutil.AssertNoError(t, err)

		want := []string{"2024-01", "2024-02", "2024-03", "2024-04"}
		if len(report.Trend) != len(want) {
			t.Fatalf("expected %d months, got %d", len(want), len(report.Trend))
		}
		for i, p := range want {
			if report.Trend[i].Period != p {
				t.Errorf("trend[%d]: expected %s, got %s", i, p, report.Trend[i].Period)
			}
		}
		if !report.Trend[0].Expense.IsZero() || !report.Trend[1].Expense.Equal(decimal.NewFromInt(40)) {
			t.Errorf("unexpected trend %+v", report.Trend)
		}
		if !report.Trend[1].Balance.Equal(decimal.NewFromInt(-40)) {
			t.Errorf("expected February balance -40, got %s", report.Trend[1].Balance)
		}
	})

	t.Run("axis", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewLedgerStore(db)
		svc := NewReportService(db, store, 6)
		cat := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		_, err := store.CreateRows(expandForTest(t, cat.ID, "300", "2024-01-20", 3))
		testutil.AssertNoError(t, err)

		req := ReportRequest{Start: date(2024, 1, 1), End: date(2024, 3, 31), Axis: AxisSettlement}
		bySettlement, err := svc.Build(req)
		testutil.AssertNoError(t, err)
		for _, p := range bySettlement.Trend {
			if !p.Expense.Equal(decimal.NewFromInt(100)) {
				t.Errorf("settlement axis %s: expected 100, got %s", p.Period, p.Expense)
			}
		}

		req.Axis = AxisPurchase
		byPurchase, err := svc.Build(req)
		testutil.AssertNoError(t, err)
		expected := []int64{300, 0, 0}
		for i, p := range byPurchase.Trend {
			if !p.Expense.Equal(decimal.NewFromInt(expected[i])) {
				t.Errorf("purchase axis %s: expected %d, got %s", p.Period, expected[i], p.Expense)
			}
		}
	})
}

func TestReportBreakdown(t *testing.T) {
	t.Run("by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewLedgerStore(db), 6)
		food := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		fun := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		testutil.CreateTestTransaction(t, db, food.ID, models.EntryTypeExpense, "30", "2024-01-05")
		testutil.CreateTestTransaction(t, db, food.ID, models.EntryTypeExpense, "20", "2024-01-06")
		testutil.CreateTestTransaction(t, db, fun.ID, models.EntryTypeExpense, "75", "2024-01-07")

		report, err := svc.Build(ReportRequest{Start: date(2024, 1, 1), End: date(2024, 1, 31)})
		testutil.AssertNoError(t, err)

		if len(report.Breakdown) != 2 {
			t.Fatalf("expected 2 slices, got %d", len(report.Breakdown))
		}
		top := report.Breakdown[0]
		if top.Label != fun.Name || !top.Total.Equal(decimal.NewFromInt(75)) || top.Count != 1 {
			t.Errorf("expected %s first with 75, got %+v", fun.Name, top)
		}
		if report.Breakdown[1].Count != 2 {
			t.Errorf("expected 2 rows in %s, got %d", food.Name, report.Breakdown[1].Count)
		}
		if top.Color == nil || *top.Color != models.DefaultExpenseColor {
			t.Errorf("expected category color on slice, got %v", top.Color)
		}
	})

	t.Run("filtered_by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewLedgerStore(db), 6)
		housing := testutil.CreateTestCategory(t, db, models.EntryTypeExpense, "Rent")
		other := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
		salary := testutil.CreateTestCategory(t, db, models.EntryTypeRevenue)

		testutil.CreateTestTransactionWith(t, db, models.Transaction{
			CategoryID: housing.ID, Type: models.EntryTypeExpense,
			Amount: decimal.NewFromInt(100), Date: "2024-01-03", Subgroup: testutil.StrPtr("Rent"),
		})
		testutil.CreateTestTransaction(t, db, housing.ID, models.EntryTypeExpense, "30", "2024-01-04")
		testutil.CreateTestTransaction(t, db, other.ID, models.EntryTypeExpense, "40", "2024-01-05")
		testutil.CreateTestTransaction(t, db, salary.ID, models.EntryTypeRevenue, "500", "2024-01-01")

		report, err := svc.Build(ReportRequest{
			Start:      date(2024, 1, 1),
			End:        date(2024, 1, 31),
			CategoryID: &housing.ID,
		})
		testutil.AssertNoError(t, err)

		if !report.Summary.TotalRevenue.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected revenue unfiltered at 500, got %s", report.Summary.TotalRevenue)
		}
		if !report.Summary.TotalExpense.Equal(decimal.NewFromInt(130)) {
			t.Errorf("expected expense 130, got %s", report.Summary.TotalExpense)
		}
		if len(report.Breakdown) != 2 {
			t.Fatalf("expected 2 subgroup slices, got %+v", report.Breakdown)
		}
		if report.Breakdown[0].Label != "Rent" || report.Breakdown[1].Label != NoSubgroupLabel {
			t.Errorf("unexpected slice labels %q, %q", report.Breakdown[0].Label, report.Breakdown[1].Label)
		}
	})
}

func TestReportSummaryConsistency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewLedgerStore(db)
	svc := NewReportService(db, store, 6)
	expense := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
	revenue := testutil.CreateTestCategory(t, db, models.EntryTypeRevenue)

	_, err := store.CreateRows(expandForTest(t, expense.ID, "100", "2024-01-31", 3))
	testutil.AssertNoError(t, err)
	testutil.CreateTestTransaction(t, db, revenue.ID, models.EntryTypeRevenue, "1234.56", "2024-02-15")
	testutil.CreateTestTransaction(t, db, expense.ID, models.EntryTypeExpense, "0.01", "2024-03-01")

	report, err := svc.Build(ReportRequest{Start: date(2024, 1, 1), End: date(2024, 6, 30)})
	testutil.AssertNoError(t, err)

	revenueSum, expenseSum := decimal.Zero, decimal.Zero
	for _, p := range report.Trend {
		revenueSum = revenueSum.Add(p.Revenue)
		expenseSum = expenseSum.Add(p.Expense)
	}
	breakdownSum := decimal.Zero
	for _, s := range report.Breakdown {
		breakdownSum = breakdownSum.Add(s.Total)
	}

	if !revenueSum.Equal(report.Summary.TotalRevenue) {
		t.Errorf("revenue: trend %s != summary %s", revenueSum, report.Summary.TotalRevenue)
	}
	if !expenseSum.Equal(report.Summary.TotalExpense) || !breakdownSum.Equal(expenseSum) {
		t.Errorf("expense: trend %s, summary %s, breakdown %s", expenseSum, report.Summary.TotalExpense, breakdownSum)
	}
	if !report.Summary.Balance.Equal(revenueSum.Sub(expenseSum)) {
		t.Errorf("unexpected balance %s", report.Summary.Balance)
	}
}

func TestReportValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(db, NewLedgerStore(db), 6)

	missing := uint(999)
	tests := []struct {
		name string
		req  ReportRequest
		code string
	}{
		{"invalid_axis", ReportRequest{Start: date(2024, 1, 1), End: date(2024, 1, 31), Axis: "sideways"}, "INVALID_INPUT"},
		{"end_before_start", ReportRequest{Start: date(2024, 2, 1), End: date(2024, 1, 31)}, "INVALID_INPUT"},
		{"invalid_start", ReportRequest{Start: date(2024, 2, 30), End: date(2024, 3, 1)}, "INVALID_INPUT"},
		{"unknown_category", ReportRequest{Start: date(2024, 1, 1), End: date(2024, 1, 31), CategoryID: &missing}, "CATEGORY_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Build(tt.req)
			testutil.AssertAppError(t, err, tt.code)
		})
	}
}

func TestDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(db, NewLedgerStore(db), 6)

	testutil.CreateTestAccount(t, db, "1000")
	expense := testutil.CreateTestCategory(t, db, models.EntryTypeExpense)
	revenue := testutil.CreateTestCategory(t, db, models.EntryTypeRevenue)
	testutil.CreateTestTransaction(t, db, revenue.ID, models.EntryTypeRevenue, "500", "2024-02-01")
	testutil.CreateTestTransaction(t, db, expense.ID, models.EntryTypeExpense, "200", "2024-03-10")
	testutil.CreateTestTransaction(t, db, expense.ID, models.EntryTypeExpense, "50", "2023-01-10")

	dash, err := svc.Dashboard(march2024)
	testutil.AssertNoError(t, err)

	if !dash.OverallBalance.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("expected overall balance 1250, got %s", dash.OverallBalance)
	}
	if dash.Period != "2024-03" {
		t.Errorf("expected period 2024-03, got %s", dash.Period)
	}
	if !dash.Month.TotalExpense.Equal(decimal.NewFromInt(200)) || !dash.Month.TotalRevenue.IsZero() {
		t.Errorf("unexpected month summary %+v", dash.Month)
	}
	if len(dash.Categories) != 1 || dash.Categories[0].Label != expense.Name {
		t.Errorf("unexpected categories %+v", dash.Categories)
	}
	if len(dash.Trend) != 6 || dash.Trend[0].Period != "2023-10" || dash.Trend[5].Period != "2024-03" {
		t.Errorf("unexpected trend window %+v", dash.Trend)
	}
}

package database

import (
	"path/filepath"
	"testing"
	"time"

	"mywallet/internal/logger"

	"gorm.io/gorm"
)

func init() {
	logger.Init("test", "")
}

// legacySchema mirrors data files written before versioned migrations:
// capitalized table names, no color, purchase_date or checklist.
const legacySchema = `
CREATE TABLE Accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    initial_balance REAL NOT NULL DEFAULT 0,
    is_credit_card BOOLEAN NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
CREATE TABLE Categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('expense', 'revenue')),
    subgroups TEXT,
    is_fixed BOOLEAN NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    UNIQUE (name, type)
);
CREATE TABLE Transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id INTEGER,
    category_id INTEGER NOT NULL,
    description TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('expense', 'revenue')),
    amount REAL NOT NULL,
    date TEXT NOT NULL,
    is_fixed BOOLEAN NOT NULL DEFAULT 0,
    is_installment BOOLEAN NOT NULL DEFAULT 0,
    installment_number INTEGER,
    installment_total INTEGER,
    installment_group_id TEXT,
    subgroup TEXT,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
INSERT INTO Categories (name, type, subgroups) VALUES ('Home', 'expense', '["Rent", "[\"Power\"]", ""]');
INSERT INTO Categories (name, type) VALUES ('Salary', 'revenue');
INSERT INTO Transactions (category_id, description, type, amount, date, subgroup)
    VALUES (1, 'rent', 'expense', 1200, '05/01/2024', '["Rent"]');
INSERT INTO Transactions (category_id, description, type, amount, date, subgroup)
    VALUES (1, 'power', 'expense', 80.5, '2024-01-10', '{"name":"Power"}');
INSERT INTO Transactions (category_id, description, type, amount, date)
    VALUES (2, 'pay', 'revenue', 3000, '2024-01-01');
`

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	cfg := &Config{
		Path:        filepath.Join(t.TempDir(), "ledger.db"),
		BusyTimeout: 5 * time.Second,
	}
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestMigrateFreshFile(t *testing.T) {
	m := newTestManager(t)

	if err := m.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	for _, table := range []string{"accounts", "categories", "transactions", "checklist"} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}
	assertHasColumn(t, m.DB(), "transactions", "purchase_date")
}

func assertHasColumn(t *testing.T, db *gorm.DB, table, column string) {
	t.Helper()

	ok, err := HasColumn(db, table, column)
	if err != nil {
		t.Fatalf("column check failed: %v", err)
	}
	if !ok {
		t.Errorf("expected column %s.%s", table, column)
	}
}

func TestMigrateLegacyFile(t *testing.T) {
	m := newTestManager(t)
	db := m.DB()

	if err := db.Exec(legacySchema).Error; err != nil {
		t.Fatalf("failed to seed legacy schema: %v", err)
	}

	if err := m.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	t.Run("columns_added", func(t *testing.T) {
		assertHasColumn(t, db, "categories", "color")
		assertHasColumn(t, db, "transactions", "purchase_date")
	})

	t.Run("dates_normalized", func(t *testing.T) {
		var date, purchase string
		row := db.Raw("SELECT date, purchase_date FROM transactions WHERE description = 'rent'").Row()
		if err := row.Scan(&date, &purchase); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if date != "2024-01-05" {
			t.Errorf("expected date 2024-01-05, got %s", date)
		}
		if purchase != "2024-01-05" {
			t.Errorf("expected purchase date backfilled to 2024-01-05, got %s", purchase)
		}
	})

	t.Run("subgroups_normalized", func(t *testing.T) {
		var labels []string
		db.Raw("SELECT subgroup FROM transactions WHERE type = 'expense' ORDER BY id").Scan(&labels)
		if len(labels) != 2 || labels[0] != "Rent" || labels[1] != "Power" {
			t.Errorf("expected [Rent Power], got %v", labels)
		}
	})

	t.Run("category_list_normalized", func(t *testing.T) {
		var raw string
		db.Raw("SELECT subgroups FROM categories WHERE name = 'Home'").Scan(&raw)
		if raw != `["Rent","Power"]` {
			t.Errorf("expected normalized list, got %s", raw)
		}
	})

	t.Run("installment_fields_defaulted", func(t *testing.T) {
		var missing int64
		db.Raw("SELECT COUNT(*) FROM transactions WHERE installment_total IS NULL").Scan(&missing)
		if missing != 0 {
			t.Errorf("expected no rows without installment_total, got %d", missing)
		}
	})

	t.Run("second_run_changes_nothing", func(t *testing.T) {
		if err := m.Migrate(); err != nil {
			t.Fatalf("second migrate failed: %v", err)
		}
		report, err := Repair(db)
		if err != nil {
			t.Fatalf("repair failed: %v", err)
		}
		if report.Total() != 0 {
			t.Errorf("expected idempotent repair, got %+v", report)
		}
	})
}

func TestChecklistDuplicatesCollapsed(t *testing.T) {
	m := newTestManager(t)
	db := m.DB()

	seed := `
CREATE TABLE Categories (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, type TEXT NOT NULL, subgroups TEXT, is_fixed BOOLEAN NOT NULL DEFAULT 0, created_at TEXT NOT NULL DEFAULT '');
CREATE TABLE Checklist (id INTEGER PRIMARY KEY AUTOINCREMENT, category_id INTEGER NOT NULL, subgroup_name TEXT NOT NULL);
INSERT INTO Categories (name, type) VALUES ('Home', 'expense');
INSERT INTO Checklist (category_id, subgroup_name) VALUES (1, 'Rent'), (1, 'Rent'), (1, 'Power');
`
	if err := db.Exec(seed).Error; err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	if err := m.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	var count int64
	db.Table("checklist").Count(&count)
	if count != 2 {
		t.Errorf("expected 2 checklist entries after dedupe, got %d", count)
	}

	err := db.Exec("INSERT INTO checklist (category_id, subgroup_name) VALUES (1, 'Rent')").Error
	if err == nil {
		t.Error("expected unique index to reject duplicate pair")
	}
}

func TestConfigDSN(t *testing.T) {
	cfg := &Config{Path: "/tmp/x.db", BusyTimeout: 2 * time.Second}
	want := "/tmp/x.db?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	if got := cfg.DSN(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

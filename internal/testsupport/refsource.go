package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"slipflow/internal/config"
)

// SeedPart is one PART row for a seeded reference database.
type SeedPart struct {
	ID          string
	Description string
}

// SeedOrderLine is one CUST_ORDER_LINE row for a seeded reference database.
type SeedOrderLine struct {
	OrderID       string
	LineNo        int
	PartID        string
	MiscReference string
	OrderQty      float64
}

// SeedRefSource creates the reference schema in the sqlite database named by
// cfg.RefSource.DSN and inserts the given rows. The file is created on first
// open, so cfg from NewConfig works as-is.
func SeedRefSource(t testing.TB, cfg *config.Config, parts []SeedPart, lines []SeedOrderLine) {
	t.Helper()

	db, err := sql.Open("sqlite", cfg.RefSource.DSN)
	if err != nil {
		t.Fatalf("open seed database: %v", err)
	}
	defer db.Close()

	schema := []string{
		`CREATE TABLE IF NOT EXISTS PART (
			ID TEXT PRIMARY KEY,
			DESCRIPTION TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS CUST_ORDER_LINE (
			CUST_ORDER_ID TEXT,
			LINE_NO INTEGER,
			PART_ID TEXT,
			MISC_REFERENCE TEXT,
			ORDER_QTY REAL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create seed schema: %v", err)
		}
	}

	for _, part := range parts {
		if _, err := db.Exec(
			`INSERT INTO PART (ID, DESCRIPTION) VALUES (?, ?)`,
			part.ID, part.Description,
		); err != nil {
			t.Fatalf("seed part %s: %v", part.ID, err)
		}
	}
	for _, line := range lines {
		if _, err := db.Exec(
			`INSERT INTO CUST_ORDER_LINE (CUST_ORDER_ID, LINE_NO, PART_ID, MISC_REFERENCE, ORDER_QTY)
			 VALUES (?, ?, ?, ?, ?)`,
			line.OrderID, line.LineNo, line.PartID, line.MiscReference, line.OrderQty,
		); err != nil {
			t.Fatalf("seed order line %s/%d: %v", line.OrderID, line.LineNo, err)
		}
	}
}

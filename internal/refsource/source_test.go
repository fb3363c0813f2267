package refsource_test

import (
	"context"
	"testing"

	"slipflow/internal/refsource"
	"slipflow/internal/testsupport"
)

func openSeededSource(t *testing.T) *refsource.Source {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	testsupport.SeedRefSource(t, cfg,
		[]testsupport.SeedPart{
			{ID: "DRUM-200L", Description: "200L steel drum"},
			{ID: "LID-200L", Description: "200L drum lid"},
			{ID: "CLAMP-RING", Description: "Galvanized clamp ring"},
			{ID: " LABEL-UN ", Description: " UN hazard label "},
		},
		[]testsupport.SeedOrderLine{
			{OrderID: "SO-1001", LineNo: 1, PartID: "DRUM-200L", MiscReference: "", OrderQty: 10},
			{OrderID: "SO-1001", LineNo: 2, PartID: "LID-200L", MiscReference: "Customer branding lid", OrderQty: 10},
			{OrderID: "SO-2002", LineNo: 1, PartID: "CLAMP-RING", MiscReference: "", OrderQty: 40},
		},
	)

	source, err := refsource.Open(cfg)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	t.Cleanup(func() {
		if err := source.Close(); err != nil {
			t.Errorf("close source: %v", err)
		}
	})
	return source
}

func TestPartsReadsAndTrimsAllRows(t *testing.T) {
	source := openSeededSource(t)

	parts, err := source.Parts(context.Background())
	if err != nil {
		t.Fatalf("Parts: %v", err)
	}
	if len(parts) != 4 {
		t.Fatalf("parts = %d, want 4", len(parts))
	}

	byCode := make(map[string]string, len(parts))
	for _, part := range parts {
		byCode[part.StockCode] = part.Description
	}
	if desc, ok := byCode["LABEL-UN"]; !ok || desc != "UN hazard label" {
		t.Fatalf("expected trimmed LABEL-UN row, got %v", byCode)
	}
	if _, ok := byCode["DRUM-200L"]; !ok {
		t.Fatalf("missing DRUM-200L: %v", byCode)
	}
}

func TestOrderLinesPrefersMiscReference(t *testing.T) {
	source := openSeededSource(t)

	lines, err := source.OrderLines(context.Background(), "SO-1001")
	if err != nil {
		t.Fatalf("OrderLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	byLine := make(map[string]refsource.OrderLine, len(lines))
	for _, line := range lines {
		byLine[line.LineNumber] = line
	}

	// Without a misc reference the part description fills in.
	first := byLine["1"]
	if first.PartID != "DRUM-200L" || first.PartDescription != "200L steel drum" {
		t.Fatalf("line 1 = %+v", first)
	}
	if first.OrderQty != 10 {
		t.Fatalf("line 1 qty = %v, want 10", first.OrderQty)
	}

	// A populated misc reference wins over the part description.
	second := byLine["2"]
	if second.PartDescription != "Customer branding lid" {
		t.Fatalf("line 2 description = %q, want misc reference", second.PartDescription)
	}
	if second.MiscReference != "Customer branding lid" {
		t.Fatalf("line 2 misc reference = %q", second.MiscReference)
	}
}

func TestOrderLinesScopesToOrder(t *testing.T) {
	source := openSeededSource(t)

	lines, err := source.OrderLines(context.Background(), "SO-2002")
	if err != nil {
		t.Fatalf("OrderLines: %v", err)
	}
	if len(lines) != 1 || lines[0].PartID != "CLAMP-RING" {
		t.Fatalf("lines = %+v, want only CLAMP-RING", lines)
	}

	none, err := source.OrderLines(context.Background(), "SO-9999")
	if err != nil {
		t.Fatalf("OrderLines: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no lines for unknown order, got %+v", none)
	}
}

func TestOpenRequiresDSN(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.RefSource.DSN = ""
	if _, err := refsource.Open(cfg); err == nil {
		t.Fatal("expected error for missing DSN")
	}
}

package slip_test

import (
	"testing"
	"time"

	"slipflow/internal/slip"
)

func TestFormatID(t *testing.T) {
	cases := []struct {
		name     string
		slipType slip.Type
		year     int
		sequence int64
		expected string
	}{
		{"qc", slip.TypeQC, 2025, 1, "QC-2025-0001"},
		{"cc", slip.TypeCC, 2025, 7, "CC-2025-0007"},
		{"ir", slip.TypeIR, 2024, 123, "IR-2024-0123"},
		{"dispatch", slip.TypeDispatch, 2026, 4821, "DIS-2026-4821"},
		{"rollover widens", slip.TypeQC, 2025, 10001, "QC-2025-10001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := slip.FormatID(tc.slipType, tc.year, tc.sequence); got != tc.expected {
				t.Fatalf("FormatID = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestMintIDUsesYearOfMintTime(t *testing.T) {
	now := time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)
	if got := slip.MintID(slip.TypeDispatch, now, 42); got != "DIS-2025-0042" {
		t.Fatalf("MintID = %q", got)
	}
	later := now.Add(2 * time.Minute)
	if got := slip.MintID(slip.TypeDispatch, later, 43); got != "DIS-2026-0043" {
		t.Fatalf("MintID after year boundary = %q", got)
	}
}

func TestParseType(t *testing.T) {
	for _, known := range slip.AllTypes() {
		parsed, ok := slip.ParseType("  " + string(known) + " ")
		if !ok || parsed != known {
			t.Fatalf("ParseType(%q) = %q, %v", known, parsed, ok)
		}
	}
	if _, ok := slip.ParseType("grn"); ok {
		t.Fatal("expected unknown type to be rejected")
	}
}

func TestValidStatus(t *testing.T) {
	cases := []struct {
		slipType slip.Type
		status   slip.Status
		valid    bool
	}{
		{slip.TypeQC, slip.StatusComplete, true},
		{slip.TypeQC, slip.StatusDispatched, false},
		{slip.TypeIR, slip.StatusOpen, true},
		{slip.TypeIR, slip.StatusComplete, false},
		{slip.TypeCC, slip.StatusOpen, true},
		{slip.TypeDispatch, slip.StatusPendingReview, true},
		{slip.TypeDispatch, slip.StatusDispatched, true},
		{slip.TypeDispatch, slip.StatusOpen, false},
	}
	for _, tc := range cases {
		if got := slip.ValidStatus(tc.slipType, tc.status); got != tc.valid {
			t.Fatalf("ValidStatus(%s, %s) = %v, want %v", tc.slipType, tc.status, got, tc.valid)
		}
	}
}

func TestSequenceNames(t *testing.T) {
	expected := map[slip.Type]string{
		slip.TypeQC:       "qc_slip_id",
		slip.TypeIR:       "ir_slip_id",
		slip.TypeCC:       "cc_slip_id",
		slip.TypeDispatch: "dispatch_slip_id",
	}
	for slipType, name := range expected {
		if got := slip.SequenceName(slipType); got != name {
			t.Fatalf("SequenceName(%s) = %q, want %q", slipType, got, name)
		}
	}
}

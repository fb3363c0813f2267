package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"slipflow/internal/slip"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRootCommandShowsHelp(t *testing.T) {
	out, err := runCLI(t)
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	for _, want := range []string{"slips", "review", "sync", "settings"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected output to name %s, got %q", target, out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[docstore]") || !strings.Contains(string(data), "[refsource]") {
		t.Fatalf("sample config missing sections:\n%s", data)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestParseLineFlag(t *testing.T) {
	tests := []struct {
		input    string
		wantLine string
		wantQty  float64
		wantErr  bool
	}{
		{input: "1:10", wantLine: "1", wantQty: 10},
		{input: " 2 : 2.5 ", wantLine: "2", wantQty: 2.5},
		{input: "3", wantErr: true},
		{input: ":4", wantErr: true},
		{input: "5:many", wantErr: true},
	}

	for _, tc := range tests {
		line, qty, err := parseLineFlag(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseLineFlag(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseLineFlag(%q): %v", tc.input, err)
		}
		if line != tc.wantLine || qty != tc.wantQty {
			t.Fatalf("parseLineFlag(%q) = %q, %v", tc.input, line, qty)
		}
	}
}

func TestRenderSlipTable(t *testing.T) {
	out := renderSlipTable([]*slip.Slip{{
		SlipID:      "DIS-2025-0001",
		OrderNumber: "SO-1001",
		Status:      slip.StatusPendingReview,
		CreatedAt:   time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC),
		CreatedBy:   slip.Identity{Email: "dana@example.com"},
	}})
	for _, want := range []string{"DIS-2025-0001", "SO-1001", "Dispatched - Pending Review", "dana@example.com"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestSlipsListRejectsUnknownType(t *testing.T) {
	if _, err := runCLI(t, "slips", "list", "invoice"); err == nil {
		t.Fatal("expected unknown slip type to fail")
	}
}

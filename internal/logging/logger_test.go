package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"slipflow/internal/logging"
)

func TestNewJSONFormatEmitsStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithComponent(logger, "refsync").Info("run finished", logging.FieldRunID, "abc")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log record: %v", err)
	}
	if record[logging.FieldComponent] != "refsync" {
		t.Fatalf("missing component field: %v", record)
	}
	if record[logging.FieldRunID] != "abc" {
		t.Fatalf("missing run_id field: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestWithComponentToleratesNilLogger(t *testing.T) {
	logger := logging.WithComponent(nil, "workflow")
	logger.Info("does not panic")
}

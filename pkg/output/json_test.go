package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.UserID != "P1" {
		t.Errorf("UserID = %q, want P1", parsed.UserID)
	}
	if parsed.Summary.TotalLogs != 3 {
		t.Errorf("TotalLogs = %d, want 3", parsed.Summary.TotalLogs)
	}
	if len(parsed.Tasks) != 2 {
		t.Errorf("len(Tasks) = %d, want 2", len(parsed.Tasks))
	}
	if len(parsed.EventTypes) != 2 || parsed.EventTypes[0].Message != "start" {
		t.Errorf("EventTypes = %+v, want start first", parsed.EventTypes)
	}
	if len(parsed.Files) != 2 {
		t.Errorf("len(Files) = %d, want 2", len(parsed.Files))
	}
	if parsed.Metadata.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", parsed.Metadata.RunID)
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Summary
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Groups != 2 {
		t.Errorf("Groups = %d, want 2", parsed.Groups)
	}
}

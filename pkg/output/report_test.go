package output

import (
	"testing"
	"time"

	"github.com/ccollicutt/logextract/pkg/group"
	"github.com/ccollicutt/logextract/pkg/record"
)

func makeGroups(t *testing.T, entries ...[2]string) *group.Groups {
	t.Helper()
	recs := make([]record.LogRecord, len(entries))
	for i, e := range entries {
		p, _ := record.Decode(e[1])
		recs[i] = record.LogRecord{ID: int64(i + 1), Message: e[0], Payload: p}
	}
	return group.ByTask(recs)
}

func createTestReport(t *testing.T) *Report {
	t.Helper()
	groups := makeGroups(t,
		[2]string{"start", `{"taskNumber": 1, "system": "A"}`},
		[2]string{"start", `{"taskNumber": 2, "system": "A"}`},
		[2]string{"end", `{"taskNumber": 1, "system": "A"}`},
	)
	report := NewReport("P1", groups, Metadata{
		RunID:       "run-1",
		Database:    "database.db",
		OutputDir:   "user_logs",
		ExtractedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Duration:    1500 * time.Millisecond,
	})
	report.SetFiles([]string{"user_logs/P1/P1_systemA_task1.json", "user_logs/P1/P1_systemA_task2.json"})
	return report
}

func TestNewReport_Counts(t *testing.T) {
	report := createTestReport(t)

	if report.Summary.TotalLogs != 3 {
		t.Errorf("TotalLogs = %d, want 3", report.Summary.TotalLogs)
	}
	if report.Summary.Groups != 2 {
		t.Errorf("Groups = %d, want 2", report.Summary.Groups)
	}
	if report.Summary.FilesCreated != 2 {
		t.Errorf("FilesCreated = %d, want 2", report.Summary.FilesCreated)
	}
	if report.HasFallbacks() {
		t.Error("HasFallbacks() = true, want false")
	}

	want := []TaskCount{{"systemA_task1", 2}, {"systemA_task2", 1}}
	if len(report.Tasks) != len(want) {
		t.Fatalf("len(Tasks) = %d, want %d", len(report.Tasks), len(want))
	}
	for i := range want {
		if report.Tasks[i] != want[i] {
			t.Errorf("Tasks[%d] = %+v, want %+v", i, report.Tasks[i], want[i])
		}
	}
}

func TestNewReport_EventTypesOrder(t *testing.T) {
	// Groups first seen: systemB_task1 (b, a), systemA_task1 (c, c, a).
	groups := makeGroups(t,
		[2]string{"b", `{"taskNumber": 1, "system": "B"}`},
		[2]string{"c", `{"taskNumber": 1, "system": "A"}`},
		[2]string{"a", `{"taskNumber": 1, "system": "B"}`},
		[2]string{"c", `{"taskNumber": 1, "system": "A"}`},
		[2]string{"a", `{"taskNumber": 1, "system": "A"}`},
	)

	report := NewReport("P1", groups, Metadata{})

	// Encounter order: b, a (group B), then c (group A).
	want := []EventTypeCount{{"a", 2}, {"c", 2}, {"b", 1}}
	if len(report.EventTypes) != len(want) {
		t.Fatalf("len(EventTypes) = %d, want %d", len(report.EventTypes), len(want))
	}
	for i := range want {
		if report.EventTypes[i] != want[i] {
			t.Errorf("EventTypes[%d] = %+v, want %+v", i, report.EventTypes[i], want[i])
		}
	}
}

func TestNewReport_Fallbacks(t *testing.T) {
	groups := makeGroups(t,
		[2]string{"ok", `{"taskNumber": 1, "system": "A"}`},
		[2]string{"bad", `{not json`},
	)

	report := NewReport("P1", groups, Metadata{})
	if report.Summary.Fallbacks != 1 {
		t.Errorf("Fallbacks = %d, want 1", report.Summary.Fallbacks)
	}
	if !report.HasFallbacks() {
		t.Error("HasFallbacks() = false, want true")
	}
}

func TestNewReport_Empty(t *testing.T) {
	report := NewReport("P1", group.ByTask(nil), Metadata{})
	if report.Summary.TotalLogs != 0 || report.Summary.Groups != 0 {
		t.Errorf("Summary = %+v, want zero counts", report.Summary)
	}
	if len(report.EventTypes) != 0 {
		t.Errorf("EventTypes = %v, want empty", report.EventTypes)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "text", false},
		{"text", "text", false},
		{"json", "json", false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		f, err := NewFormatter(tt.name, FormatOptions{})
		if (err != nil) != tt.wantErr {
			t.Errorf("NewFormatter(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && f.Name() != tt.want {
			t.Errorf("NewFormatter(%q).Name() = %q, want %q", tt.name, f.Name(), tt.want)
		}
	}
}

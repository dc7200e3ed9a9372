// Package output builds and renders the summary of an extraction run.
package output

import (
	"sort"
	"time"

	"github.com/ccollicutt/logextract/pkg/group"
)

// Report is the complete summary of one extraction.
type Report struct {
	// UserID is the user whose logs were extracted.
	UserID string `json:"user_id"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	// Tasks lists record counts per group in lexicographic key order.
	Tasks []TaskCount `json:"tasks"`

	// EventTypes counts records per message, most frequent first.
	EventTypes []EventTypeCount `json:"event_types"`

	// Files lists the written output files.
	Files []string `json:"files,omitempty"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate counts.
type Summary struct {
	// TotalLogs is the number of records across all groups.
	TotalLogs int `json:"total_logs"`

	// Groups is the number of distinct task/system combinations.
	Groups int `json:"groups"`

	// Fallbacks is the number of records whose event_data could not be decoded.
	Fallbacks int `json:"fallbacks"`

	// FilesCreated is the number of output files written.
	FilesCreated int `json:"files_created"`
}

// TaskCount is the record count of one group.
type TaskCount struct {
	Task string `json:"task"`
	Logs int    `json:"logs"`
}

// EventTypeCount is the number of records carrying one message.
type EventTypeCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Metadata provides context about the run.
type Metadata struct {
	RunID       string        `json:"run_id,omitempty"`
	Database    string        `json:"database,omitempty"`
	OutputDir   string        `json:"output_dir,omitempty"`
	ExtractedAt time.Time     `json:"extracted_at"`
	Duration    time.Duration `json:"duration"`
}

// NewReport computes the summary of grouped records.
func NewReport(userID string, groups *group.Groups, meta Metadata) *Report {
	report := &Report{
		UserID:     userID,
		Tasks:      make([]TaskCount, 0, groups.Len()),
		EventTypes: eventTypes(groups),
		Metadata:   meta,
		Summary: Summary{
			TotalLogs: groups.Total(),
			Groups:    groups.Len(),
		},
	}

	for _, key := range groups.Keys() {
		recs := groups.Get(key)
		report.Tasks = append(report.Tasks, TaskCount{Task: key, Logs: len(recs)})
		for _, r := range recs {
			if r.Payload.IsFallback() {
				report.Summary.Fallbacks++
			}
		}
	}

	return report
}

// eventTypes counts messages walking groups in first-seen order, so equal
// counts keep the order in which their message was first encountered.
func eventTypes(groups *group.Groups) []EventTypeCount {
	index := make(map[string]int)
	var counts []EventTypeCount
	for _, key := range groups.FirstSeen() {
		for _, r := range groups.Get(key) {
			i, ok := index[r.Message]
			if !ok {
				i = len(counts)
				index[r.Message] = i
				counts = append(counts, EventTypeCount{Message: r.Message})
			}
			counts[i].Count++
		}
	}

	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// SetFiles records the files written for the report.
func (r *Report) SetFiles(paths []string) {
	r.Files = paths
	r.Summary.FilesCreated = len(paths)
}

// HasFallbacks returns true if any record kept a fallback payload.
func (r *Report) HasFallbacks() bool {
	return r.Summary.Fallbacks > 0
}

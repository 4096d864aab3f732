// Package summary computes the four headline counts shown above the
// dashboard grid.
package summary

import (
	"strings"

	"github.com/securecheck/backend/internal/display"
	"github.com/securecheck/backend/internal/storage/models"
)

// Summary counts are independent scans; one stop may count toward
// several of them.
type Summary struct {
	TotalStops  int `json:"total_stops"`
	Arrests     int `json:"arrests"`
	Warnings    int `json:"warnings"`
	DrugRelated int `json:"drug_related"`
}

// Summarize scans the full traffic_logs result. Missing columns count as zero.
func Summarize(t display.Table) Summary {
	s := Summary{TotalStops: t.Len()}
	outcome := t.Column(models.ColStopOutcome)
	drugs := t.Column(models.ColDrugsRelatedStop)

	for _, row := range t.Rows {
		if outcome >= 0 && outcome < len(row) {
			if text, ok := row[outcome].(string); ok {
				s.countOutcome(text)
			}
		}
		if drugs >= 0 && drugs < len(row) && truthy(row[drugs]) {
			s.DrugRelated++
		}
	}
	return s
}

// SummarizeRecords gives the same counts for normalized extract records.
func SummarizeRecords(records []models.StopRecord) Summary {
	s := Summary{TotalStops: len(records)}
	for _, r := range records {
		s.countOutcome(r.StopOutcome)
		if r.DrugsRelatedStop {
			s.DrugRelated++
		}
	}
	return s
}

func (s *Summary) countOutcome(outcome string) {
	lower := strings.ToLower(outcome)
	if strings.Contains(lower, "arrest") {
		s.Arrests++
	}
	if strings.Contains(lower, "warning") {
		s.Warnings++
	}
}

func (s Summary) Metrics() []display.Metric {
	return []display.Metric{
		{Label: "Total Police Stops", Value: s.TotalStops},
		{Label: "Total Arrests", Value: s.Arrests},
		{Label: "Total Warnings", Value: s.Warnings},
		{Label: "Drug Related Stops", Value: s.DrugRelated},
	}
}

// truthy accepts the shapes drivers hand back for a boolean column.
func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x == 1
	case int:
		return x == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "t", "1":
			return true
		}
	}
	return false
}

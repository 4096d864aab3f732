package summary

import (
	"testing"

	"github.com/securecheck/backend/internal/display"
	"github.com/securecheck/backend/internal/storage/models"
)

func TestSummarizeEmpty(t *testing.T) {
	for name, tbl := range map[string]display.Table{
		"zero table":   {},
		"columns only": display.NewTable(models.ColStopOutcome, models.ColDrugsRelatedStop),
	} {
		got := Summarize(tbl)
		if got != (Summary{}) {
			t.Errorf("%s: want all zero, got %+v", name, got)
		}
	}
	if got := SummarizeRecords(nil); got != (Summary{}) {
		t.Errorf("records: want all zero, got %+v", got)
	}
}

func TestSummarizeCountsIndependently(t *testing.T) {
	tbl := display.NewTable(models.ColVehicleNumber, models.ColStopOutcome, models.ColDrugsRelatedStop)
	tbl.Append("KA01", "Arrest", true)
	tbl.Append("KA02", "warning", false)
	tbl.Append("KA03", "Arrest after WARNING", int64(1))
	tbl.Append("KA04", nil, "True")
	tbl.Append("KA05", "Ticket", "f")
	tbl.Append("KA06", "ARRESTED", int64(0))

	got := Summarize(tbl)
	want := Summary{TotalStops: 6, Arrests: 3, Warnings: 2, DrugRelated: 3}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSummarizeMissingColumns(t *testing.T) {
	tbl := display.NewTable(models.ColVehicleNumber)
	tbl.Append("KA01")
	tbl.Append("KA02")

	got := Summarize(tbl)
	if got != (Summary{TotalStops: 2}) {
		t.Errorf("got %+v", got)
	}
}

func TestSummarizeRecords(t *testing.T) {
	records := []models.StopRecord{
		{StopOutcome: "Arrest", DrugsRelatedStop: true},
		{StopOutcome: "Warning"},
		{},
	}
	got := SummarizeRecords(records)
	want := Summary{TotalStops: 3, Arrests: 1, Warnings: 1, DrugRelated: 1}
	if got != want {
		t.Errorf("SummarizeRecords = %+v, want %+v", got, want)
	}
}

func TestMetricsLabels(t *testing.T) {
	m := Summary{TotalStops: 4, Arrests: 1, Warnings: 2, DrugRelated: 3}.Metrics()
	if len(m) != 4 {
		t.Fatalf("want 4 metrics, got %d", len(m))
	}
	if m[0].Label != "Total Police Stops" || m[0].Value != 4 {
		t.Errorf("first metric = %+v", m[0])
	}
	if m[3].Label != "Drug Related Stops" || m[3].Value != 3 {
		t.Errorf("last metric = %+v", m[3])
	}
}

package ingestion

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/securecheck/backend/internal/storage/models"
)

// truthyLiteral is the only spelling that marks a flag as set.
const truthyLiteral = "True"

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"1/2/06 15:04",
}

// Report counts values that were present but could not be coerced and
// were therefore recorded as absent.
type Report struct {
	Rows             int
	InvalidAge       int
	InvalidTimestamp int
}

// Normalize coerces raw rows into stop records. A bad value only affects
// its own field.
func Normalize(rows []models.RawRecord) ([]models.StopRecord, Report) {
	report := Report{Rows: len(rows)}
	records := make([]models.StopRecord, 0, len(rows))

	for _, raw := range rows {
		rec := models.StopRecord{
			VehicleNumber:    raw[models.ColVehicleNumber],
			DriverGender:     raw[models.ColDriverGender],
			CountryName:      raw[models.ColCountryName],
			Violation:        raw[models.ColViolation],
			SearchConducted:  parseFlag(raw[models.ColSearchConducted]),
			IsArrested:       parseFlag(raw[models.ColIsArrested]),
			DrugsRelatedStop: parseFlag(raw[models.ColDrugsRelatedStop]),
			StopOutcome:      raw[models.ColStopOutcome],
			StopDuration:     raw[models.ColStopDuration],
		}

		if text, ok := raw[models.ColDriverAge]; ok {
			if age, ok := parseAge(text); ok {
				rec.DriverAge = &age
			} else {
				report.InvalidAge++
			}
		}
		if text, ok := raw[models.ColStopDateTime]; ok {
			if ts, ok := parseTimestamp(text); ok {
				rec.StopDateTime = &ts
			} else {
				report.InvalidTimestamp++
			}
		}

		records = append(records, rec)
	}
	return records, report
}

func parseFlag(text string) bool {
	return text == truthyLiteral
}

// maxAge bounds a plausible driver age.
const maxAge = 150

// Excel serials accepted as timestamps: 1970-01-01 up to 2100-01-01.
const (
	minExcelSerial = 25569
	maxExcelSerial = 73051
)

// parseAge accepts whole numbers in [0, maxAge], including integral float
// text such as "29.0".
func parseAge(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if age, err := strconv.Atoi(text); err == nil {
		return age, age >= 0 && age <= maxAge
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) || f < 0 || f > maxAge {
		return 0, false
	}
	return int(f), true
}

func parseTimestamp(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, true
		}
	}
	// Unformatted date cells come through as Excel serial numbers.
	if serial, err := strconv.ParseFloat(text, 64); err == nil && serial >= minExcelSerial && serial < maxExcelSerial {
		if ts, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

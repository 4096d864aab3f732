package models

import "time"

// Column names of the traffic_logs table and of the spreadsheet extract.
const (
	ColVehicleNumber    = "vehicle_number"
	ColDriverAge        = "driver_age"
	ColDriverGender     = "driver_gender"
	ColCountryName      = "country_name"
	ColViolation        = "violation"
	ColSearchConducted  = "search_conducted"
	ColIsArrested       = "is_arrested"
	ColDrugsRelatedStop = "drugs_related_stop"
	ColStopOutcome      = "stop_outcome"
	ColStopDuration     = "stop_duration"
	ColStopDateTime     = "stop_datetime"
)

// StopRecord is one traffic stop. DriverAge and StopDateTime are nil when
// the source value was missing or could not be parsed; empty strings mean
// the text field was absent.
type StopRecord struct {
	VehicleNumber    string
	DriverAge        *int
	DriverGender     string
	CountryName      string
	Violation        string
	SearchConducted  bool
	IsArrested       bool
	DrugsRelatedStop bool
	StopOutcome      string
	StopDuration     string
	StopDateTime     *time.Time
}

// RawRecord is one spreadsheet row keyed by header, all values as text.
// A missing key means the cell was absent.
type RawRecord map[string]string

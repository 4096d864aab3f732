// Package catalog holds the fixed set of analytical questions the
// dashboard can answer. Each entry carries PostgreSQL text for the store
// and an equivalent evaluator over in-memory stop records.
package catalog

import (
	"errors"

	"github.com/securecheck/backend/internal/storage/models"
)

var ErrUnknownQuery = errors.New("unknown catalog query")

type QueryID int

const (
	TopDrugVehicles QueryID = iota + 1
	MostSearchedVehicles
	AgeGroupArrestRate
	GenderByCountry
	GenderSearchRate
	BusiestHour
	AvgDurationByViolation
	NightArrestRate
	SearchArrestViolations
	YoungDriverViolations
	RarelyEnforcedViolations
	CountryDrugRate
	CountryViolationArrestRate
	CountrySearches
	YearlyCountryBreakdown
	AgeCountryViolationTrends
	TimePeriodAnalysis
	RankedSearchArrestViolations
	CountryDemographics
	TopArrestViolations
)

// Entry is one catalog question. Entries are immutable.
type Entry struct {
	ID       QueryID
	Slug     string
	Label    string
	SQL      string
	Evaluate Evaluator
}

var entries = []Entry{
	{
		ID:       TopDrugVehicles,
		Slug:     "top-drug-vehicles",
		Label:    "What are the top 10 vehicle numbers involved in drug-related stops?",
		SQL:      sqlTopDrugVehicles,
		Evaluate: topVehicles(func(r models.StopRecord) bool { return r.DrugsRelatedStop }, "stop_count"),
	},
	{
		ID:       MostSearchedVehicles,
		Slug:     "most-searched-vehicles",
		Label:    "Which vehicles were most frequently searched?",
		SQL:      sqlMostSearchedVehicles,
		Evaluate: topVehicles(func(r models.StopRecord) bool { return r.SearchConducted }, "search_count"),
	},
	{
		ID:       AgeGroupArrestRate,
		Slug:     "age-group-arrest-rate",
		Label:    "Which driver age group had the highest arrest rate?",
		SQL:      sqlAgeGroupArrestRate,
		Evaluate: evalAgeGroupArrestRate,
	},
	{
		ID:       GenderByCountry,
		Slug:     "gender-by-country",
		Label:    "What is the gender distribution of drivers stopped in each country?",
		SQL:      sqlGenderByCountry,
		Evaluate: evalGenderByCountry,
	},
	{
		ID:       GenderSearchRate,
		Slug:     "gender-search-rate",
		Label:    "Which driver gender has the highest search rate?",
		SQL:      sqlGenderSearchRate,
		Evaluate: evalGenderSearchRate,
	},
	{
		ID:       BusiestHour,
		Slug:     "busiest-hour",
		Label:    "What time of day sees the most traffic stops?",
		SQL:      sqlBusiestHour,
		Evaluate: evalBusiestHour,
	},
	{
		ID:       AvgDurationByViolation,
		Slug:     "avg-duration-by-violation",
		Label:    "What is the average stop duration for different violations?",
		SQL:      sqlAvgDurationByViolation,
		Evaluate: evalAvgDurationByViolation,
	},
	{
		ID:       NightArrestRate,
		Slug:     "night-arrest-rate",
		Label:    "Are stops during the night more likely to lead to arrests?",
		SQL:      sqlNightArrestRate,
		Evaluate: evalNightArrestRate,
	},
	{
		ID:       SearchArrestViolations,
		Slug:     "search-arrest-violations",
		Label:    "Which violations are most associated with searches or arrests?",
		SQL:      sqlSearchArrestViolations,
		Evaluate: violationRates(desc),
	},
	{
		ID:       YoungDriverViolations,
		Slug:     "young-driver-violations",
		Label:    "Which violations are most common among younger drivers (<25)?",
		SQL:      sqlYoungDriverViolations,
		Evaluate: evalYoungDriverViolations,
	},
	{
		ID:       RarelyEnforcedViolations,
		Slug:     "rarely-enforced-violations",
		Label:    "Is there a violation that rarely results in search or arrest?",
		SQL:      sqlRarelyEnforcedViolations,
		Evaluate: violationRates(asc),
	},
	{
		ID:       CountryDrugRate,
		Slug:     "country-drug-rate",
		Label:    "Which countries report the highest rate of drug-related stops?",
		SQL:      sqlCountryDrugRate,
		Evaluate: evalCountryDrugRate,
	},
	{
		ID:       CountryViolationArrestRate,
		Slug:     "country-violation-arrest-rate",
		Label:    "What is the arrest rate by country and violation?",
		SQL:      sqlCountryViolationArrestRate,
		Evaluate: evalCountryViolationArrestRate,
	},
	{
		ID:       CountrySearches,
		Slug:     "country-searches",
		Label:    "Which country has the most stops with search conducted?",
		SQL:      sqlCountrySearches,
		Evaluate: evalCountrySearches,
	},
	{
		ID:       YearlyCountryBreakdown,
		Slug:     "yearly-country-breakdown",
		Label:    "Yearly Breakdown of Stops and Arrests by Country",
		SQL:      sqlYearlyCountryBreakdown,
		Evaluate: evalYearlyCountryBreakdown,
	},
	{
		ID:       AgeCountryViolationTrends,
		Slug:     "age-country-violation-trends",
		Label:    "Driver Violation Trends Based on Age and Country",
		SQL:      sqlAgeCountryViolationTrends,
		Evaluate: evalAgeCountryViolationTrends,
	},
	{
		ID:       TimePeriodAnalysis,
		Slug:     "time-period-analysis",
		Label:    "Time Period Analysis of Stops",
		SQL:      sqlTimePeriodAnalysis,
		Evaluate: evalTimePeriodAnalysis,
	},
	{
		ID:       RankedSearchArrestViolations,
		Slug:     "ranked-search-arrest-violations",
		Label:    "Violations with High Search and Arrest Rates",
		SQL:      sqlRankedSearchArrestViolations,
		Evaluate: evalRankedSearchArrestViolations,
	},
	{
		ID:       CountryDemographics,
		Slug:     "country-demographics",
		Label:    "Driver Demographics by Country",
		SQL:      sqlCountryDemographics,
		Evaluate: evalCountryDemographics,
	},
	{
		ID:       TopArrestViolations,
		Slug:     "top-arrest-violations",
		Label:    "Top 5 Violations with Highest Arrest Rates",
		SQL:      sqlTopArrestViolations,
		Evaluate: evalTopArrestViolations,
	},
}

// All returns the catalog in display order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

func Lookup(id QueryID) (Entry, error) {
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrUnknownQuery
}

func BySlug(slug string) (Entry, error) {
	for _, e := range entries {
		if e.Slug == slug {
			return e, nil
		}
	}
	return Entry{}, ErrUnknownQuery
}

func ByLabel(label string) (Entry, error) {
	for _, e := range entries {
		if e.Label == label {
			return e, nil
		}
	}
	return Entry{}, ErrUnknownQuery
}

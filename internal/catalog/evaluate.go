package catalog

import (
	"cmp"

	"github.com/securecheck/backend/internal/display"
	"github.com/securecheck/backend/internal/storage/models"
)

// Evaluator computes a catalog answer over an in-memory record set.
type Evaluator func(records []models.StopRecord) display.Table

func topVehicles(include func(models.StopRecord) bool, column string) Evaluator {
	return func(records []models.StopRecord) display.Table {
		g := newGrouper()
		for _, r := range records {
			if include(r) {
				g.add(r, r.VehicleNumber)
			}
		}
		t := display.NewTable(models.ColVehicleNumber, column)
		for _, grp := range head(g.sorted(desc(totalOf)), 10) {
			t.Append(grp.keys[0], grp.total)
		}
		return t
	}
}

func evalAgeGroupArrestRate(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		g.add(r, AgeGroup(r.DriverAge))
	}
	t := display.NewTable("age_group", "arrest_rate_percentage")
	for _, grp := range head(g.sorted(desc((*tally).arrestRate)), 1) {
		t.Append(grp.keys[0], grp.arrestRate())
	}
	return t
}

func evalGenderByCountry(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		g.add(r, r.CountryName, r.DriverGender)
	}
	groups := g.sorted(func(a, b *tally) int {
		if c := compareKey(a.keys[0], b.keys[0]); c != 0 {
			return c
		}
		if c := cmp.Compare(b.total, a.total); c != 0 {
			return c
		}
		return compareKey(a.keys[1], b.keys[1])
	})
	t := display.NewTable(models.ColCountryName, models.ColDriverGender, "total_count")
	for _, grp := range groups {
		t.Append(grp.keys[0], grp.keys[1], grp.total)
	}
	return t
}

func evalGenderSearchRate(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		g.add(r, r.DriverGender)
	}
	t := display.NewTable(models.ColDriverGender, "search_rate_percentage")
	for _, grp := range head(g.sorted(desc((*tally).searchRate)), 2) {
		t.Append(grp.keys[0], grp.searchRate())
	}
	return t
}

func evalBusiestHour(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		if r.StopDateTime != nil {
			g.add(r, r.StopDateTime.Hour())
		}
	}
	t := display.NewTable("hour_of_day", "stop_count")
	for _, grp := range head(g.sorted(desc(totalOf)), 1) {
		t.Append(grp.keys[0], grp.total)
	}
	return t
}

func evalAvgDurationByViolation(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		minutes, ok := ParseDuration(r.StopDuration)
		if !ok {
			continue
		}
		grp := g.add(r, r.Violation)
		grp.minutes += minutes
		grp.timed++
	}
	t := display.NewTable(models.ColViolation, "avg_stop_minutes")
	for _, grp := range g.sorted(desc((*tally).avgMinutes)) {
		t.Append(grp.keys[0], grp.avgMinutes())
	}
	return t
}

func evalNightArrestRate(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		if r.StopDateTime != nil {
			g.add(r, TimeOfDay(r.StopDateTime.Hour()))
		}
	}
	t := display.NewTable("time_of_day", "arrest_rate_percentage", "total_stops")
	for _, grp := range g.sorted(desc((*tally).arrestRate)) {
		t.Append(grp.keys[0], grp.arrestRate(), grp.total)
	}
	return t
}

func violationRates(order func(func(*tally) float64) func(a, b *tally) int) Evaluator {
	return func(records []models.StopRecord) display.Table {
		g := newGrouper()
		for _, r := range records {
			g.add(r, r.Violation)
		}
		t := display.NewTable(models.ColViolation, "search_rate", "arrest_rate", "total_stops")
		for _, grp := range head(g.sorted(order((*tally).combined)), 10) {
			t.Append(grp.keys[0], grp.searchRate(), grp.arrestRate(), grp.total)
		}
		return t
	}
}

func evalYoungDriverViolations(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		if r.DriverAge != nil && *r.DriverAge < 25 {
			g.add(r, r.Violation)
		}
	}
	t := display.NewTable(models.ColViolation, "total_count")
	for _, grp := range head(g.sorted(desc(totalOf)), 10) {
		t.Append(grp.keys[0], grp.total)
	}
	return t
}

func evalCountryDrugRate(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		g.add(r, r.CountryName)
	}
	t := display.NewTable(models.ColCountryName, "drug_related_rate", "total_stops")
	for _, grp := range head(g.sorted(desc((*tally).drugRate)), 10) {
		t.Append(grp.keys[0], grp.drugRate(), grp.total)
	}
	return t
}

func evalCountryViolationArrestRate(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		g.add(r, r.CountryName, r.Violation)
	}
	t := display.NewTable(models.ColCountryName, models.ColViolation, "arrest_rate", "total_stops")
	for _, grp := range head(g.sorted(desc((*tally).arrestRate)), 10) {
		t.Append(grp.keys[0], grp.keys[1], grp.arrestRate(), grp.total)
	}
	return t
}

func evalCountrySearches(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		if r.SearchConducted {
			g.add(r, r.CountryName)
		}
	}
	t := display.NewTable(models.ColCountryName, "total_searches")
	for _, grp := range head(g.sorted(desc(totalOf)), 5) {
		t.Append(grp.keys[0], grp.total)
	}
	return t
}

func evalYearlyCountryBreakdown(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		if r.StopDateTime != nil {
			g.add(r, r.CountryName, r.StopDateTime.Year())
		}
	}
	groups := g.sorted(func(a, b *tally) int {
		if c := compareKey(a.keys[1], b.keys[1]); c != 0 {
			return c
		}
		if c := cmp.Compare(b.total, a.total); c != 0 {
			return c
		}
		return compareKey(a.keys[0], b.keys[0])
	})
	byYear := func(t *tally) string { return joinKeys(t.keys[1:]) }
	rank := ranks(groups, byYear, totalOf)

	t := display.NewTable(models.ColCountryName, "year", "total_stops", "total_arrests",
		"arrest_rate_percentage", "rank_by_year")
	for i, grp := range groups {
		t.Append(grp.keys[0], grp.keys[1], grp.total, grp.arrested, grp.arrestRate(), rank[i])
	}
	return t
}

func evalAgeCountryViolationTrends(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		g.add(r, AgeGroup(r.DriverAge), r.CountryName, r.Violation)
	}
	groups := g.sorted(func(a, b *tally) int {
		if c := compareKey(a.keys[0], b.keys[0]); c != 0 {
			return c
		}
		if c := compareKey(a.keys[1], b.keys[1]); c != 0 {
			return c
		}
		if c := cmp.Compare(b.total, a.total); c != 0 {
			return c
		}
		return compareKey(a.keys[2], b.keys[2])
	})
	byAgeCountry := func(t *tally) string { return joinKeys(t.keys[:2]) }
	rank := ranks(groups, byAgeCountry, totalOf)

	t := display.NewTable("age_group", models.ColCountryName, models.ColViolation, "total_count", "rank_in_group")
	for i, grp := range head(groups, 20) {
		t.Append(grp.keys[0], grp.keys[1], grp.keys[2], grp.total, rank[i])
	}
	return t
}

func evalTimePeriodAnalysis(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		if ts := r.StopDateTime; ts != nil {
			g.add(r, ts.Year(), int(ts.Month()), ts.Hour())
		}
	}
	t := display.NewTable("year", "month", "hour", "total_stops")
	for _, grp := range g.sorted(compareKeys) {
		t.Append(grp.keys[0], grp.keys[1], grp.keys[2], grp.total)
	}
	return t
}

func evalRankedSearchArrestViolations(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		g.add(r, r.Violation)
	}
	combinedRate := func(t *tally) float64 { return Round2(t.searchRate() + t.arrestRate()) }
	groups := g.sorted(desc(combinedRate))
	global := func(*tally) string { return "" }
	rank := ranks(groups, global, combinedRate)

	t := display.NewTable(models.ColViolation, "search_rate", "arrest_rate", "combined_rate", "rate_rank")
	for i, grp := range head(groups, 10) {
		t.Append(grp.keys[0], grp.searchRate(), grp.arrestRate(), combinedRate(grp), rank[i])
	}
	return t
}

func evalCountryDemographics(records []models.StopRecord) display.Table {
	g := newGrouper()
	countryTotals := make(map[string]int)
	for _, r := range records {
		g.add(r, r.CountryName, AgeGroup(r.DriverAge), r.DriverGender)
		countryTotals[r.CountryName]++
	}
	t := display.NewTable(models.ColCountryName, "age_group", models.ColDriverGender,
		"total_count", "percentage_in_country")
	for _, grp := range g.sorted(compareKeys) {
		country := grp.keys[0].(string)
		t.Append(country, grp.keys[1], grp.keys[2], grp.total, Rate(grp.total, countryTotals[country]))
	}
	return t
}

func evalTopArrestViolations(records []models.StopRecord) display.Table {
	g := newGrouper()
	for _, r := range records {
		g.add(r, r.Violation)
	}
	t := display.NewTable(models.ColViolation, "arrest_rate", "total_stops")
	for _, grp := range head(g.sorted(desc((*tally).arrestRate)), 5) {
		t.Append(grp.keys[0], grp.arrestRate(), grp.total)
	}
	return t
}

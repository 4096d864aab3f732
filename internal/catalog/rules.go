package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	AgeUnder25 = "Under 25"
	Age25To40  = "25-40"
	AgeOver40  = "Over 40"
	AgeUnknown = "Unknown"

	Day   = "Day"
	Night = "Night"
)

var (
	durationRange = regexp.MustCompile(`^(\d+)-(\d+)`)
	durationBare  = regexp.MustCompile(`^(\d+)`)
)

// AgeGroup buckets an age as <25, [25,40], >40. A nil age is Unknown.
func AgeGroup(age *int) string {
	switch {
	case age == nil:
		return AgeUnknown
	case *age < 25:
		return AgeUnder25
	case *age <= 40:
		return Age25To40
	default:
		return AgeOver40
	}
}

// ParseDuration reads stop_duration text as minutes. "5-10" is the
// midpoint 7.5, "8" (or "8 min") is 8. Anything else has no value.
func ParseDuration(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if m := durationRange.FindStringSubmatch(text); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			return 0, false
		}
		return (lo + hi) / 2, true
	}
	if m := durationBare.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// TimeOfDay is Day for 06:00-19:59 and Night otherwise.
func TimeOfDay(hour int) string {
	if hour >= 20 || hour < 6 {
		return Night
	}
	return Day
}

// Rate is hits as a percentage of total, rounded to two decimals.
func Rate(hits, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(hits) * 100 / float64(total))
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package lookup finds stops by vehicle number and describes each one in
// a sentence.
package lookup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/securecheck/backend/internal/display"
	"github.com/securecheck/backend/internal/storage/models"
)

const (
	PromptMessage   = "Enter a vehicle number to search."
	NotFoundMessage = "No record found for vehicle number: "
)

type Status int

const (
	StatusPrompt Status = iota
	StatusNotFound
	StatusFound
)

func (s Status) String() string {
	switch s {
	case StatusPrompt:
		return "prompt"
	case StatusNotFound:
		return "not_found"
	case StatusFound:
		return "found"
	default:
		return "unknown"
	}
}

type Result struct {
	Query        string
	Status       Status
	Matches      []models.StopRecord
	Descriptions []string
	Notice       *display.Notice
}

// Search returns every record whose vehicle number contains input,
// ignoring case and surrounding whitespace, in dataset order. Blank
// input performs no lookup.
func Search(records []models.StopRecord, input string) Result {
	query := strings.TrimSpace(input)
	if query == "" {
		return Result{Status: StatusPrompt, Notice: display.Info(PromptMessage)}
	}

	needle := strings.ToLower(query)
	res := Result{Query: query}
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.VehicleNumber), needle) {
			res.Matches = append(res.Matches, r)
			res.Descriptions = append(res.Descriptions, Describe(r))
		}
	}

	if len(res.Matches) == 0 {
		res.Status = StatusNotFound
		res.Notice = display.Warning(NotFoundMessage + query)
		return res
	}
	res.Status = StatusFound
	return res
}

var minutesText = regexp.MustCompile(`^\d+(-\d+)?$`)

// Describe renders one stop as a sentence. Absent fields fall back to
// fixed phrases instead of failing.
func Describe(r models.StopRecord) string {
	gender := r.DriverGender
	if gender == "" {
		gender = "unspecified"
	}

	var driver string
	if r.DriverAge != nil {
		driver = fmt.Sprintf("A %d-year-old %s driver", *r.DriverAge, gender)
	} else {
		driver = fmt.Sprintf("A %s driver of unknown age", gender)
	}

	violation := r.Violation
	if violation == "" {
		violation = "an unspecified violation"
	}

	at := "unknown time"
	if r.StopDateTime != nil {
		at = r.StopDateTime.Format("03:04 PM")
	}

	search := "No search was conducted"
	if r.SearchConducted {
		search = "A search was conducted"
	}

	outcome := "no outcome"
	if r.StopOutcome != "" {
		outcome = strings.ToLower(r.StopOutcome)
	}

	duration := "unknown duration"
	if text := strings.TrimSpace(r.StopDuration); text != "" {
		duration = strings.ToLower(text)
		if minutesText.MatchString(duration) {
			duration += " minutes"
		}
	}

	drugs := "not drug-related"
	if r.DrugsRelatedStop {
		drugs = "drug-related"
	}

	return fmt.Sprintf("%s was stopped for %s at %s. %s, received a %s. The stop lasted %s and was %s.",
		driver, violation, at, search, outcome, duration, drugs)
}

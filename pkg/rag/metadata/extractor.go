// FILE: pkg/rag/metadata/extractor.go
// PURPOSE: Extract project/job identifiers and time ranges from query text

package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ProjectMetadata holds structured identifiers pulled out of a free-text query.
// A job number's first 3 digits always equal its year code.
type ProjectMetadata struct {
	JobNumber      string `json:"job_number,omitempty"`
	YearCode       string `json:"year_code,omitempty"`
	YearRangeStart int    `json:"year_range_start,omitempty"`
	YearRangeEnd   int    `json:"year_range_end,omitempty"`
	YearsBack      int    `json:"years_back,omitempty"`
}

// HasYearRange reports whether a relative time range was extracted
func (m *ProjectMetadata) HasYearRange() bool {
	return m != nil && m.YearRangeStart != 0 && m.YearRangeEnd != 0
}

var (
	relativeRangeRe = regexp.MustCompile(`(?i)\b(?:past|last)\s+(\d+)\s+years?\b`)
	yearsAgoRe      = regexp.MustCompile(`(?i)\b(\d+)\s+years?\s+ago\b`)
	calendarYearRe  = regexp.MustCompile(`\b(20\d{2})\b`)
	jobNumberRe     = regexp.MustCompile(`\b(2\d{5})\b`)
	bareYearCodeRe  = regexp.MustCompile(`\b(2\d{2})\b`)
)

// Keywords that make a nearby bare number read as a project reference
// rather than a dimension (e.g., "project 225" vs "225mm")
var projectKeywords = []string{"project", "projects", "job", "jobs", "year", "from", "in"}

// YearCodeForYear converts a calendar year to its 3-digit folder code
// (2025 -> "225", 2019 -> "219").
func YearCodeForYear(year int) int {
	return 200 + year%100
}

// YearCodeOf returns the year code embedded in a 6-digit job number
func YearCodeOf(jobNumber string) string {
	if len(jobNumber) < 3 {
		return ""
	}
	return jobNumber[:3]
}

// Extract parses project metadata from a query. Precedence, first match wins:
// relative time range, absolute calendar year near a keyword, bare 6-digit
// job number, bare 3-digit year code near a project keyword.
// Returns nil when nothing project-related is found.
func Extract(query string, nowYear int) *ProjectMetadata {
	if meta := extractYearRange(query, nowYear); meta != nil {
		return meta
	}
	if meta := extractCalendarYear(query); meta != nil {
		return meta
	}
	if meta := extractJobNumber(query); meta != nil {
		return meta
	}
	if meta := extractBareYearCode(query); meta != nil {
		return meta
	}
	return nil
}

// extractYearRange handles "past N years", "last N years" and "N years ago"
func extractYearRange(query string, nowYear int) *ProjectMetadata {
	match := relativeRangeRe.FindStringSubmatch(query)
	if match == nil {
		match = yearsAgoRe.FindStringSubmatch(query)
	}
	if match == nil {
		return nil
	}

	n, err := strconv.Atoi(match[1])
	if err != nil || n <= 0 {
		return nil
	}

	current := YearCodeForYear(nowYear)
	start := current - n
	if start < 200 {
		start = 200
	}

	return &ProjectMetadata{
		YearRangeStart: start,
		YearRangeEnd:   current,
		YearsBack:      n,
	}
}

// extractCalendarYear handles an absolute 4-digit year next to a keyword
// ("projects from 2023"). The keyword must sit within two words of the year
// so stray numbers in unrelated text do not trigger a filter.
func extractCalendarYear(query string) *ProjectMetadata {
	words := strings.Fields(strings.ToLower(query))

	for i, word := range words {
		cleaned := strings.Trim(word, ".,?!;:()")
		if !calendarYearRe.MatchString(cleaned) {
			continue
		}
		year, err := strconv.Atoi(calendarYearRe.FindString(cleaned))
		if err != nil {
			continue
		}
		if hasKeywordNear(words, i, 2) {
			return &ProjectMetadata{
				YearCode: fmt.Sprintf("%d", YearCodeForYear(year)),
			}
		}
	}
	return nil
}

func hasKeywordNear(words []string, index, window int) bool {
	lo := index - window
	if lo < 0 {
		lo = 0
	}
	hi := index + window
	if hi >= len(words) {
		hi = len(words) - 1
	}
	for i := lo; i <= hi; i++ {
		cleaned := strings.Trim(words[i], ".,?!;:()")
		for _, kw := range projectKeywords {
			if cleaned == kw {
				return true
			}
		}
	}
	return false
}

// extractJobNumber handles a bare 6-digit job number starting with 2
func extractJobNumber(query string) *ProjectMetadata {
	match := jobNumberRe.FindStringSubmatch(query)
	if match == nil {
		return nil
	}
	job := match[1]
	return &ProjectMetadata{
		JobNumber: job,
		YearCode:  YearCodeOf(job),
	}
}

// extractBareYearCode handles a 3-digit code in 200-299 alongside a project keyword
func extractBareYearCode(query string) *ProjectMetadata {
	lower := strings.ToLower(query)

	hasKeyword := false
	for _, kw := range []string{"project", "job"} {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return nil
	}

	match := bareYearCodeRe.FindStringSubmatch(query)
	if match == nil {
		return nil
	}

	code, err := strconv.Atoi(match[1])
	if err != nil || code < 200 || code > 299 {
		return nil
	}

	return &ProjectMetadata{YearCode: match[1]}
}

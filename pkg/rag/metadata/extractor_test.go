package metadata

import (
	"fmt"
	"testing"
)

func TestExtractYearRange(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		nowYear   int
		wantStart int
		wantEnd   int
		wantBack  int
	}{
		{
			name:      "past 4 years in 2025",
			query:     "give me project numbers from the past 4 years",
			nowYear:   2025,
			wantStart: 221,
			wantEnd:   225,
			wantBack:  4,
		},
		{
			name:      "last 2 years",
			query:     "projects from the last 2 years",
			nowYear:   2025,
			wantStart: 223,
			wantEnd:   225,
			wantBack:  2,
		},
		{
			name:      "years ago phrasing",
			query:     "what did we build 3 years ago",
			nowYear:   2024,
			wantStart: 221,
			wantEnd:   224,
			wantBack:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := Extract(tt.query, tt.nowYear)
			if meta == nil {
				t.Fatal("expected metadata, got nil")
			}
			if meta.YearRangeStart != tt.wantStart || meta.YearRangeEnd != tt.wantEnd {
				t.Errorf("range = [%d,%d], want [%d,%d]", meta.YearRangeStart, meta.YearRangeEnd, tt.wantStart, tt.wantEnd)
			}
			if meta.YearsBack != tt.wantBack {
				t.Errorf("yearsBack = %d, want %d", meta.YearsBack, tt.wantBack)
			}
		})
	}
}

func TestExtractCalendarYear(t *testing.T) {
	meta := Extract("show me projects from 2023", 2025)
	if meta == nil {
		t.Fatal("expected metadata, got nil")
	}
	if meta.YearCode != "223" {
		t.Errorf("yearCode = %q, want %q", meta.YearCode, "223")
	}
	if meta.JobNumber != "" {
		t.Errorf("jobNumber = %q, want empty", meta.JobNumber)
	}
}

func TestExtractJobNumber(t *testing.T) {
	meta := Extract("tell me about 224002", 2025)
	if meta == nil {
		t.Fatal("expected metadata, got nil")
	}
	if meta.JobNumber != "224002" {
		t.Errorf("jobNumber = %q, want %q", meta.JobNumber, "224002")
	}
	if meta.YearCode != "224" {
		t.Errorf("yearCode = %q, want %q", meta.YearCode, "224")
	}
}

func TestExtractBareYearCode(t *testing.T) {
	meta := Extract("show me project 225 drawings", 2025)
	if meta == nil {
		t.Fatal("expected metadata, got nil")
	}
	if meta.YearCode != "225" {
		t.Errorf("yearCode = %q, want %q", meta.YearCode, "225")
	}
}

func TestExtractNoMatch(t *testing.T) {
	tests := []string{
		"what's our wellness policy",
		"the beam is 225mm deep",
		"how do I submit a timesheet",
		"",
	}
	for _, query := range tests {
		t.Run(query, func(t *testing.T) {
			if meta := Extract(query, 2025); meta != nil {
				t.Errorf("Extract(%q) = %+v, want nil", query, meta)
			}
		})
	}
}

func TestJobNumberYearCodeInvariant(t *testing.T) {
	// Every valid job number's year code is its first 3 digits
	for year := 200; year <= 299; year++ {
		for _, seq := range []int{1, 42, 999} {
			job := fmt.Sprintf("%d%03d", year, seq)
			if got := YearCodeOf(job); got != fmt.Sprintf("%d", year) {
				t.Fatalf("YearCodeOf(%s) = %s, want %d", job, got, year)
			}
			meta := Extract("details on job "+job, 2025)
			if meta == nil || meta.JobNumber != job {
				t.Fatalf("Extract failed to find job %s: %+v", job, meta)
			}
			if meta.YearCode != job[:3] {
				t.Fatalf("yearCode %s does not match job prefix %s", meta.YearCode, job[:3])
			}
		}
	}
}

func TestRelativeRangeTakesPrecedenceOverJobNumber(t *testing.T) {
	meta := Extract("projects like 224002 from the past 4 years", 2025)
	if meta == nil {
		t.Fatal("expected metadata, got nil")
	}
	if !meta.HasYearRange() {
		t.Errorf("expected year range to win precedence, got %+v", meta)
	}
}

func TestYearCodeForYear(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{2025, 225},
		{2019, 219},
		{2000, 200},
	}
	for _, tt := range tests {
		if got := YearCodeForYear(tt.year); got != tt.want {
			t.Errorf("YearCodeForYear(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

package scoring

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func float64Ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func datePtr(d Date) *Date { return &d }

var testToday = NewDate(2026, time.March, 10)

func TestUrgency(t *testing.T) {
	tests := []struct {
		name string
		due  *Date
		want float64
	}{
		{"no due date", nil, 0.4},
		{"overdue by one day", datePtr(testToday.AddDays(-1)), 1.0},
		{"overdue by a month", datePtr(testToday.AddDays(-30)), 1.0},
		{"due today", datePtr(testToday), 0.9},
		{"due tomorrow", datePtr(testToday.AddDays(1)), 1 - 1.0/14},
		{"due in a week", datePtr(testToday.AddDays(7)), 0.5},
		{"due in two weeks", datePtr(testToday.AddDays(14)), 0.0},
		{"due far out", datePtr(testToday.AddDays(90)), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Urgency(tt.due, testToday)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestUrgencyAcrossMonthBoundary(t *testing.T) {
	today := NewDate(2026, time.January, 31)
	due := NewDate(2026, time.February, 7)
	if got := Urgency(&due, today); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected 0.5 seven days out, got %f", got)
	}
}

func TestEffort(t *testing.T) {
	tests := []struct {
		name  string
		hours *float64
		want  float64
	}{
		{"missing defaults to two hours", nil, 0.75},
		{"zero hours", float64Ptr(0), 1.0},
		{"negative hours", float64Ptr(-3), 1.0},
		{"one hour", float64Ptr(1), 0.875},
		{"four hours", float64Ptr(4), 0.5},
		{"full day", float64Ptr(8), 0.0},
		{"two days", float64Ptr(16), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Effort(tt.hours)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNormalizedImportance(t *testing.T) {
	tests := []struct {
		importance int
		want       float64
	}{
		{-4, 0.1},
		{0, 0.1},
		{1, 0.1},
		{5, 0.5},
		{10, 1.0},
		{42, 1.0},
	}
	for _, tt := range tests {
		if got := NormalizedImportance(tt.importance); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("importance %d: got %f, want %f", tt.importance, got, tt.want)
		}
	}
}

func TestBreakdownWeightedContributions(t *testing.T) {
	rec := &TaskRecord{ID: "a", Title: "A", Importance: 8, DueDate: datePtr(testToday.AddDays(-2))}
	f := Factors{Urgency: 1.0, Importance: 0.8, Effort: 0.75, Dependency: 0}
	results := breakdown(rec, f, DefaultWeights(), testToday)

	if len(results) != 4 {
		t.Fatalf("expected 4 factors, got %d", len(results))
	}
	var total float64
	for _, r := range results {
		if math.Abs(r.Weighted-r.Score*r.Weight) > 1e-9 {
			t.Errorf("%s: weighted %f != score*weight", r.Name, r.Weighted)
		}
		total += r.Weighted
	}
	if math.Abs(total-DefaultWeights().Apply(f)) > 1e-9 {
		t.Errorf("breakdown total %f does not match score %f", total, DefaultWeights().Apply(f))
	}
	if results[0].Reason != "overdue by 2 days" {
		t.Errorf("unexpected urgency reason %q", results[0].Reason)
	}
	if results[2].Available {
		t.Error("expected effort unavailable without an estimate")
	}
}

func TestDateText(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2026-02-28" {
		t.Errorf("expected round trip, got %s", d.String())
	}
	if d.DaysUntil(d.AddDays(2)) != 2 {
		t.Errorf("expected 2 days to 2026-03-02")
	}

	var bad Date
	if err := bad.UnmarshalText([]byte("28/02/2026")); err == nil {
		t.Error("expected error for non ISO date")
	}
}

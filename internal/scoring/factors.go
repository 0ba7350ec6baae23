package scoring

import (
	"fmt"
	"math"
)

const (
	DefaultImportance = 5
	MinImportance     = 1
	MaxImportance     = 10

	noDueDateUrgency   = 0.4
	overdueUrgency     = 1.0
	dueTodayUrgency    = 0.9
	urgencyHorizonDays = 14.0

	defaultEstimatedHours = 2.0
	fullDayHours          = 8.0
)

// Factors holds the four normalized inputs every strategy combines.
// All values are in [0, 1].
type Factors struct {
	Urgency    float64
	Importance float64
	Effort     float64
	Dependency float64
}

// FactorResult captures one factor's contribution to the total score.
type FactorResult struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason"`
}

// --- Individual factor calculators ---

// Urgency maps an optional due date to [0, 1] relative to today.
// Overdue tasks score 1.0, tasks due today 0.9, and urgency decays linearly to
// 0 at two weeks out. Tasks without a due date get a neutral 0.4.
func Urgency(due *Date, today Date) float64 {
	if due == nil {
		return noDueDateUrgency
	}
	days := today.DaysUntil(*due)
	switch {
	case days < 0:
		return overdueUrgency
	case days == 0:
		return dueTodayUrgency
	}
	return clamp(1.0-float64(days)/urgencyHorizonDays, 0.0, 1.0)
}

// Effort maps an optional hour estimate to a [0, 1] "quick win" value.
// Missing estimates count as 2 hours; a full working day or more scores 0.
func Effort(hours *float64) float64 {
	h := defaultEstimatedHours
	if hours != nil {
		h = *hours
	}
	if h <= 0 {
		return 1.0
	}
	return 1.0 - math.Min(h/fullDayHours, 1.0)
}

// NormalizedImportance clamps importance into [1, 10] and scales it to [0.1, 1].
func NormalizedImportance(importance int) float64 {
	if importance < MinImportance {
		importance = MinImportance
	}
	if importance > MaxImportance {
		importance = MaxImportance
	}
	return float64(importance) / float64(MaxImportance)
}

// breakdown reports each factor weighted by the strategy in effect.
func breakdown(rec *TaskRecord, f Factors, w WeightSet, today Date) []FactorResult {
	results := []FactorResult{
		{Name: "urgency", Score: f.Urgency, Weight: w.Urgency, Available: rec.DueDate != nil, Reason: urgencyReason(rec.DueDate, today)},
		{Name: "importance", Score: f.Importance, Weight: w.Importance, Available: true, Reason: fmt.Sprintf("importance %d of %d", rec.Importance, MaxImportance)},
		{Name: "effort", Score: f.Effort, Weight: w.Effort, Available: rec.EstimatedHours != nil, Reason: effortReason(rec.EstimatedHours)},
		{Name: "dependency", Score: f.Dependency, Weight: w.Dependency, Available: true, Reason: "share of the largest downstream chain"},
	}
	for i := range results {
		results[i].Weighted = results[i].Score * results[i].Weight
	}
	return results
}

func urgencyReason(due *Date, today Date) string {
	if due == nil {
		return "no due date"
	}
	days := today.DaysUntil(*due)
	switch {
	case days < 0:
		return fmt.Sprintf("overdue by %d days", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	}
	return fmt.Sprintf("due in %d days", days)
}

func effortReason(hours *float64) string {
	if hours == nil {
		return fmt.Sprintf("no estimate, assuming %.0f hours", defaultEstimatedHours)
	}
	return fmt.Sprintf("estimated %.1f hours", *hours)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

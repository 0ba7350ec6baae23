package scoring

import "strings"

const (
	WarningImportanceDefaulted  = "Importance defaulted to 5."
	WarningCircularDependency   = "This task is part of a circular dependency."
	moderatePriorityExplanation = "Moderate priority based on current settings."
)

// Explain builds a human-readable justification from the factor values.
// Phrases are emitted in a fixed order so the text is deterministic.
func Explain(f Factors) string {
	var reasons []string

	switch {
	case f.Urgency >= 0.9:
		reasons = append(reasons, "urgent or overdue")
	case f.Urgency >= 0.6:
		reasons = append(reasons, "approaching deadline")
	}

	switch {
	case f.Importance >= 0.8:
		reasons = append(reasons, "very important")
	case f.Importance >= 0.6:
		reasons = append(reasons, "important")
	}

	if f.Effort >= 0.7 {
		reasons = append(reasons, "quick to complete")
	}
	if f.Dependency >= 0.5 {
		reasons = append(reasons, "unblocks many other tasks")
	}

	if len(reasons) == 0 {
		return moderatePriorityExplanation
	}
	return "High priority because it is " + strings.Join(reasons, ", ") + "."
}

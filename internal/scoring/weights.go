package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each scoring factor.
// Weights need not sum to 1.0; scores are never re-normalized.
type WeightSet struct {
	Urgency    float64 `json:"w_urgency" yaml:"urgency"`
	Importance float64 `json:"w_importance" yaml:"importance"`
	Effort     float64 `json:"w_effort" yaml:"effort"`
	Dependency float64 `json:"w_dependency" yaml:"dependency"`
}

// DefaultWeights returns the smart_balance weight distribution.
func DefaultWeights() WeightSet {
	return WeightSet{
		Urgency:    0.35,
		Importance: 0.35,
		Effort:     0.15,
		Dependency: 0.15,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Urgency + w.Importance + w.Effort + w.Dependency
}

// Validate checks that no weight is negative or non-finite.
func (w WeightSet) Validate() error {
	for _, v := range w.asList() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite weight: %f", v)
		}
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// Apply combines factors into a single weighted score.
func (w WeightSet) Apply(f Factors) float64 {
	return w.Urgency*f.Urgency + w.Importance*f.Importance + w.Effort*f.Effort + w.Dependency*f.Dependency
}

func (w WeightSet) asList() []float64 {
	return []float64{w.Urgency, w.Importance, w.Effort, w.Dependency}
}

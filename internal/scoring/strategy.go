package scoring

// Strategy selects how the four factors are combined into a score.
type Strategy int

const (
	SmartBalance Strategy = iota
	FastestWins
	HighImpact
	DeadlineDriven
)

// DefaultStrategyName is used when a caller does not name a strategy.
const DefaultStrategyName = "smart_balance"

var strategyNames = map[Strategy]string{
	SmartBalance:   "smart_balance",
	FastestWins:    "fastest_wins",
	HighImpact:     "high_impact",
	DeadlineDriven: "deadline_driven",
}

var strategyDescriptions = map[Strategy]string{
	SmartBalance:   "configurable blend of urgency, importance, effort and dependency impact",
	FastestWins:    "favours quick wins: 0.6 effort, 0.2 urgency, 0.2 importance",
	HighImpact:     "favours important work: 0.6 importance, 0.25 urgency, 0.15 dependency",
	DeadlineDriven: "favours deadlines: 0.7 urgency, 0.2 importance, 0.1 dependency",
}

// Strategies returns every strategy in catalogue order.
func Strategies() []Strategy {
	return []Strategy{SmartBalance, FastestWins, HighImpact, DeadlineDriven}
}

// ParseStrategy resolves a strategy by name. Unknown names resolve to
// SmartBalance with ok=false.
func ParseStrategy(name string) (Strategy, bool) {
	for s, n := range strategyNames {
		if n == name {
			return s, true
		}
	}
	return SmartBalance, false
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return strategyNames[SmartBalance]
}

// Description is a one-line summary of the strategy's formula.
func (s Strategy) Description() string {
	return strategyDescriptions[s]
}

// Weights returns the effective factor weights of s. Only SmartBalance uses
// the configurable set; the other strategies have fixed formulas.
func (s Strategy) Weights(configurable WeightSet) WeightSet {
	switch s {
	case FastestWins:
		return WeightSet{Urgency: 0.2, Importance: 0.2, Effort: 0.6}
	case HighImpact:
		return WeightSet{Urgency: 0.25, Importance: 0.6, Dependency: 0.15}
	case DeadlineDriven:
		return WeightSet{Urgency: 0.7, Importance: 0.2, Dependency: 0.1}
	default:
		return configurable
	}
}

// Score combines f under strategy s.
func (s Strategy) Score(f Factors, configurable WeightSet) float64 {
	return s.Weights(configurable).Apply(f)
}

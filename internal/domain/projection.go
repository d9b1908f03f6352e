package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EffectResult is the pure numeric impact of one scenario.
type EffectResult struct {
	NetEffect            decimal.Decimal `json:"net_effect"`
	MonthlyChange        decimal.Decimal `json:"monthly_change"`
	AffectedTransactions int             `json:"affected_transactions"`
	RiskLevel            RiskLevel       `json:"risk_level"`
}

// ZeroEffect is the identity element for effect aggregation: zero sums,
// low risk. Malformed scenarios also resolve to it.
func ZeroEffect() EffectResult {
	return EffectResult{
		NetEffect:     decimal.Zero,
		MonthlyChange: decimal.Zero,
		RiskLevel:     RiskLow,
	}
}

// CombinedEffect aggregates the effects of all active scenarios:
// commutative sums plus the ordinal maximum risk level.
type CombinedEffect struct {
	NetEffect            decimal.Decimal `json:"net_effect"`
	MonthlyChange        decimal.Decimal `json:"monthly_change"`
	AffectedTransactions int             `json:"affected_transactions"`
	RiskLevel            RiskLevel       `json:"risk_level"`
	ScenarioCount        int             `json:"scenario_count"`
}

// ScenarioEffect pairs a scenario with its computed effect for display.
type ScenarioEffect struct {
	ScenarioID   string       `json:"scenario_id"`
	ScenarioName string       `json:"scenario_name"`
	TemplateType TemplateType `json:"template"`
	Effect       EffectResult `json:"effect"`
}

// ProjectionPoint is one month in a net-worth series. Historical points
// are reconstructed approximations; future points are simulated.
type ProjectionPoint struct {
	Timestamp    time.Time       `json:"timestamp"`
	NetWorth     decimal.Decimal `json:"net_worth"`
	IsHistorical bool            `json:"is_historical"`
}

// Conflict is a heuristic warning that active scenarios may interact
// unpredictably.
type Conflict struct {
	Name     string    `json:"name"`
	Severity RiskLevel `json:"severity"`
	Detail   string    `json:"detail"`
}

// ProjectionReport is the full preview payload handed to the UI layer:
// baseline and scenario-adjusted series, per-scenario and combined effect
// summaries, and any conflict warnings.
type ProjectionReport struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	Months          int               `json:"months"`
	CurrentNetWorth decimal.Decimal   `json:"current_net_worth"`
	Baseline        []ProjectionPoint `json:"baseline"`
	WithScenarios   []ProjectionPoint `json:"with_scenarios,omitempty"`
	Effects         []ScenarioEffect  `json:"effects,omitempty"`
	Combined        *CombinedEffect   `json:"combined,omitempty"`
	Conflicts       []Conflict        `json:"conflicts,omitempty"`
}

// FinalDelta returns the difference between the last scenario-adjusted
// point and the last baseline point, or zero when no scenario series exists.
func (r *ProjectionReport) FinalDelta() decimal.Decimal {
	if len(r.Baseline) == 0 || len(r.WithScenarios) == 0 {
		return decimal.Zero
	}
	return r.WithScenarios[len(r.WithScenarios)-1].NetWorth.Sub(r.Baseline[len(r.Baseline)-1].NetWorth)
}

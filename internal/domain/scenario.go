package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TemplateType identifies which effect rule applies to a scenario.
// The set is closed; anything unrecognized is routed to TemplateGeneric.
type TemplateType string

const (
	TemplateSalaryIncrease TemplateType = "salary-increase"
	TemplateJobLoss        TemplateType = "job-loss"
	TemplateMajorPurchase  TemplateType = "major-purchase"
	TemplateDebtPayoff     TemplateType = "debt-payoff"
	TemplateEmergencyFund  TemplateType = "emergency-fund"
	TemplateGeneric        TemplateType = "generic"
)

// KnownTemplates lists every recognized template type, in display order.
var KnownTemplates = []TemplateType{
	TemplateSalaryIncrease,
	TemplateJobLoss,
	TemplateMajorPurchase,
	TemplateDebtPayoff,
	TemplateEmergencyFund,
	TemplateGeneric,
}

// Known reports whether t is a recognized template type.
func (t TemplateType) Known() bool {
	for _, k := range KnownTemplates {
		if t == k {
			return true
		}
	}
	return false
}

// Normalize maps unrecognized template types to the generic fallback.
func (t TemplateType) Normalize() TemplateType {
	if t.Known() {
		return t
	}
	return TemplateGeneric
}

// RiskLevel is an ordinal risk classification: low < medium < high.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskHigh:
		return "high"
	case RiskMedium:
		return "medium"
	default:
		return "low"
	}
}

// ParseRiskLevel maps a risk string to its level; unknown strings are low.
func ParseRiskLevel(s string) RiskLevel {
	switch s {
	case "high":
		return RiskHigh
	case "medium":
		return RiskMedium
	default:
		return RiskLow
	}
}

// MarshalJSON encodes the risk level as its name.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a risk level name.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRiskLevel(s)
	return nil
}

// MaxRisk returns the higher of two risk levels.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b > a {
		return b
	}
	return a
}

// Scenario is a user-defined hypothetical financial event. The engine
// treats scenarios as read-only input; parameters stay loosely typed
// (form input strings or YAML scalars) and are coerced by the effect rules.
type Scenario struct {
	ID           string         `yaml:"id" json:"id"`
	Name         string         `yaml:"name" json:"name"`
	TemplateType TemplateType   `yaml:"template" json:"template"`
	Parameters   map[string]any `yaml:"parameters" json:"parameters"`
	IsActive     bool           `yaml:"active" json:"active"`
	CreatedAt    time.Time      `yaml:"created_at,omitempty" json:"created_at"`
	LastModified time.Time      `yaml:"last_modified,omitempty" json:"last_modified"`
}

// Touch bumps LastModified, rolling the scenario's cache key. Callers must
// invoke this on any parameter edit so stale effects are never served.
func (s *Scenario) Touch(now time.Time) {
	s.LastModified = now
}

// CacheKey identifies the scenario's effect in the cache. It changes
// whenever the scenario is edited, so invalidation is key-based rather
// than tracked.
func (s *Scenario) CacheKey() string {
	return fmt.Sprintf("%s@%d", s.ID, s.LastModified.UnixNano())
}

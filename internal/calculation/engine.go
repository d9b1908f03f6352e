package calculation

import (
	"github.com/finsight/scenario-engine/internal/domain"
)

// Engine orchestrates the scenario projection pipeline: per-scenario
// effects, combined impact, net-worth projection and conflict detection.
// All inputs arrive materialized from the caller; the engine holds no state
// beyond the effect cache and never performs I/O.
type Engine struct {
	Rules      *RuleSet
	Cache      *Cache[domain.EffectResult]
	Aggregator *Aggregator
	Generator  *Generator
	Detector   *Detector
	Logger     Logger
}

// NewEngine creates an engine with default components.
func NewEngine() *Engine {
	rules := NewRuleSet()
	cache := NewCache[domain.EffectResult](DefaultCacheCapacity)
	engine := &Engine{
		Rules:      rules,
		Cache:      cache,
		Aggregator: NewAggregator(rules, cache),
		Generator:  NewGenerator(rules),
		Detector:   NewDetector(),
		Logger:     NopLogger{},
	}
	return engine
}

// SetLogger sets the logger for the engine and its components. A nil
// logger selects the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
	e.Rules.Logger = l
	e.Aggregator.Logger = l
	e.Generator.Logger = l
}

// ComputeEffect computes the effect of a single scenario template.
func (e *Engine) ComputeEffect(template domain.TemplateType, params map[string]any) domain.EffectResult {
	return e.Rules.ComputeEffect(template, params)
}

// Combine aggregates the active scenarios into one combined effect.
func (e *Engine) Combine(scenarios []domain.Scenario) domain.CombinedEffect {
	return e.Aggregator.Combine(scenarios)
}

// Generate builds a projection series; scenarios may be nil for baseline.
func (e *Engine) Generate(accounts []domain.Account, months int, scenarios []domain.Scenario) []domain.ProjectionPoint {
	return e.Generator.Generate(accounts, months, scenarios)
}

// Detect scans the active scenarios for conflicts.
func (e *Engine) Detect(scenarios []domain.Scenario) []domain.Conflict {
	return e.Detector.Detect(scenarios)
}

// Preview assembles the full report the UI shows next to the chart: a
// baseline series, and when any scenario is active, a scenario-adjusted
// series plus effect summaries and conflict warnings. Both series share
// seed and clock, so their difference is exactly the scenario impacts.
func (e *Engine) Preview(accounts []domain.Account, months int, scenarios []domain.Scenario) *domain.ProjectionReport {
	if months <= 0 {
		months = DefaultProjectionMonths
	}
	if e.Generator.Seed == 0 {
		e.Generator.Seed = seedFunc()
		defer func() { e.Generator.Seed = 0 }()
	}
	report := &domain.ProjectionReport{
		GeneratedAt:     nowFunc(),
		Months:          months,
		CurrentNetWorth: domain.NetWorth(accounts),
		Baseline:        e.Generator.Generate(accounts, months, nil),
	}

	anyActive := false
	for _, s := range scenarios {
		if s.IsActive {
			anyActive = true
			break
		}
	}
	if !anyActive {
		return report
	}

	report.WithScenarios = e.Generator.Generate(accounts, months, scenarios)
	report.Effects = e.Aggregator.Effects(scenarios)
	combined := e.Aggregator.Combine(scenarios)
	report.Combined = &combined
	report.Conflicts = e.Detector.Detect(scenarios)
	return report
}

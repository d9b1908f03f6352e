package calculation

import (
	"github.com/finsight/scenario-engine/internal/domain"
)

// Aggregator combines the effects of all active scenarios into one summary.
// Per-scenario effects flow through the cache, keyed by scenario id and
// lastModified, so rapid UI refreshes do not recompute unchanged scenarios.
type Aggregator struct {
	Rules  *RuleSet
	Cache  *Cache[domain.EffectResult]
	Logger Logger
}

// NewAggregator wires an aggregator around a rule set and cache.
func NewAggregator(rules *RuleSet, cache *Cache[domain.EffectResult]) *Aggregator {
	return &Aggregator{Rules: rules, Cache: cache, Logger: NopLogger{}}
}

// EffectFor returns the cached or freshly computed effect of one scenario.
// A nil cache bypasses memoization entirely.
func (a *Aggregator) EffectFor(s domain.Scenario) domain.EffectResult {
	if a.Cache == nil {
		return a.Rules.ComputeEffect(s.TemplateType, s.Parameters)
	}
	key := s.CacheKey()
	if cached, hit := a.Cache.Get(key); hit {
		return cached
	}
	result := a.Rules.ComputeEffect(s.TemplateType, s.Parameters)
	a.Cache.Set(key, result, DefaultCacheTTL)
	return result
}

// Combine sums net effect, monthly change and affected transactions over
// the active scenarios and takes the ordinal maximum risk level. The sums
// are commutative and the max associative, so the result is independent of
// scenario order. Empty input yields the zero/low-risk identity.
func (a *Aggregator) Combine(scenarios []domain.Scenario) domain.CombinedEffect {
	combined := domain.CombinedEffect{RiskLevel: domain.RiskLow}
	for _, s := range scenarios {
		if !s.IsActive {
			continue
		}
		effect := a.EffectFor(s)
		combined.NetEffect = combined.NetEffect.Add(effect.NetEffect)
		combined.MonthlyChange = combined.MonthlyChange.Add(effect.MonthlyChange)
		combined.AffectedTransactions += effect.AffectedTransactions
		combined.RiskLevel = domain.MaxRisk(combined.RiskLevel, effect.RiskLevel)
		combined.ScenarioCount++
	}
	return combined
}

// Effects returns the per-scenario effect summaries for the active set,
// preserving input order for display.
func (a *Aggregator) Effects(scenarios []domain.Scenario) []domain.ScenarioEffect {
	var out []domain.ScenarioEffect
	for _, s := range scenarios {
		if !s.IsActive {
			continue
		}
		out = append(out, domain.ScenarioEffect{
			ScenarioID:   s.ID,
			ScenarioName: s.Name,
			TemplateType: s.TemplateType.Normalize(),
			Effect:       a.EffectFor(s),
		})
	}
	return out
}

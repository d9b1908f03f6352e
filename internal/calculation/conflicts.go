package calculation

import (
	"fmt"

	"github.com/finsight/scenario-engine/internal/domain"
)

// DefaultMaxActiveScenarios is the active-scenario count above which the
// complexity conflict fires.
const DefaultMaxActiveScenarios = 3

// Detector is a stateless heuristic scan over the active-scenario set.
// It returns zero or more named, severity-tagged findings; rules are
// intentionally conservative and easy to extend.
type Detector struct {
	MaxActive int
}

// NewDetector creates a detector with the default complexity threshold.
func NewDetector() *Detector {
	return &Detector{MaxActive: DefaultMaxActiveScenarios}
}

// Detect scans the active scenarios for combinations likely to interact
// unpredictably.
func (d *Detector) Detect(scenarios []domain.Scenario) []domain.Conflict {
	maxActive := d.MaxActive
	if maxActive <= 0 {
		maxActive = DefaultMaxActiveScenarios
	}

	var active []domain.Scenario
	byTemplate := make(map[domain.TemplateType]int)
	for _, s := range scenarios {
		if !s.IsActive {
			continue
		}
		active = append(active, s)
		byTemplate[s.TemplateType.Normalize()]++
	}

	var conflicts []domain.Conflict

	if len(active) > maxActive {
		conflicts = append(conflicts, domain.Conflict{
			Name:     "scenario-complexity",
			Severity: domain.RiskMedium,
			Detail:   fmt.Sprintf("%d scenarios active at once (more than %d); combined projections become hard to interpret", len(active), maxActive),
		})
	}

	if byTemplate[domain.TemplateJobLoss] > 0 && byTemplate[domain.TemplateSalaryIncrease] > 0 {
		conflicts = append(conflicts, domain.Conflict{
			Name:     "opposing-income",
			Severity: domain.RiskMedium,
			Detail:   "a job loss and a salary increase are both active; their income assumptions contradict each other",
		})
	}

	for _, template := range domain.KnownTemplates {
		if n := byTemplate[template]; n > 1 {
			conflicts = append(conflicts, domain.Conflict{
				Name:     "duplicate-template",
				Severity: domain.RiskLow,
				Detail:   fmt.Sprintf("%d active scenarios share the %q template; their effects stack", n, template),
			})
		}
	}

	return conflicts
}

package calculation

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finsight/scenario-engine/internal/domain"
)

// captureLogger records warnings for assertions.
type captureLogger struct {
	NopLogger
	warnings []string
}

func (l *captureLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func TestComputeEffect_SalaryIncrease(t *testing.T) {
	rs := NewRuleSet()
	result := rs.ComputeEffect(domain.TemplateSalaryIncrease, map[string]any{"increaseAmount": 500})

	assert.Equal(t, "6000", result.NetEffect.String())
	assert.Equal(t, "500", result.MonthlyChange.String())
	assert.Equal(t, domain.RiskLow, result.RiskLevel)
	assert.Equal(t, 12, result.AffectedTransactions)
}

func TestComputeEffect_SalaryIncrease_CustomHorizon(t *testing.T) {
	rs := &RuleSet{HorizonMonths: 24, Logger: NopLogger{}}
	result := rs.ComputeEffect(domain.TemplateSalaryIncrease, map[string]any{"increaseAmount": "250"})
	assert.Equal(t, "6000", result.NetEffect.String())
}

func TestComputeEffect_JobLoss(t *testing.T) {
	rs := NewRuleSet()

	t.Run("always high risk", func(t *testing.T) {
		result := rs.ComputeEffect(domain.TemplateJobLoss, map[string]any{
			"lostMonthlyIncome":   4000,
			"unemploymentBenefit": 1200,
			"durationMonths":      4,
		})
		assert.Equal(t, domain.RiskHigh, result.RiskLevel)
		// -(4000-1200) * 4
		assert.Equal(t, "-11200", result.NetEffect.String())
		assert.Equal(t, "-2800", result.MonthlyChange.String())
		assert.Equal(t, 4, result.AffectedTransactions)
	})

	t.Run("duration clamped to horizon", func(t *testing.T) {
		result := rs.ComputeEffect(domain.TemplateJobLoss, map[string]any{
			"lostMonthlyIncome": 3000,
			"durationMonths":    36,
		})
		// clamped at the 12-month horizon
		assert.Equal(t, "-36000", result.NetEffect.String())
	})

	t.Run("default duration is six months", func(t *testing.T) {
		result := rs.ComputeEffect(domain.TemplateJobLoss, map[string]any{"lostMonthlyIncome": 3000})
		assert.Equal(t, "-18000", result.NetEffect.String())
	})
}

func TestComputeEffect_MajorPurchase(t *testing.T) {
	rs := NewRuleSet()

	result := rs.ComputeEffect(domain.TemplateMajorPurchase, map[string]any{
		"downPayment":    2000,
		"monthlyPayment": 300,
		"loanTermMonths": 12,
	})
	assert.Equal(t, "-5600", result.NetEffect.String())
	assert.Equal(t, "-300", result.MonthlyChange.String())
	assert.Equal(t, 13, result.AffectedTransactions)
	assert.Equal(t, domain.RiskMedium, result.RiskLevel)

	t.Run("risk scales with total cost", func(t *testing.T) {
		small := rs.ComputeEffect(domain.TemplateMajorPurchase, map[string]any{"downPayment": 600})
		assert.Equal(t, domain.RiskLow, small.RiskLevel)

		big := rs.ComputeEffect(domain.TemplateMajorPurchase, map[string]any{"downPayment": 15000})
		assert.Equal(t, domain.RiskHigh, big.RiskLevel)
	})
}

func TestComputeEffect_DebtPayoff(t *testing.T) {
	rs := NewRuleSet()

	t.Run("never positive when payment increases", func(t *testing.T) {
		testCases := []struct {
			current float64
			next    float64
			balance float64
		}{
			{200, 200, 6000},
			{200, 500, 6000},
			{0, 350, 4200},
			{100, 1000, 0},
		}
		for _, tc := range testCases {
			result := rs.ComputeEffect(domain.TemplateDebtPayoff, map[string]any{
				"currentPayment":   tc.current,
				"newPayment":       tc.next,
				"remainingBalance": tc.balance,
			})
			assert.True(t, result.NetEffect.LessThanOrEqual(decimal.Zero),
				"current=%v new=%v: got %s", tc.current, tc.next, result.NetEffect)
		}
	})

	t.Run("months derived from balance", func(t *testing.T) {
		result := rs.ComputeEffect(domain.TemplateDebtPayoff, map[string]any{
			"currentPayment":   200,
			"newPayment":       500,
			"remainingBalance": 1100,
		})
		// ceil(1100/500) = 3 months of 300 extra
		assert.Equal(t, "-900", result.NetEffect.String())
		assert.Equal(t, 3, result.AffectedTransactions)
	})
}

func TestComputeEffect_EmergencyFund(t *testing.T) {
	rs := NewRuleSet()
	result := rs.ComputeEffect(domain.TemplateEmergencyFund, map[string]any{
		"monthlyContribution": 400,
		"targetAmount":        10000,
	})
	// ceil(10000/400) = 25 months
	assert.Equal(t, "-10000", result.NetEffect.String())
	assert.Equal(t, "-400", result.MonthlyChange.String())
	assert.Equal(t, 25, result.AffectedTransactions)
	assert.Equal(t, domain.RiskLow, result.RiskLevel)
}

func TestComputeEffect_GenericAndUnknownTemplates(t *testing.T) {
	rs := NewRuleSet()

	generic := rs.ComputeEffect(domain.TemplateGeneric, map[string]any{
		"monthlyAmount":  -150,
		"durationMonths": 10,
	})
	assert.Equal(t, "-1500", generic.NetEffect.String())
	assert.Equal(t, "-150", generic.MonthlyChange.String())

	unknown := rs.ComputeEffect(domain.TemplateType("inheritance"), map[string]any{
		"monthlyAmount":  -150,
		"durationMonths": 10,
	})
	assert.Equal(t, generic, unknown, "unknown templates use the generic rule")
}

func TestComputeEffect_MissingRequiredParameter(t *testing.T) {
	logger := &captureLogger{}
	rs := NewRuleSet()
	rs.Logger = logger

	testCases := []struct {
		template domain.TemplateType
		params   map[string]any
		desc     string
	}{
		{domain.TemplateSalaryIncrease, map[string]any{}, "absent field"},
		{domain.TemplateSalaryIncrease, map[string]any{"increaseAmount": "not a number"}, "unparseable field"},
		{domain.TemplateJobLoss, nil, "nil parameter map"},
		{domain.TemplateEmergencyFund, map[string]any{"monthlyContribution": 400}, "one of two required fields"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			result := rs.ComputeEffect(tc.template, tc.params)
			assert.Equal(t, domain.ZeroEffect(), result)
		})
	}
	assert.Len(t, logger.warnings, len(testCases))
}

func TestComputeEffect_ParameterCoercion(t *testing.T) {
	rs := NewRuleSet()

	// Form inputs arrive as strings, sometimes with currency chrome.
	result := rs.ComputeEffect(domain.TemplateSalaryIncrease, map[string]any{"increaseAmount": "$1,250.50"})
	assert.Equal(t, "1250.5", result.MonthlyChange.String())
}

func TestImpactAtMonth_SalaryIncrease(t *testing.T) {
	rs := NewRuleSet()
	params := map[string]any{"increaseAmount": 500}

	for _, m := range []int{1, 6, 60} {
		assert.Equal(t, "500", rs.ImpactAtMonth(domain.TemplateSalaryIncrease, params, m).String())
	}
	assert.True(t, rs.ImpactAtMonth(domain.TemplateSalaryIncrease, params, 0).IsZero())
}

func TestImpactAtMonth_JobLossWindow(t *testing.T) {
	rs := NewRuleSet()
	params := map[string]any{"lostMonthlyIncome": 3000, "unemploymentBenefit": 800, "durationMonths": 3}

	assert.Equal(t, "-2200", rs.ImpactAtMonth(domain.TemplateJobLoss, params, 1).String())
	assert.Equal(t, "-2200", rs.ImpactAtMonth(domain.TemplateJobLoss, params, 3).String())
	assert.True(t, rs.ImpactAtMonth(domain.TemplateJobLoss, params, 4).IsZero(), "no impact past the duration")
}

func TestImpactAtMonth_MajorPurchaseTiming(t *testing.T) {
	rs := NewRuleSet()
	params := map[string]any{
		"downPayment":    2000,
		"monthlyPayment": 300,
		"loanTermMonths": 2,
		"timingMonths":   3,
	}

	assert.True(t, rs.ImpactAtMonth(domain.TemplateMajorPurchase, params, 2).IsZero(), "nothing before the purchase")
	assert.Equal(t, "-2000", rs.ImpactAtMonth(domain.TemplateMajorPurchase, params, 3).String(), "down payment at timing month")
	assert.Equal(t, "-300", rs.ImpactAtMonth(domain.TemplateMajorPurchase, params, 4).String())
	assert.Equal(t, "-300", rs.ImpactAtMonth(domain.TemplateMajorPurchase, params, 5).String())
	assert.True(t, rs.ImpactAtMonth(domain.TemplateMajorPurchase, params, 6).IsZero(), "loan paid off")
}

func TestImpactAtMonth_MalformedContributesNothing(t *testing.T) {
	logger := &captureLogger{}
	rs := NewRuleSet()
	rs.Logger = logger

	assert.True(t, rs.ImpactAtMonth(domain.TemplateJobLoss, map[string]any{}, 1).IsZero())
	assert.NotEmpty(t, logger.warnings)
}

package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finsight/scenario-engine/internal/domain"
)

// DefaultHorizonMonths is the cumulative-effect horizon when the caller
// does not specify one.
const DefaultHorizonMonths = 12

// Purchase risk thresholds on total cost (down payment plus financed total).
var (
	purchaseHighThreshold   = decimal.NewFromInt(10000)
	purchaseMediumThreshold = decimal.NewFromInt(1000)
)

// RuleSet maps a scenario's (template, parameters) pair to its numeric
// effect. Rules are pure: a malformed required parameter yields a zeroed
// result and a logged warning, never an error to the caller.
type RuleSet struct {
	HorizonMonths int
	Logger        Logger
}

// NewRuleSet creates a rule set with the default 12-month horizon.
func NewRuleSet() *RuleSet {
	return &RuleSet{HorizonMonths: DefaultHorizonMonths, Logger: NopLogger{}}
}

func (rs *RuleSet) horizon() int {
	if rs.HorizonMonths <= 0 {
		return DefaultHorizonMonths
	}
	return rs.HorizonMonths
}

// ComputeEffect computes the effect of one scenario: NetEffect is the
// cumulative impact through the horizon, MonthlyChange the steady-state
// per-month delta. Unrecognized templates fall back to the generic rule.
func (rs *RuleSet) ComputeEffect(template domain.TemplateType, params map[string]any) domain.EffectResult {
	p := newParamReader(params)

	var result domain.EffectResult
	switch template.Normalize() {
	case domain.TemplateSalaryIncrease:
		result = rs.salaryIncrease(p)
	case domain.TemplateJobLoss:
		result = rs.jobLoss(p)
	case domain.TemplateMajorPurchase:
		result = rs.majorPurchase(p)
	case domain.TemplateDebtPayoff:
		result = rs.debtPayoff(p)
	case domain.TemplateEmergencyFund:
		result = rs.emergencyFund(p)
	default:
		result = rs.generic(p)
	}

	if !p.ok() {
		rs.Logger.Warnf("scenario template %q missing required parameters %v, effect zeroed", template, p.missing)
		return domain.ZeroEffect()
	}
	return result
}

func (rs *RuleSet) salaryIncrease(p *paramReader) domain.EffectResult {
	increase := p.Required("increaseAmount")
	months := int64(rs.horizon())

	return domain.EffectResult{
		NetEffect:            increase.Mul(decimal.NewFromInt(months)),
		MonthlyChange:        increase,
		AffectedTransactions: int(months),
		RiskLevel:            domain.RiskLow,
	}
}

func (rs *RuleSet) jobLoss(p *paramReader) domain.EffectResult {
	lost := p.Required("lostMonthlyIncome")
	benefit := p.Optional("unemploymentBenefit", decimal.Zero)
	duration := p.OptionalInt("durationMonths", 6)

	months := rs.horizon()
	if duration < months {
		months = duration
	}
	if months < 0 {
		months = 0
	}
	shortfall := lost.Sub(benefit)

	return domain.EffectResult{
		NetEffect:            shortfall.Neg().Mul(decimal.NewFromInt(int64(months))),
		MonthlyChange:        shortfall.Neg(),
		AffectedTransactions: months,
		RiskLevel:            domain.RiskHigh,
	}
}

func (rs *RuleSet) majorPurchase(p *paramReader) domain.EffectResult {
	down := p.Required("downPayment")
	payment := p.Optional("monthlyPayment", decimal.Zero)
	term := p.OptionalInt("loanTermMonths", 0)

	financed := payment.Mul(decimal.NewFromInt(int64(term)))
	total := down.Add(financed)

	risk := domain.RiskLow
	switch {
	case total.GreaterThanOrEqual(purchaseHighThreshold):
		risk = domain.RiskHigh
	case total.GreaterThanOrEqual(purchaseMediumThreshold):
		risk = domain.RiskMedium
	}

	return domain.EffectResult{
		NetEffect:            total.Neg(),
		MonthlyChange:        payment.Neg(),
		AffectedTransactions: 1 + term,
		RiskLevel:            risk,
	}
}

func (rs *RuleSet) debtPayoff(p *paramReader) domain.EffectResult {
	newPayment := p.Required("newPayment")
	current := p.Optional("currentPayment", decimal.Zero)
	balance := p.Optional("remainingBalance", decimal.Zero)

	months := rs.payoffMonths(balance, newPayment)
	extra := newPayment.Sub(current)

	return domain.EffectResult{
		NetEffect:            extra.Neg().Mul(decimal.NewFromInt(int64(months))),
		MonthlyChange:        extra.Neg(),
		AffectedTransactions: months,
		RiskLevel:            domain.RiskLow,
	}
}

// payoffMonths derives months-to-payoff from the remaining balance when
// present, else assumes the effect horizon.
func (rs *RuleSet) payoffMonths(balance, payment decimal.Decimal) int {
	if balance.IsPositive() && payment.IsPositive() {
		return int(balance.Div(payment).Ceil().IntPart())
	}
	return rs.horizon()
}

func (rs *RuleSet) emergencyFund(p *paramReader) domain.EffectResult {
	contribution := p.Required("monthlyContribution")
	target := p.Required("targetAmount")

	months := 0
	if contribution.IsPositive() && target.IsPositive() {
		months = int(target.Div(contribution).Ceil().IntPart())
	}

	return domain.EffectResult{
		NetEffect:            contribution.Neg().Mul(decimal.NewFromInt(int64(months))),
		MonthlyChange:        contribution.Neg(),
		AffectedTransactions: months,
		RiskLevel:            domain.RiskLow,
	}
}

func (rs *RuleSet) generic(p *paramReader) domain.EffectResult {
	monthly := p.Optional("monthlyAmount", decimal.Zero)
	duration := p.OptionalInt("durationMonths", rs.horizon())
	if duration < 0 {
		duration = 0
	}

	net := monthly.Mul(decimal.NewFromInt(int64(duration)))
	risk := domain.RiskLow
	if net.Abs().GreaterThanOrEqual(purchaseHighThreshold) {
		risk = domain.RiskMedium
	}

	return domain.EffectResult{
		NetEffect:            net,
		MonthlyChange:        monthly,
		AffectedTransactions: duration,
		RiskLevel:            risk,
	}
}

// ImpactAtMonth is the restricted per-month view of a scenario used by the
// forward simulation: the cash-flow delta the scenario contributes in
// simulated month m (1-based). Malformed parameters contribute nothing.
func (rs *RuleSet) ImpactAtMonth(template domain.TemplateType, params map[string]any, m int) decimal.Decimal {
	if m < 1 {
		return decimal.Zero
	}
	p := newParamReader(params)

	var impact decimal.Decimal
	switch template.Normalize() {
	case domain.TemplateSalaryIncrease:
		impact = p.Required("increaseAmount")

	case domain.TemplateJobLoss:
		lost := p.Required("lostMonthlyIncome")
		benefit := p.Optional("unemploymentBenefit", decimal.Zero)
		duration := p.OptionalInt("durationMonths", 6)
		if m <= duration {
			impact = lost.Sub(benefit).Neg()
		}

	case domain.TemplateMajorPurchase:
		down := p.Required("downPayment")
		payment := p.Optional("monthlyPayment", decimal.Zero)
		term := p.OptionalInt("loanTermMonths", 0)
		timing := p.OptionalInt("timingMonths", 1)
		if timing < 1 {
			timing = 1
		}
		if m == timing {
			impact = impact.Sub(down)
		}
		if m > timing && m <= timing+term {
			impact = impact.Sub(payment)
		}

	case domain.TemplateDebtPayoff:
		newPayment := p.Required("newPayment")
		current := p.Optional("currentPayment", decimal.Zero)
		balance := p.Optional("remainingBalance", decimal.Zero)
		if m <= rs.payoffMonths(balance, newPayment) {
			impact = newPayment.Sub(current).Neg()
		}

	case domain.TemplateEmergencyFund:
		contribution := p.Required("monthlyContribution")
		target := p.Required("targetAmount")
		if contribution.IsPositive() && target.IsPositive() &&
			m <= int(target.Div(contribution).Ceil().IntPart()) {
			impact = contribution.Neg()
		}

	default:
		monthly := p.Optional("monthlyAmount", decimal.Zero)
		duration := p.OptionalInt("durationMonths", rs.horizon())
		if m <= duration {
			impact = monthly
		}
	}

	if !p.ok() {
		rs.Logger.Warnf("scenario template %q missing required parameters %v at month %d, no impact", template, p.missing, m)
		return decimal.Zero
	}
	return impact
}

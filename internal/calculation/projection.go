package calculation

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight/scenario-engine/internal/domain"
	"github.com/finsight/scenario-engine/pkg/dateutil"
	"github.com/finsight/scenario-engine/pkg/money"
)

// Projection defaults.
const (
	DefaultProjectionMonths = 12
	DefaultLookBackMonths   = 6
)

// Assumptions are the fixed and variable cash-flow inputs of the forward
// simulation. They are illustrative household defaults, overridable from
// the plan file; the projection is a best-effort chart feed, not a ledger.
type Assumptions struct {
	MonthlyIncome         decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	FixedExpenses         decimal.Decimal `yaml:"fixed_expenses" json:"fixed_expenses"`
	VariableExpenseBase   decimal.Decimal `yaml:"variable_expense_base" json:"variable_expense_base"`
	DebtMinimumPayment    decimal.Decimal `yaml:"debt_minimum_payment" json:"debt_minimum_payment"`
	ExtraDebtPayment      decimal.Decimal `yaml:"extra_debt_payment" json:"extra_debt_payment"`
	EmergencyContribution decimal.Decimal `yaml:"emergency_contribution" json:"emergency_contribution"`
	MonthlyGrowthRate     decimal.Decimal `yaml:"monthly_growth_rate" json:"monthly_growth_rate"`
	LifeEventChance       float64         `yaml:"life_event_chance" json:"life_event_chance"`
	WindfallChance        float64         `yaml:"windfall_chance" json:"windfall_chance"`
	SeasonalAmplitude     decimal.Decimal `yaml:"seasonal_amplitude" json:"seasonal_amplitude"`
}

// DefaultAssumptions returns the stock simulation inputs.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		MonthlyIncome:         decimal.NewFromInt(5200),
		FixedExpenses:         decimal.NewFromInt(3400),
		VariableExpenseBase:   decimal.NewFromInt(450),
		DebtMinimumPayment:    decimal.NewFromInt(250),
		ExtraDebtPayment:      decimal.Zero,
		EmergencyContribution: decimal.Zero,
		MonthlyGrowthRate:     decimal.NewFromFloat(0.0055),
		LifeEventChance:       0.08,
		WindfallChance:        0.03,
		SeasonalAmplitude:     decimal.NewFromInt(350),
	}
}

// Historical reconstruction constants: the walk-back assumes net worth
// improved at a small fraction of its current magnitude each month, with a
// floor so flat accounts still show movement.
var (
	historicalImprovementRate  = decimal.NewFromFloat(0.012)
	historicalImprovementFloor = decimal.NewFromInt(120)
)

// Generator builds month-indexed net-worth series: a fixed look-back of
// reconstructed history plus a forward simulation. All stochastic terms are
// drawn from a PRNG seeded per call, so a fixed Seed reproduces the series
// exactly.
type Generator struct {
	Rules          *RuleSet
	Assumptions    Assumptions
	LookBackMonths int
	Seed           int64
	Logger         Logger
}

// NewGenerator creates a projection generator with default assumptions and
// look-back. Seed zero means a fresh seed per call.
func NewGenerator(rules *RuleSet) *Generator {
	return &Generator{
		Rules:          rules,
		Assumptions:    DefaultAssumptions(),
		LookBackMonths: DefaultLookBackMonths,
		Logger:         NopLogger{},
	}
}

func (g *Generator) lookBack() int {
	if g.LookBackMonths <= 0 {
		return DefaultLookBackMonths
	}
	return g.LookBackMonths
}

// Generate produces the projection series for the account snapshot:
// lookBack historical points, one "now" point, and months simulated points,
// in ascending time order. Scenarios may be nil for the baseline series.
// A non-positive months falls back to the default horizon. An empty or
// missing account list is treated as zero net worth; a series is always
// produced.
func (g *Generator) Generate(accounts []domain.Account, months int, scenarios []domain.Scenario) []domain.ProjectionPoint {
	if months <= 0 {
		months = DefaultProjectionMonths
	}

	seed := g.Seed
	if seed == 0 {
		seed = seedFunc()
	}
	rng := rand.New(rand.NewSource(seed))

	now := dateutil.MonthStart(nowFunc())
	current := domain.NetWorth(accounts)
	lookBack := g.lookBack()

	points := make([]domain.ProjectionPoint, 0, lookBack+1+months)
	points = append(points, g.reconstructHistory(rng, now, current, lookBack)...)
	points = append(points, domain.ProjectionPoint{
		Timestamp:    now,
		NetWorth:     current,
		IsHistorical: false,
	})
	points = append(points, g.simulateForward(rng, now, current, months, accounts, scenarios)...)
	return points
}

// reconstructHistory synthesizes a plausible-looking history walking
// backward from the current net worth. It is an approximation for chart
// continuity, not a replay of actual transactions.
func (g *Generator) reconstructHistory(rng *rand.Rand, now time.Time, current decimal.Decimal, lookBack int) []domain.ProjectionPoint {
	improvement := money.Max(current.Abs().Mul(historicalImprovementRate), historicalImprovementFloor)

	points := make([]domain.ProjectionPoint, 0, lookBack)
	for back := lookBack; back >= 1; back-- {
		ts := dateutil.AddMonths(now, -back)

		value := current.Sub(improvement.Mul(decimal.NewFromInt(int64(back))))
		value = value.Add(g.seasonalTerm(ts))

		// Bounded noise so the reconstructed line wobbles like real history.
		trendNoise := decimal.NewFromFloat((rng.Float64() - 0.5) * 500)
		value = value.Add(trendNoise)
		if rng.Float64() < 0.10 {
			value = value.Sub(decimal.NewFromFloat(150 + rng.Float64()*750))
		}

		points = append(points, domain.ProjectionPoint{
			Timestamp:    ts,
			NetWorth:     money.Round(value),
			IsHistorical: true,
		})
	}
	return points
}

// simulateForward walks the monthly cash-flow model ahead of "now".
// Scenario impacts never consume PRNG draws, so a baseline run and a
// scenario run with the same seed differ only by the scenario impacts.
func (g *Generator) simulateForward(rng *rand.Rand, now time.Time, current decimal.Decimal, months int, accounts []domain.Account, scenarios []domain.Scenario) []domain.ProjectionPoint {
	a := g.Assumptions
	baseFlow := a.MonthlyIncome.Sub(a.FixedExpenses)
	remainingDebt := totalLiabilities(accounts)
	netWorth := current

	points := make([]domain.ProjectionPoint, 0, months)
	for m := 1; m <= months; m++ {
		ts := dateutil.AddMonths(now, m)

		netWorth = netWorth.Add(baseFlow)
		netWorth = netWorth.Sub(g.seasonalVariableExpenses(ts))

		// Debt balance decays linearly until exhausted; after that only
		// the baseline minimum is charged.
		service := a.DebtMinimumPayment
		if remainingDebt.IsPositive() {
			service = a.DebtMinimumPayment.Add(a.ExtraDebtPayment)
			remainingDebt = money.Max(remainingDebt.Sub(service), decimal.Zero)
		}
		netWorth = netWorth.Sub(service)
		netWorth = netWorth.Sub(a.EmergencyContribution)

		// Investment growth compounds the positive portion only.
		netWorth = netWorth.Add(money.Max(netWorth, decimal.Zero).Mul(a.MonthlyGrowthRate))

		netWorth = netWorth.Sub(g.drawLifeEventCost(rng))
		netWorth = netWorth.Add(g.drawWindfall(rng))

		for _, s := range scenarios {
			if !s.IsActive {
				continue
			}
			netWorth = netWorth.Add(g.Rules.ImpactAtMonth(s.TemplateType, s.Parameters, m))
		}

		points = append(points, domain.ProjectionPoint{
			Timestamp:    ts,
			NetWorth:     money.Round(netWorth),
			IsHistorical: false,
		})
	}
	return points
}

// seasonalTerm is a sinusoid over the calendar month modelling holiday
// spending and tax-refund season.
func (g *Generator) seasonalTerm(ts time.Time) decimal.Decimal {
	wave := math.Sin(2*math.Pi*float64(dateutil.SeasonalIndex(ts))/12 + 2*math.Pi/3)
	return g.Assumptions.SeasonalAmplitude.Mul(decimal.NewFromFloat(wave))
}

// seasonalVariableExpenses scales the variable expense base by the same
// seasonal wave, peaking in December.
func (g *Generator) seasonalVariableExpenses(ts time.Time) decimal.Decimal {
	wave := math.Sin(2*math.Pi*float64(dateutil.SeasonalIndex(ts))/12 + 2*math.Pi/3)
	factor := decimal.NewFromFloat(1 + 0.4*wave)
	return g.Assumptions.VariableExpenseBase.Mul(factor)
}

// drawLifeEventCost samples the discrete life-event probability table:
// a per-month chance of an expense in one of three severity bands.
func (g *Generator) drawLifeEventCost(rng *rand.Rand) decimal.Decimal {
	if rng.Float64() >= g.Assumptions.LifeEventChance {
		return decimal.Zero
	}
	band := rng.Float64()
	switch {
	case band < 0.6: // minor: car repair, appliance
		return decimal.NewFromFloat(100 + rng.Float64()*400)
	case band < 0.9: // moderate: medical bill, home repair
		return decimal.NewFromFloat(500 + rng.Float64()*1500)
	default: // major: roof, transmission
		return decimal.NewFromFloat(2000 + rng.Float64()*3000)
	}
}

func (g *Generator) drawWindfall(rng *rand.Rand) decimal.Decimal {
	if rng.Float64() >= g.Assumptions.WindfallChance {
		return decimal.Zero
	}
	return decimal.NewFromFloat(250 + rng.Float64()*2750)
}

func totalLiabilities(accounts []domain.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.Type.IsLiability() {
			total = total.Add(a.Balance.Abs())
		}
	}
	return total
}

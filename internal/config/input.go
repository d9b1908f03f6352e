package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finsight/scenario-engine/internal/calculation"
	"github.com/finsight/scenario-engine/internal/domain"
)

// Plan is the YAML input file: an account snapshot, the scenario set and
// optional projection assumptions.
type Plan struct {
	Accounts    []domain.Account  `yaml:"accounts"`
	Scenarios   []domain.Scenario `yaml:"scenarios"`
	Projection  ProjectionConfig  `yaml:"projection"`
	Assumptions *AssumptionsInput `yaml:"assumptions,omitempty"`
}

// ProjectionConfig configures the projection run.
type ProjectionConfig struct {
	Months   int   `yaml:"months"`
	LookBack int   `yaml:"look_back_months"`
	Seed     int64 `yaml:"seed"`
}

// AssumptionsInput overrides individual simulation assumptions; absent
// fields keep their defaults.
type AssumptionsInput struct {
	MonthlyIncome         *decimal.Decimal `yaml:"monthly_income,omitempty"`
	FixedExpenses         *decimal.Decimal `yaml:"fixed_expenses,omitempty"`
	VariableExpenseBase   *decimal.Decimal `yaml:"variable_expense_base,omitempty"`
	DebtMinimumPayment    *decimal.Decimal `yaml:"debt_minimum_payment,omitempty"`
	ExtraDebtPayment      *decimal.Decimal `yaml:"extra_debt_payment,omitempty"`
	EmergencyContribution *decimal.Decimal `yaml:"emergency_contribution,omitempty"`
	MonthlyGrowthRate     *decimal.Decimal `yaml:"monthly_growth_rate,omitempty"`
	LifeEventChance       *float64         `yaml:"life_event_chance,omitempty"`
	WindfallChance        *float64         `yaml:"windfall_chance,omitempty"`
	SeasonalAmplitude     *decimal.Decimal `yaml:"seasonal_amplitude,omitempty"`
}

// InputParser handles parsing of plan files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	ip.normalize(&plan)
	return &plan, nil
}

// ValidatePlan validates the loaded plan. An empty account list is legal
// (the projection treats it as zero net worth); structural problems are not.
func (ip *InputParser) ValidatePlan(plan *Plan) error {
	seenAccounts := make(map[string]bool)
	for i, a := range plan.Accounts {
		if a.ID == "" {
			return fmt.Errorf("account %d: id is required", i)
		}
		if seenAccounts[a.ID] {
			return fmt.Errorf("account %d: duplicate id %q", i, a.ID)
		}
		seenAccounts[a.ID] = true
		if !a.Type.Known() {
			return fmt.Errorf("account %q: unknown type %q", a.ID, a.Type)
		}
	}

	seenScenarios := make(map[string]bool)
	for i, s := range plan.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if s.ID != "" {
			if seenScenarios[s.ID] {
				return fmt.Errorf("scenario %d: duplicate id %q", i, s.ID)
			}
			seenScenarios[s.ID] = true
		}
		// Unknown template types are legal; they route to the generic rule.
	}

	if plan.Projection.Months < 0 {
		return fmt.Errorf("projection months cannot be negative")
	}
	if plan.Projection.Months > 120 {
		return fmt.Errorf("projection months must be at most 120, got %d", plan.Projection.Months)
	}
	if plan.Projection.LookBack < 0 {
		return fmt.Errorf("projection look-back cannot be negative")
	}

	if a := plan.Assumptions; a != nil {
		if a.LifeEventChance != nil && (*a.LifeEventChance < 0 || *a.LifeEventChance > 1) {
			return fmt.Errorf("life event chance must be between 0 and 1")
		}
		if a.WindfallChance != nil && (*a.WindfallChance < 0 || *a.WindfallChance > 1) {
			return fmt.Errorf("windfall chance must be between 0 and 1")
		}
		if a.MonthlyGrowthRate != nil && a.MonthlyGrowthRate.LessThan(decimal.NewFromInt(-1)) {
			return fmt.Errorf("monthly growth rate cannot be less than -100%%")
		}
	}

	return nil
}

// normalize fills derived scenario fields: ids for unnamed scenarios and
// timestamps so cache keys are stable within a run.
func (ip *InputParser) normalize(plan *Plan) {
	now := time.Now().UTC()
	for i := range plan.Scenarios {
		s := &plan.Scenarios[i]
		if s.ID == "" {
			s.ID = fmt.Sprintf("scenario-%d", i+1)
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.LastModified.IsZero() {
			s.LastModified = s.CreatedAt
		}
	}
}

// BuildAssumptions merges the plan's overrides onto the defaults.
func (p *Plan) BuildAssumptions() calculation.Assumptions {
	a := calculation.DefaultAssumptions()
	in := p.Assumptions
	if in == nil {
		return a
	}
	if in.MonthlyIncome != nil {
		a.MonthlyIncome = *in.MonthlyIncome
	}
	if in.FixedExpenses != nil {
		a.FixedExpenses = *in.FixedExpenses
	}
	if in.VariableExpenseBase != nil {
		a.VariableExpenseBase = *in.VariableExpenseBase
	}
	if in.DebtMinimumPayment != nil {
		a.DebtMinimumPayment = *in.DebtMinimumPayment
	}
	if in.ExtraDebtPayment != nil {
		a.ExtraDebtPayment = *in.ExtraDebtPayment
	}
	if in.EmergencyContribution != nil {
		a.EmergencyContribution = *in.EmergencyContribution
	}
	if in.MonthlyGrowthRate != nil {
		a.MonthlyGrowthRate = *in.MonthlyGrowthRate
	}
	if in.LifeEventChance != nil {
		a.LifeEventChance = *in.LifeEventChance
	}
	if in.WindfallChance != nil {
		a.WindfallChance = *in.WindfallChance
	}
	if in.SeasonalAmplitude != nil {
		a.SeasonalAmplitude = *in.SeasonalAmplitude
	}
	return a
}

// CreateExamplePlan creates a starter plan with a realistic account mix and
// one scenario of each common template.
func (ip *InputParser) CreateExamplePlan() *Plan {
	return &Plan{
		Accounts: []domain.Account{
			{ID: "chk-1", Name: "Everyday Checking", Type: domain.AccountChecking, Balance: decimal.NewFromFloat(2450.75)},
			{ID: "sav-1", Name: "High-Yield Savings", Type: domain.AccountSavings, Balance: decimal.NewFromInt(12000)},
			{ID: "inv-1", Name: "Index Funds", Type: domain.AccountInvestment, Balance: decimal.NewFromInt(38500)},
			{ID: "cc-1", Name: "Rewards Card", Type: domain.AccountCreditCard, Balance: decimal.NewFromFloat(-3240.10)},
			{ID: "auto-1", Name: "Car Loan", Type: domain.AccountAutoLoan, Balance: decimal.NewFromInt(-14800)},
		},
		Scenarios: []domain.Scenario{
			{
				ID:           "raise",
				Name:         "Promotion raise",
				TemplateType: domain.TemplateSalaryIncrease,
				Parameters:   map[string]any{"increaseAmount": 500},
				IsActive:     true,
			},
			{
				ID:           "new-car",
				Name:         "Replace the car",
				TemplateType: domain.TemplateMajorPurchase,
				Parameters: map[string]any{
					"downPayment":    2000,
					"monthlyPayment": 300,
					"loanTermMonths": 12,
					"timingMonths":   3,
				},
				IsActive: false,
			},
			{
				ID:           "rainy-day",
				Name:         "Build emergency fund",
				TemplateType: domain.TemplateEmergencyFund,
				Parameters: map[string]any{
					"monthlyContribution": 400,
					"targetAmount":        10000,
				},
				IsActive: false,
			},
		},
		Projection: ProjectionConfig{Months: 12, LookBack: 6},
	}
}

// WriteExamplePlan marshals the example plan to a YAML file.
func (ip *InputParser) WriteExamplePlan(filename string) error {
	data, err := yaml.Marshal(ip.CreateExamplePlan())
	if err != nil {
		return fmt.Errorf("failed to marshal example plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

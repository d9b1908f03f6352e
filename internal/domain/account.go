package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account as an asset or liability kind.
// The classification sets are fixed enumerations.
type AccountType string

const (
	AccountChecking     AccountType = "checking"
	AccountSavings      AccountType = "savings"
	AccountInvestment   AccountType = "investment"
	AccountRetirement   AccountType = "retirement"
	AccountBrokerage    AccountType = "brokerage"
	AccountVehicle      AccountType = "vehicle"
	AccountRealEstate   AccountType = "real-estate"
	AccountCreditCard   AccountType = "credit-card"
	AccountLineOfCredit AccountType = "line-of-credit"
	AccountMortgage     AccountType = "mortgage"
	AccountAutoLoan     AccountType = "auto-loan"
	AccountStudentLoan  AccountType = "student-loan"
	AccountPersonalLoan AccountType = "personal-loan"
)

var assetTypes = map[AccountType]bool{
	AccountChecking:   true,
	AccountSavings:    true,
	AccountInvestment: true,
	AccountRetirement: true,
	AccountBrokerage:  true,
	AccountVehicle:    true,
	AccountRealEstate: true,
}

var liabilityTypes = map[AccountType]bool{
	AccountCreditCard:   true,
	AccountLineOfCredit: true,
	AccountMortgage:     true,
	AccountAutoLoan:     true,
	AccountStudentLoan:  true,
	AccountPersonalLoan: true,
}

// IsAsset reports whether the account type is an asset kind.
func (t AccountType) IsAsset() bool { return assetTypes[t] }

// IsLiability reports whether the account type is a liability kind.
func (t AccountType) IsLiability() bool { return liabilityTypes[t] }

// Known reports whether the account type is in either classification set.
func (t AccountType) Known() bool { return assetTypes[t] || liabilityTypes[t] }

// Account is an immutable balance snapshot supplied per projection call.
// The engine never mutates accounts.
type Account struct {
	ID      string          `yaml:"id" json:"id"`
	Name    string          `yaml:"name" json:"name"`
	Type    AccountType     `yaml:"type" json:"type"`
	Balance decimal.Decimal `yaml:"balance" json:"balance"`
}

// NetWorth sums asset balances and subtracts absolute liability balances.
// Unknown account types contribute nothing.
func NetWorth(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		switch {
		case a.Type.IsAsset():
			total = total.Add(a.Balance)
		case a.Type.IsLiability():
			total = total.Sub(a.Balance.Abs())
		}
	}
	return total
}

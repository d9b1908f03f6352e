package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountType_Classification(t *testing.T) {
	assets := []AccountType{AccountChecking, AccountSavings, AccountInvestment, AccountRetirement, AccountBrokerage, AccountVehicle, AccountRealEstate}
	liabilities := []AccountType{AccountCreditCard, AccountLineOfCredit, AccountMortgage, AccountAutoLoan, AccountStudentLoan, AccountPersonalLoan}

	for _, a := range assets {
		assert.True(t, a.IsAsset(), "%s should be an asset", a)
		assert.False(t, a.IsLiability(), "%s should not be a liability", a)
		assert.True(t, a.Known())
	}
	for _, l := range liabilities {
		assert.True(t, l.IsLiability(), "%s should be a liability", l)
		assert.False(t, l.IsAsset(), "%s should not be an asset", l)
		assert.True(t, l.Known())
	}

	unknown := AccountType("shoebox")
	assert.False(t, unknown.Known())
	assert.False(t, unknown.IsAsset())
	assert.False(t, unknown.IsLiability())
}

func TestNetWorth(t *testing.T) {
	testCases := []struct {
		accounts []Account
		expected string
		desc     string
	}{
		{
			accounts: nil,
			expected: "0.00",
			desc:     "empty snapshot is zero net worth",
		},
		{
			accounts: []Account{
				{ID: "chk", Type: AccountChecking, Balance: decimal.NewFromFloat(29.22)},
				{ID: "cc", Type: AccountCreditCard, Balance: decimal.NewFromInt(-20361)},
			},
			expected: "-20331.78",
			desc:     "negative liability balances subtract their magnitude",
		},
		{
			accounts: []Account{
				{ID: "chk", Type: AccountChecking, Balance: decimal.NewFromInt(5000)},
				{ID: "mort", Type: AccountMortgage, Balance: decimal.NewFromInt(250000)},
			},
			expected: "-245000.00",
			desc:     "positive liability balances also subtract",
		},
		{
			accounts: []Account{
				{ID: "inv", Type: AccountInvestment, Balance: decimal.NewFromInt(1000)},
				{ID: "odd", Type: AccountType("shoebox"), Balance: decimal.NewFromInt(999)},
			},
			expected: "1000.00",
			desc:     "unknown account types contribute nothing",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, NetWorth(tc.accounts).StringFixed(2))
		})
	}
}

package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTemplateType_Normalize(t *testing.T) {
	testCases := []struct {
		in       TemplateType
		expected TemplateType
		desc     string
	}{
		{TemplateSalaryIncrease, TemplateSalaryIncrease, "known template unchanged"},
		{TemplateGeneric, TemplateGeneric, "generic unchanged"},
		{TemplateType("crypto-windfall"), TemplateGeneric, "unknown routes to generic"},
		{TemplateType(""), TemplateGeneric, "empty routes to generic"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.in.Normalize())
		})
	}
}

func TestRiskLevel_Ordering(t *testing.T) {
	assert.True(t, RiskLow < RiskMedium)
	assert.True(t, RiskMedium < RiskHigh)

	assert.Equal(t, RiskHigh, MaxRisk(RiskLow, RiskHigh))
	assert.Equal(t, RiskHigh, MaxRisk(RiskHigh, RiskLow))
	assert.Equal(t, RiskMedium, MaxRisk(RiskMedium, RiskLow))
	assert.Equal(t, RiskLow, MaxRisk(RiskLow, RiskLow))
}

func TestRiskLevel_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(RiskHigh)
	assert.NoError(t, err)
	assert.Equal(t, `"high"`, string(data))

	var r RiskLevel
	assert.NoError(t, json.Unmarshal([]byte(`"medium"`), &r))
	assert.Equal(t, RiskMedium, r)
}

func TestParseRiskLevel(t *testing.T) {
	assert.Equal(t, RiskHigh, ParseRiskLevel("high"))
	assert.Equal(t, RiskMedium, ParseRiskLevel("medium"))
	assert.Equal(t, RiskLow, ParseRiskLevel("low"))
	assert.Equal(t, RiskLow, ParseRiskLevel("whatever"))
}

func TestScenario_CacheKeyRollsOnTouch(t *testing.T) {
	s := Scenario{ID: "s1", LastModified: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	before := s.CacheKey()

	s.Touch(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	after := s.CacheKey()

	assert.NotEqual(t, before, after)
	assert.Equal(t, after, s.CacheKey(), "key is stable until the next edit")
}

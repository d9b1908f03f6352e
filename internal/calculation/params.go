package calculation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// paramReader coerces loosely typed scenario parameters (form input strings,
// YAML scalars, JSON numbers) into decimals at the engine boundary, so the
// effect rules operate on typed numbers. It records which required fields
// were missing or unparseable rather than failing.
type paramReader struct {
	params  map[string]any
	missing []string
}

func newParamReader(params map[string]any) *paramReader {
	return &paramReader{params: params}
}

// ok reports whether every required field so far was present and numeric.
func (p *paramReader) ok() bool { return len(p.missing) == 0 }

// coerce converts a single loosely typed value to a decimal.
func coerce(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case float64:
		return decimal.NewFromFloat(val), true
	case float32:
		return decimal.NewFromFloat32(val), true
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(val, "$"))
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// Required returns the named parameter, recording it as missing when absent
// or unparseable.
func (p *paramReader) Required(key string) decimal.Decimal {
	v, exists := p.params[key]
	if !exists {
		p.missing = append(p.missing, key)
		return decimal.Zero
	}
	d, ok := coerce(v)
	if !ok {
		p.missing = append(p.missing, key)
		return decimal.Zero
	}
	return d
}

// Optional returns the named parameter, or def when absent or unparseable.
// Missing optional fields never fail a rule.
func (p *paramReader) Optional(key string, def decimal.Decimal) decimal.Decimal {
	v, exists := p.params[key]
	if !exists {
		return def
	}
	d, ok := coerce(v)
	if !ok {
		return def
	}
	return d
}

// OptionalInt returns the named parameter as an int, or def.
func (p *paramReader) OptionalInt(key string, def int) int {
	v, exists := p.params[key]
	if !exists {
		return def
	}
	if i, ok := v.(int); ok {
		return i
	}
	d, ok := coerce(v)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(d.Truncate(0).String())
	if err != nil {
		return def
	}
	return i
}

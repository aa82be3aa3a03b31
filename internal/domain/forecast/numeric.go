package forecast

import (
	"math"
	"strconv"
	"strings"
)

// Defaults applied when a provider numeric field is absent or not a number.
const (
	DefaultPoP         = 0
	DefaultTemperature = 25
)

// ParseIntOr converts provider numeric text to an integer, returning def for
// blank or non-numeric input. Decimal text is truncated toward zero.
func ParseIntOr(raw string, def int) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return def
	}
	if v, err := strconv.Atoi(trimmed); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return def
}

// PoPPercent is the period's precipitation probability, DefaultPoP when unknown.
func (p Period) PoPPercent() int {
	return ParseIntOr(p.PoP, DefaultPoP)
}

// HighC is the period's high temperature, DefaultTemperature when unknown.
func (p Period) HighC() int {
	return ParseIntOr(p.HighTemp, DefaultTemperature)
}

// LowC is the period's low temperature, DefaultTemperature when unknown.
func (p Period) LowC() int {
	return ParseIntOr(p.LowTemp, DefaultTemperature)
}

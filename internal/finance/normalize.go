// Package finance turns raw disclosure line items into ratios, chart series
// and a formatted statement table.
package finance

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cast"
)

// ParseAmount converts a loosely formatted amount into a float. Thousands
// separators and whitespace are ignored. Missing or malformed input yields 0;
// it never fails.
func ParseAmount(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		return parseAmountString(x)
	case []byte:
		return parseAmountString(string(x))
	case json.Number:
		return parseAmountString(string(x))
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return finite(f)
}

func parseAmountString(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// round1 rounds half away from zero to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

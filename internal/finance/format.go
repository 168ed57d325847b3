package finance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	trillion       = 1e12
	hundredMillion = 1e8
)

// Unit labels used by FormatAmount
const (
	UnitTrillion       = "조원"
	UnitHundredMillion = "억원"
	UnitWon            = "원"
)

// FormatAmount renders an amount in won using the trillion, hundred-million
// or plain tier. Thresholds are inclusive.
func FormatAmount(amount float64) string {
	switch {
	case amount >= trillion:
		return strconv.FormatFloat(round1(amount/trillion), 'f', 1, 64) + UnitTrillion
	case amount >= hundredMillion:
		return strconv.FormatFloat(math.Round(amount/hundredMillion), 'f', 0, 64) + UnitHundredMillion
	default:
		p := message.NewPrinter(language.English)
		return p.Sprintf("%.0f", math.Round(amount)) + UnitWon
	}
}

// FormatValue formats v when it is numeric and otherwise returns its string
// form unchanged. Numeric strings are parsed strictly: "1,000" is not a number here.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return x
		}
		return FormatAmount(f)
	case nil, bool:
		return fmt.Sprint(x)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return FormatAmount(f)
}

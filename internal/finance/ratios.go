package finance

import (
	"fmt"
	"math"

	"github.com/Dan9191/corp-finance-service/internal/models"
)

// ComputeRatios derives profitability, leverage and liquidity ratios from the
// selected scope. A ratio is left out when its denominator is not positive
// or the quotient does not fit in a float64.
// The returned set is always usable; a non-nil error only reports that the
// computation stopped early and the set is partial.
func ComputeRatios(st *Statement) (ratios models.RatioSet, err error) {
	defer recoverInto(&err, "ratio")

	revenue := st.Account(Revenue).Current
	operatingProfit := st.Account(OperatingProfit).Current
	netIncome := st.Account(NetIncome).Current
	totalAssets := st.Account(TotalAssets).Current
	totalLiabilities := st.Account(TotalLiabilities).Current
	totalEquity := st.Account(TotalEquity).Current
	currentAssets := st.Account(CurrentAssets).Current
	currentLiabilities := st.Account(CurrentLiabilities).Current

	if revenue > 0 {
		ratios.OperatingMargin = percent(operatingProfit, revenue)
		ratios.NetMargin = percent(netIncome, revenue)
	}
	if totalEquity > 0 {
		ratios.DebtRatio = percent(totalLiabilities, totalEquity)
		ratios.ROE = percent(netIncome, totalEquity)
	}
	if totalAssets > 0 {
		ratios.ROA = percent(netIncome, totalAssets)
		ratios.EquityRatio = percent(totalEquity, totalAssets)
	}
	if currentLiabilities > 0 {
		ratios.CurrentRatio = percent(currentAssets, currentLiabilities)
	}

	ratios.RevenueFormatted = FormatAmount(revenue)
	ratios.OperatingProfitFormatted = FormatAmount(operatingProfit)
	ratios.NetIncomeFormatted = FormatAmount(netIncome)
	ratios.TotalAssetsFormatted = FormatAmount(totalAssets)
	ratios.TotalLiabilitiesFormatted = FormatAmount(totalLiabilities)
	ratios.TotalEquityFormatted = FormatAmount(totalEquity)

	return ratios, nil
}

func percent(num, denom float64) *float64 {
	v := round1(num / denom * 100)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// recoverInto converts a panic in a builder into an error so callers keep the
// partial result.
func recoverInto(err *error, what string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s computation aborted: %v", what, r)
	}
}

package finance

import "github.com/Dan9191/corp-finance-service/internal/models"

// Period labels, oldest first
var periodLabels = []string{"전전기", "전기", "당기"}

// BuildCharts assembles the balance composition, revenue trend and profit
// trend charts in trillion-won scale. Like ComputeRatios, the result is
// always usable and a non-nil error marks it as partial.
func BuildCharts(st *Statement) (charts models.ChartData, err error) {
	defer recoverInto(&err, "chart")

	assets := st.Account(TotalAssets)
	liabilities := st.Account(TotalLiabilities)
	equity := st.Account(TotalEquity)
	charts.Balance = &models.SeriesChart{
		Labels: []string{TotalAssets.String(), TotalLiabilities.String(), TotalEquity.String()},
		Data:   []float64{toTrillion(assets.Current), toTrillion(liabilities.Current), toTrillion(equity.Current)},
	}

	charts.RevenueTrend = &models.SeriesChart{
		Labels: labels(),
		Data:   trend(st.Account(Revenue)),
	}

	charts.ProfitTrend = &models.ProfitChart{
		Labels:          labels(),
		OperatingProfit: trend(st.Account(OperatingProfit)),
		NetIncome:       trend(st.Account(NetIncome)),
	}

	return charts, nil
}

func trend(t Triplet) []float64 {
	return []float64{toTrillion(t.Prior2), toTrillion(t.Prior), toTrillion(t.Current)}
}

func labels() []string {
	return append([]string(nil), periodLabels...)
}

func toTrillion(amount float64) float64 {
	return finite(round1(amount / trillion))
}

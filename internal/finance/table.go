package finance

import "github.com/Dan9191/corp-finance-service/internal/models"

var tableAccounts = map[Account]bool{
	Revenue:          true,
	OperatingProfit:  true,
	NetIncome:        true,
	TotalAssets:      true,
	TotalLiabilities: true,
	TotalEquity:      true,
}

// BuildTable selects the key accounts of the selected scope, in source
// order, with every period formatted for display.
func BuildTable(st *Statement) []models.TableRow {
	rows := make([]models.TableRow, 0, len(tableAccounts))
	for _, item := range st.Items() {
		a, ok := ParseAccount(item.AccountName)
		if !ok || !tableAccounts[a] {
			continue
		}
		rows = append(rows, models.TableRow{
			AccountName:     a.String(),
			ThstrmAmount:    FormatAmount(ParseAmount(item.ThstrmAmount)),
			FrmtrmAmount:    FormatAmount(ParseAmount(item.FrmtrmAmount)),
			BfefrmtrmAmount: FormatAmount(ParseAmount(item.BfefrmtrmAmount)),
		})
	}
	return rows
}

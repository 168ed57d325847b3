package models

// LineItem represents one accounting entry returned by the disclosure API.
// Amount fields are kept as the raw strings the API sends.
type LineItem struct {
	RceptNo         string `json:"rcept_no,omitempty"`
	BsnsYear        string `json:"bsns_year,omitempty"`
	StockCode       string `json:"stock_code,omitempty"`
	ReprtCode       string `json:"reprt_code,omitempty"`
	AccountName     string `json:"account_nm"`
	FsDiv           string `json:"fs_div"`
	FsName          string `json:"fs_nm,omitempty"`
	SjDiv           string `json:"sj_div"`
	SjName          string `json:"sj_nm,omitempty"`
	ThstrmName      string `json:"thstrm_nm,omitempty"`
	ThstrmDate      string `json:"thstrm_dt,omitempty"`
	ThstrmAmount    string `json:"thstrm_amount"`
	FrmtrmName      string `json:"frmtrm_nm,omitempty"`
	FrmtrmDate      string `json:"frmtrm_dt,omitempty"`
	FrmtrmAmount    string `json:"frmtrm_amount"`
	BfefrmtrmName   string `json:"bfefrmtrm_nm,omitempty"`
	BfefrmtrmDate   string `json:"bfefrmtrm_dt,omitempty"`
	BfefrmtrmAmount string `json:"bfefrmtrm_amount"`
	Ord             string `json:"ord,omitempty"`
	Currency        string `json:"currency,omitempty"`
}

// RatioSet holds derived financial ratios. Ratio fields are nil when their
// denominator guard failed; formatted amounts are always present.
type RatioSet struct {
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	NetMargin       *float64 `json:"net_margin,omitempty"`
	DebtRatio       *float64 `json:"debt_ratio,omitempty"`
	ROE             *float64 `json:"roe,omitempty"`
	ROA             *float64 `json:"roa,omitempty"`
	EquityRatio     *float64 `json:"equity_ratio,omitempty"`
	CurrentRatio    *float64 `json:"current_ratio,omitempty"`

	RevenueFormatted          string `json:"revenue_formatted,omitempty"`
	OperatingProfitFormatted  string `json:"operating_profit_formatted,omitempty"`
	NetIncomeFormatted        string `json:"net_income_formatted,omitempty"`
	TotalAssetsFormatted      string `json:"total_assets_formatted,omitempty"`
	TotalLiabilitiesFormatted string `json:"total_liabilities_formatted,omitempty"`
	TotalEquityFormatted      string `json:"total_equity_formatted,omitempty"`
}

// SeriesChart is a labelled single-series chart
type SeriesChart struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// ProfitChart carries operating profit and net income over the same labels
type ProfitChart struct {
	Labels          []string  `json:"labels"`
	OperatingProfit []float64 `json:"operating_profit"`
	NetIncome       []float64 `json:"net_income"`
}

// ChartData holds the chart payloads; a nil member was not built.
type ChartData struct {
	Balance      *SeriesChart `json:"balance,omitempty"`
	RevenueTrend *SeriesChart `json:"revenue_trend,omitempty"`
	ProfitTrend  *ProfitChart `json:"profit_trend,omitempty"`
}

// TableRow represents one formatted row of the statement table
type TableRow struct {
	AccountName     string `json:"account_nm"`
	ThstrmAmount    string `json:"thstrm_amount"`
	FrmtrmAmount    string `json:"frmtrm_amount"`
	BfefrmtrmAmount string `json:"bfefrmtrm_amount"`
}

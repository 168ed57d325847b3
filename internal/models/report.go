package models

import "time"

// Summary statuses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// FinancialSummary is the assembled response for one company/year/report query
type FinancialSummary struct {
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	Company    *Company   `json:"company,omitempty"`
	Year       string     `json:"year"`
	ReportType string     `json:"report_type"`
	Scope      string     `json:"scope,omitempty"`
	Ratios     RatioSet   `json:"financial_ratios"`
	Charts     ChartData  `json:"chart_data"`
	Table      []TableRow `json:"table_data"`
	RawData    []LineItem `json:"raw_data"`
}

// Narration statuses
const (
	ReportSuccess  = "success"
	ReportError    = "error"
	ReportDisabled = "disabled"
)

// Report is the outcome of a narration request
type Report struct {
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	Text        string    `json:"report,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NarratedReport is the response for the narrated report endpoint
type NarratedReport struct {
	Report
	Company    *Company `json:"company,omitempty"`
	Year       string   `json:"year"`
	ReportType string   `json:"report_type"`
	Ratios     RatioSet `json:"financial_ratios"`
}

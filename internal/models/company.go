package models

import "strings"

// Company represents a registered company from the corp-code registry
type Company struct {
	CorpCode    string `json:"corp_code" db:"corp_code"`
	CorpName    string `json:"corp_name" db:"corp_name"`
	CorpNameEng string `json:"corp_name_eng" db:"corp_name_eng"`
	StockCode   string `json:"stock_code" db:"stock_code"`
	ModifyDate  string `json:"modify_date" db:"modify_date"`
	// Industry and EstablishedDate are not part of the registry dump; they stay
	// empty unless another source fills them in.
	Industry        string `json:"industry,omitempty" db:"-"`
	EstablishedDate string `json:"established_date,omitempty" db:"-"`
}

// IsListed reports whether the company has a non-blank ticker.
func (c *Company) IsListed() bool {
	return strings.TrimSpace(c.StockCode) != ""
}

// CompanyPage represents one page of a company listing
type CompanyPage struct {
	Companies  []Company `json:"companies"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	TotalPages int       `json:"total_pages"`
}

// RecentUpdate represents a recently modified registry entry
type RecentUpdate struct {
	CorpName   string `json:"corp_name" db:"corp_name"`
	ModifyDate string `json:"modify_date" db:"modify_date"`
}

// ListedSample represents a listed company in the stats sample
type ListedSample struct {
	CorpName  string `json:"corp_name" db:"corp_name"`
	StockCode string `json:"stock_code" db:"stock_code"`
}

// Stats represents aggregate registry statistics
type Stats struct {
	TotalCompanies    int            `json:"total_companies"`
	ListedCompanies   int            `json:"listed_companies"`
	UnlistedCompanies int            `json:"unlisted_companies"`
	RecentUpdates     []RecentUpdate `json:"recent_updates"`
	SampleListed      []ListedSample `json:"sample_listed"`
}

package finance

import (
	"strings"

	"github.com/Dan9191/corp-finance-service/internal/models"
)

// Scope identifies which statement set a line item belongs to
type Scope string

const (
	// Consolidated statements include subsidiaries
	Consolidated Scope = "CFS"
	// Standalone statements cover the parent entity only
	Standalone Scope = "OFS"
)

// Section identifies the statement section of a line item
type Section string

const (
	BalanceSheet    Section = "BS"
	IncomeStatement Section = "IS"
)

// Triplet holds the amounts of one account for the current and two prior periods
type Triplet struct {
	Current float64
	Prior   float64
	Prior2  float64
}

// Account is a recognized account identifier
type Account int

const (
	Revenue Account = iota + 1
	OperatingProfit
	NetIncome
	TotalAssets
	TotalLiabilities
	TotalEquity
	CurrentAssets
	CurrentLiabilities
)

type accountInfo struct {
	name    string
	section Section
}

var accounts = map[Account]accountInfo{
	Revenue:            {"매출액", IncomeStatement},
	OperatingProfit:    {"영업이익", IncomeStatement},
	NetIncome:          {"당기순이익", IncomeStatement},
	TotalAssets:        {"자산총계", BalanceSheet},
	TotalLiabilities:   {"부채총계", BalanceSheet},
	TotalEquity:        {"자본총계", BalanceSheet},
	CurrentAssets:      {"유동자산", BalanceSheet},
	CurrentLiabilities: {"유동부채", BalanceSheet},
}

var accountsByName = func() map[string]Account {
	m := make(map[string]Account, len(accounts))
	for id, info := range accounts {
		m[info.name] = id
	}
	return m
}()

// String returns the display name the disclosure API uses for the account.
func (a Account) String() string {
	return accounts[a].name
}

// Section returns the statement section the account is reported in.
func (a Account) Section() Section {
	return accounts[a].section
}

// ParseAccount maps an upstream account label to a recognized account.
func ParseAccount(name string) (Account, bool) {
	a, ok := accountsByName[strings.TrimSpace(name)]
	return a, ok
}

type bucketKey struct {
	scope   Scope
	section Section
}

// Statement is an indexed view over the line items of one
// company/year/report query.
type Statement struct {
	scope   Scope
	buckets map[bucketKey]map[string]models.LineItem
	items   []models.LineItem
}

// Index partitions line items by scope and section. Consolidated items are
// used when any exist, otherwise the standalone set; scopes are never mixed
// per account. Within a bucket the first occurrence of an account name wins.
func Index(items []models.LineItem) *Statement {
	st := &Statement{
		scope:   Standalone,
		buckets: make(map[bucketKey]map[string]models.LineItem),
	}

	for _, item := range items {
		scope, ok := parseScope(item.FsDiv)
		if !ok {
			continue
		}
		if scope == Consolidated {
			st.scope = Consolidated
		}

		section, ok := parseSection(item.SjDiv)
		if !ok {
			continue
		}
		key := bucketKey{scope, section}
		bucket, exists := st.buckets[key]
		if !exists {
			bucket = make(map[string]models.LineItem)
			st.buckets[key] = bucket
		}
		name := strings.TrimSpace(item.AccountName)
		if _, dup := bucket[name]; !dup {
			bucket[name] = item
		}
	}

	for _, item := range items {
		if scope, ok := parseScope(item.FsDiv); ok && scope == st.scope {
			st.items = append(st.items, item)
		}
	}

	return st
}

// Scope returns the scope selected for the whole request.
func (st *Statement) Scope() Scope {
	if st == nil {
		return Standalone
	}
	return st.scope
}

// Items returns the selected-scope line items in source order.
func (st *Statement) Items() []models.LineItem {
	if st == nil {
		return nil
	}
	return st.items
}

// Lookup returns the amounts of an account in the selected scope.
func (st *Statement) Lookup(section Section, name string) Triplet {
	return st.LookupIn(st.Scope(), section, name)
}

// LookupIn returns the amounts of an account in an explicit scope. Unknown
// accounts yield a zero triplet, indistinguishable from reported zeros.
func (st *Statement) LookupIn(scope Scope, section Section, name string) Triplet {
	if st == nil {
		return Triplet{}
	}
	item, ok := st.buckets[bucketKey{scope, section}][strings.TrimSpace(name)]
	if !ok {
		return Triplet{}
	}
	return Triplet{
		Current: ParseAmount(item.ThstrmAmount),
		Prior:   ParseAmount(item.FrmtrmAmount),
		Prior2:  ParseAmount(item.BfefrmtrmAmount),
	}
}

// Account returns the amounts of a recognized account in the selected scope.
func (st *Statement) Account(a Account) Triplet {
	return st.Lookup(a.Section(), a.String())
}

func parseScope(s string) (Scope, bool) {
	switch Scope(strings.ToUpper(strings.TrimSpace(s))) {
	case Consolidated:
		return Consolidated, true
	case Standalone:
		return Standalone, true
	}
	return "", false
}

func parseSection(s string) (Section, bool) {
	switch Section(strings.ToUpper(strings.TrimSpace(s))) {
	case BalanceSheet:
		return BalanceSheet, true
	case IncomeStatement:
		return IncomeStatement, true
	}
	return "", false
}

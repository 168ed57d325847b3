package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/corp-finance-service/internal/config"
	"github.com/Dan9191/corp-finance-service/internal/finance"
	"github.com/Dan9191/corp-finance-service/internal/integrations/dart"
	"github.com/Dan9191/corp-finance-service/internal/models"
	"github.com/Dan9191/corp-finance-service/internal/narrator"
	"github.com/Dan9191/corp-finance-service/internal/repository"
	"github.com/sirupsen/logrus"
)

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrUnlisted           = errors.New("financial data is only available for listed companies")
	ErrInvalidYear        = errors.New("year must be a four digit number")
	ErrInvalidReportType  = errors.New("unsupported report type")
	ErrStatementsDisabled = errors.New("financial statements are unavailable: no disclosure API key is configured")
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
	rawDataLimit   = 10
)

// CompanyStore is the read side of the company registry
type CompanyStore interface {
	GetCompany(ctx context.Context, corpCode string) (*models.Company, error)
	ListCompanies(ctx context.Context, search string, page, perPage int) (*models.CompanyPage, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// StatementSource fetches raw statement line items
type StatementSource interface {
	Enabled() bool
	FetchStatements(ctx context.Context, corpCode, year, reportCode string) ([]models.LineItem, error)
}

// Narrator writes prose reports from computed ratios
type Narrator interface {
	Enabled() bool
	Narrate(ctx context.Context, company *models.Company, ratios models.RatioSet) models.Report
}

// Service handles business logic
type Service struct {
	repo       CompanyStore
	statements StatementSource
	narrator   Narrator
	log        *logrus.Logger
	config     *config.Config
}

// NewService initializes a new service
func NewService(repo CompanyStore, statements StatementSource, narrator Narrator, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		statements: statements,
		narrator:   narrator,
		log:        log,
		config:     cfg,
	}
}

// ListCompanies returns one page of the registry. Out-of-range paging
// arguments are clamped rather than rejected.
func (s *Service) ListCompanies(ctx context.Context, search string, page, perPage int) (*models.CompanyPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	result, err := s.repo.ListCompanies(ctx, search, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return result, nil
}

// GetCompany looks up one company by its corp code
func (s *Service) GetCompany(ctx context.Context, corpCode string) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, corpCode)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// Stats returns registry aggregates
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// FinancialSummary fetches statements for a listed company and assembles
// ratios, charts and the table subset. Upstream failures are reported in the
// summary itself with empty payloads; only precondition failures are errors.
func (s *Service) FinancialSummary(ctx context.Context, corpCode, year, reportType string) (*models.FinancialSummary, error) {
	company, year, reportType, err := s.prepare(ctx, corpCode, year, reportType)
	if err != nil {
		return nil, err
	}
	if !s.statementsEnabled() {
		return nil, ErrStatementsDisabled
	}

	summary := &models.FinancialSummary{
		Status:     models.StatusOK,
		Company:    company,
		Year:       year,
		ReportType: reportType,
		Table:      []models.TableRow{},
		RawData:    []models.LineItem{},
	}

	items, err := s.statements.FetchStatements(ctx, corpCode, year, reportType)
	if err != nil {
		s.log.Warnf("Statement fetch failed for %s (%s/%s): %v", corpCode, year, reportType, err)
		summary.Status = models.StatusError
		summary.Error = dart.Describe(err)
		return summary, nil
	}

	st := finance.Index(items)
	summary.Scope = string(st.Scope())

	if summary.Ratios, err = finance.ComputeRatios(st); err != nil {
		s.log.Errorf("Ratios for %s are partial: %v", corpCode, err)
	}
	if summary.Charts, err = finance.BuildCharts(st); err != nil {
		s.log.Errorf("Charts for %s are partial: %v", corpCode, err)
	}
	summary.Table = finance.BuildTable(st)

	// raw data is the upstream list as received, both scopes included
	raw := items
	if len(raw) > rawDataLimit {
		raw = raw[:rawDataLimit]
	}
	summary.RawData = append(summary.RawData, raw...)

	s.log.Infof("Financial summary built for %s (%s/%s, %d items)", company.CorpName, year, reportType, len(items))
	return summary, nil
}

// NarratedReport computes ratios for a listed company and has the narrator
// describe them. Narration failures are carried in the report status.
func (s *Service) NarratedReport(ctx context.Context, corpCode, year, reportType string) (*models.NarratedReport, error) {
	company, year, reportType, err := s.prepare(ctx, corpCode, year, reportType)
	if err != nil {
		return nil, err
	}

	result := &models.NarratedReport{
		Company:    company,
		Year:       year,
		ReportType: reportType,
	}

	if s.narrator == nil || !s.narrator.Enabled() {
		result.Report = models.Report{
			Status:      models.ReportDisabled,
			Message:     narrator.MsgDisabled,
			GeneratedAt: time.Now(),
		}
		return result, nil
	}
	if !s.statementsEnabled() {
		return nil, ErrStatementsDisabled
	}

	items, err := s.statements.FetchStatements(ctx, corpCode, year, reportType)
	if err != nil {
		s.log.Warnf("Statement fetch failed for %s (%s/%s): %v", corpCode, year, reportType, err)
		result.Report = models.Report{
			Status:      models.ReportError,
			Message:     dart.Describe(err),
			GeneratedAt: time.Now(),
		}
		return result, nil
	}

	if result.Ratios, err = finance.ComputeRatios(finance.Index(items)); err != nil {
		s.log.Errorf("Ratios for %s are partial: %v", corpCode, err)
	}
	result.Report = s.narrator.Narrate(ctx, company, result.Ratios)
	return result, nil
}

// prepare validates the query and applies the unlisted gate. Nothing remote
// is called before it succeeds.
func (s *Service) prepare(ctx context.Context, corpCode, year, reportType string) (*models.Company, string, string, error) {
	if year == "" {
		year = s.config.DefaultYear
	}
	if reportType == "" {
		reportType = s.config.DefaultReportType
	}
	if !validYear(year) {
		return nil, "", "", ErrInvalidYear
	}
	if !dart.ValidReportCode(reportType) {
		return nil, "", "", ErrInvalidReportType
	}

	company, err := s.GetCompany(ctx, corpCode)
	if err != nil {
		return nil, "", "", err
	}
	if !company.IsListed() {
		return nil, "", "", ErrUnlisted
	}
	return company, year, reportType, nil
}

func (s *Service) statementsEnabled() bool {
	return s.statements != nil && s.statements.Enabled()
}

func validYear(year string) bool {
	if len(year) != 4 {
		return false
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

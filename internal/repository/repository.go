package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/corp-finance-service/internal/models"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no company matches the requested code
var ErrNotFound = errors.New("company not found")

const (
	recentUpdatesLimit = 10
	sampleListedLimit  = 10
)

const companyColumns = `corp_code, COALESCE(corp_name, '') AS corp_name,
		COALESCE(corp_name_eng, '') AS corp_name_eng, COALESCE(stock_code, '') AS stock_code,
		COALESCE(modify_date, '') AS modify_date`

const listedCondition = `LENGTH(TRIM(COALESCE(stock_code, ''))) > 0`

var schemas = map[string]string{
	"sqlite3": `
		CREATE TABLE IF NOT EXISTS companies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			corp_code TEXT UNIQUE NOT NULL,
			corp_name TEXT,
			corp_name_eng TEXT,
			stock_code TEXT,
			modify_date TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	"postgres": `
		CREATE TABLE IF NOT EXISTS companies (
			id SERIAL PRIMARY KEY,
			corp_code TEXT UNIQUE NOT NULL,
			corp_name TEXT,
			corp_name_eng TEXT,
			stock_code TEXT,
			modify_date TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
}

// Repository provides company registry operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the companies table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema, ok := schemas[r.db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", r.db.DriverName())
	}
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_companies_corp_name ON companies (corp_name)`); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// GetCompany retrieves a company by its exact corp code
func (r *Repository) GetCompany(ctx context.Context, corpCode string) (*models.Company, error) {
	company := &models.Company{}
	query := r.db.Rebind(`SELECT ` + companyColumns + ` FROM companies WHERE corp_code = ?`)
	err := r.db.GetContext(ctx, company, query, corpCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

// ListCompanies returns one page of companies ordered by name. A non-empty
// search term matches name, corp code or ticker as a substring.
func (r *Repository) ListCompanies(ctx context.Context, search string, page, perPage int) (*models.CompanyPage, error) {
	where := ""
	var args []interface{}
	if search != "" {
		term := "%" + search + "%"
		where = ` WHERE corp_name LIKE ? OR corp_code LIKE ? OR stock_code LIKE ?`
		args = append(args, term, term, term)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM companies`+where), args...); err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}

	companies := []models.Company{}
	query := r.db.Rebind(`SELECT ` + companyColumns + ` FROM companies` + where + ` ORDER BY corp_name LIMIT ? OFFSET ?`)
	pageArgs := append(args, perPage, (page-1)*perPage)
	if err := r.db.SelectContext(ctx, &companies, query, pageArgs...); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	return &models.CompanyPage{
		Companies:  companies,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}

// Stats aggregates registry counts, recent modifications and a listed sample
func (r *Repository) Stats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{
		RecentUpdates: []models.RecentUpdate{},
		SampleListed:  []models.ListedSample{},
	}

	if err := r.db.GetContext(ctx, &stats.TotalCompanies, `SELECT COUNT(*) FROM companies`); err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.ListedCompanies, `SELECT COUNT(*) FROM companies WHERE `+listedCondition); err != nil {
		return nil, fmt.Errorf("failed to count listed companies: %w", err)
	}
	stats.UnlistedCompanies = stats.TotalCompanies - stats.ListedCompanies

	recent := r.db.Rebind(`
		SELECT COALESCE(corp_name, '') AS corp_name, modify_date
		FROM companies
		WHERE modify_date IS NOT NULL AND modify_date <> ''
		ORDER BY modify_date DESC
		LIMIT ?`)
	if err := r.db.SelectContext(ctx, &stats.RecentUpdates, recent, recentUpdatesLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent updates: %w", err)
	}

	sample := r.db.Rebind(`
		SELECT COALESCE(corp_name, '') AS corp_name, TRIM(stock_code) AS stock_code
		FROM companies
		WHERE ` + listedCondition + `
		ORDER BY corp_name
		LIMIT ?`)
	if err := r.db.SelectContext(ctx, &stats.SampleListed, sample, sampleListedLimit); err != nil {
		return nil, fmt.Errorf("failed to load listed sample: %w", err)
	}

	return stats, nil
}

// UpsertCompanies inserts or replaces companies keyed by corp code in one transaction
func (r *Repository) UpsertCompanies(ctx context.Context, companies []models.Company) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		INSERT INTO companies (corp_code, corp_name, corp_name_eng, stock_code, modify_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (corp_code) DO UPDATE SET
			corp_name = excluded.corp_name,
			corp_name_eng = excluded.corp_name_eng,
			stock_code = excluded.stock_code,
			modify_date = excluded.modify_date`))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, c := range companies {
		if _, err := stmt.ExecContext(ctx, c.CorpCode, c.CorpName, c.CorpNameEng, c.StockCode, c.ModifyDate); err != nil {
			return 0, fmt.Errorf("failed to upsert company %s: %w", c.CorpCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit companies: %w", err)
	}
	return len(companies), nil
}

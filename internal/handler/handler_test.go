package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/corp-finance-service/internal/models"
	"github.com/Dan9191/corp-finance-service/internal/service"
)

type fakeService struct {
	err      error
	lastArgs []any
}

func (f *fakeService) ListCompanies(ctx context.Context, search string, page, perPage int) (*models.CompanyPage, error) {
	f.lastArgs = []any{search, page, perPage}
	if f.err != nil {
		return nil, f.err
	}
	return &models.CompanyPage{
		Companies: []models.Company{{CorpCode: "00126380", CorpName: "삼성전자"}},
		Total:     1, Page: page, PerPage: perPage, TotalPages: 1,
	}, nil
}

func (f *fakeService) GetCompany(ctx context.Context, corpCode string) (*models.Company, error) {
	f.lastArgs = []any{corpCode}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Company{CorpCode: corpCode, CorpName: "삼성전자", StockCode: "005930"}, nil
}

func (f *fakeService) Stats(ctx context.Context) (*models.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Stats{TotalCompanies: 3, ListedCompanies: 2, UnlistedCompanies: 1}, nil
}

func (f *fakeService) FinancialSummary(ctx context.Context, corpCode, year, reportType string) (*models.FinancialSummary, error) {
	f.lastArgs = []any{corpCode, year, reportType}
	if f.err != nil {
		return nil, f.err
	}
	return &models.FinancialSummary{
		Status:     models.StatusError,
		Error:      "no data found for the requested company and period",
		Year:       year,
		ReportType: reportType,
		Table:      []models.TableRow{},
		RawData:    []models.LineItem{},
	}, nil
}

func (f *fakeService) NarratedReport(ctx context.Context, corpCode, year, reportType string) (*models.NarratedReport, error) {
	f.lastArgs = []any{corpCode, year, reportType}
	if f.err != nil {
		return nil, f.err
	}
	return &models.NarratedReport{Report: models.Report{Status: models.ReportDisabled, Message: "disabled"}}, nil
}

func newRouter(svc Service) *mux.Router {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	r := mux.NewRouter()
	NewHandler(svc, log).Register(r)
	return r
}

func do(t *testing.T, r http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := do(t, newRouter(&fakeService{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestListCompanies(t *testing.T) {
	svc := &fakeService{}
	rec, body := do(t, newRouter(svc), "/api/companies?page=2&per_page=5&search=%EC%82%BC%EC%84%B1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"삼성", 2, 5}, svc.lastArgs)
	assert.EqualValues(t, 1, body["total"])

	rec, _ = do(t, newRouter(svc), "/api/companies")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"", 1, 20}, svc.lastArgs)
}

func TestListCompanies_BadQuery(t *testing.T) {
	rec, body := do(t, newRouter(&fakeService{}), "/api/companies?page=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", body["status"])

	rec, _ = do(t, newRouter(&fakeService{}), "/api/companies?per_page=1.5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCompany(t *testing.T) {
	svc := &fakeService{}
	rec, body := do(t, newRouter(svc), "/api/company/00126380")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "삼성전자", body["corp_name"])
	assert.Equal(t, []any{"00126380"}, svc.lastArgs)
}

func TestStats(t *testing.T) {
	rec, body := do(t, newRouter(&fakeService{}), "/api/stats")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, body["total_companies"])
}

func TestFinancialSummary_UpstreamErrorIsOK(t *testing.T) {
	svc := &fakeService{}
	rec, body := do(t, newRouter(svc), "/api/financial/00126380?year=2022&report_type=11012")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"00126380", "2022", "11012"}, svc.lastArgs)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], "no data")
	assert.Equal(t, []any{}, body["table_data"])
}

func TestNarratedReport(t *testing.T) {
	svc := &fakeService{}
	rec, body := do(t, newRouter(svc), "/api/financial/00126380/ai_report")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"00126380", "", ""}, svc.lastArgs)
	assert.Equal(t, "disabled", body["status"])
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{service.ErrCompanyNotFound, http.StatusNotFound},
		{service.ErrUnlisted, http.StatusBadRequest},
		{service.ErrInvalidYear, http.StatusBadRequest},
		{service.ErrInvalidReportType, http.StatusBadRequest},
		{service.ErrStatementsDisabled, http.StatusServiceUnavailable},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			router := newRouter(&fakeService{err: tt.err})
			for _, target := range []string{"/api/company/1", "/api/financial/1", "/api/financial/1/ai_report"} {
				rec, body := do(t, router, target)
				assert.Equal(t, tt.code, rec.Code, target)
				assert.Equal(t, "error", body["status"])
				assert.NotContains(t, body["error"], "connection refused")
			}
		})
	}
}

func TestRespondJSON_UnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, map[string]float64{"operating_margin": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"error","error":"failed to encode response"}`, rec.Body.String())
}

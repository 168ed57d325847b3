package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dan9191/corp-finance-service/internal/models"
	"github.com/Dan9191/corp-finance-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Service is the business layer the handlers delegate to
type Service interface {
	ListCompanies(ctx context.Context, search string, page, perPage int) (*models.CompanyPage, error)
	GetCompany(ctx context.Context, corpCode string) (*models.Company, error)
	Stats(ctx context.Context) (*models.Stats, error)
	FinancialSummary(ctx context.Context, corpCode, year, reportType string) (*models.FinancialSummary, error)
	NarratedReport(ctx context.Context, corpCode, year, reportType string) (*models.NarratedReport, error)
}

type Handler struct {
	svc Service
	log *logrus.Logger
}

func NewHandler(svc Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts every route on the router
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/companies", h.ListCompanies).Methods(http.MethodGet)
	api.HandleFunc("/company/{corp_code}", h.GetCompany).Methods(http.MethodGet)
	api.HandleFunc("/stats", h.Stats).Methods(http.MethodGet)
	api.HandleFunc("/financial/{corp_code}", h.FinancialSummary).Methods(http.MethodGet)
	api.HandleFunc("/financial/{corp_code}/ai_report", h.NarratedReport).Methods(http.MethodGet)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListCompanies handles the paged company search
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := queryInt(q.Get("page"), 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	perPage, err := queryInt(q.Get("per_page"), 20)
	if err != nil {
		respondError(w, http.StatusBadRequest, "per_page must be an integer")
		return
	}

	result, err := h.svc.ListCompanies(r.Context(), strings.TrimSpace(q.Get("search")), page, perPage)
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetCompany returns one company record
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.svc.GetCompany(r.Context(), mux.Vars(r)["corp_code"])
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, company)
}

// Stats returns registry aggregates
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// FinancialSummary returns ratios, charts and table data for a listed company
func (h *Handler) FinancialSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summary, err := h.svc.FinancialSummary(r.Context(), mux.Vars(r)["corp_code"], q.Get("year"), q.Get("report_type"))
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// NarratedReport returns the generated prose report for a listed company
func (h *Handler) NarratedReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.svc.NarratedReport(r.Context(), mux.Vars(r)["corp_code"], q.Get("year"), q.Get("report_type"))
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// fail maps service errors onto status codes. Unexpected errors are logged
// and hidden behind a generic message.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnlisted),
		errors.Is(err, service.ErrInvalidYear),
		errors.Is(err, service.ErrInvalidReportType):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStatementsDisabled):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.log.Errorf("Request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func queryInt(value string, defaultVal int) (int, error) {
	if value == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(value)
}

// respondJSON encodes before writing the header so an unencodable payload
// still produces a JSON error instead of an empty 200.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"status": "error", "error": "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"status": "error", "error": message})
}

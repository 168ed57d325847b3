// Package dart is a client for the Open DART disclosure API.
package dart

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dan9191/corp-finance-service/internal/config"
	"github.com/Dan9191/corp-finance-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Report codes accepted by the single-company statement endpoint
const (
	ReportAnnual   = "11011"
	ReportHalfYear = "11012"
	ReportQ1       = "11013"
	ReportQ3       = "11014"
)

// ValidReportCode reports whether code names a supported filing type
func ValidReportCode(code string) bool {
	switch code {
	case ReportAnnual, ReportHalfYear, ReportQ1, ReportQ3:
		return true
	}
	return false
}

// Client handles integration with the disclosure API
type Client struct {
	baseURL string
	apiKey  string
	enabled bool
	client  *http.Client
	log     *logrus.Logger
}

type statementResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	List    []models.LineItem `json:"list"`
}

// NewClient initializes a new disclosure API client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.DARTURL, "/"),
		apiKey:  cfg.DARTAPIKey,
		enabled: cfg.DARTEnabled(),
		client: &http.Client{
			Timeout: cfg.DARTTimeout,
		},
		log: log,
	}
}

// Enabled reports whether an API key was configured
func (c *Client) Enabled() bool {
	return c.enabled
}

// get issues a GET request against an API endpoint with the key attached
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	params.Set("crtfc_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("DART %s response: %d bytes", endpoint, len(body))
	return body, nil
}

// FetchStatements retrieves the key accounts of one company, fiscal year and report type
func (c *Client) FetchStatements(ctx context.Context, corpCode, year, reportCode string) ([]models.LineItem, error) {
	params := url.Values{}
	params.Set("corp_code", corpCode)
	params.Set("bsns_year", year)
	params.Set("reprt_code", reportCode)

	body, err := c.get(ctx, "fnlttSinglAcnt.json", params)
	if err != nil {
		return nil, err
	}

	var resp statementResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.Status != StatusOK {
		c.log.Warnf("DART status %s for %s/%s/%s: %s", resp.Status, corpCode, year, reportCode, resp.Message)
		return nil, &StatusError{Code: resp.Status, Message: resp.Message}
	}
	if len(resp.List) == 0 {
		return nil, &StatusError{Code: StatusNoData, Message: "empty statement list"}
	}

	c.log.Infof("Retrieved %d line items for %s/%s/%s", len(resp.List), corpCode, year, reportCode)
	return resp.List, nil
}

// DownloadCorpCodes fetches the corp-code registry archive and returns the contained XML
func (c *Client) DownloadCorpCodes(ctx context.Context) ([]byte, error) {
	body, err := c.get(ctx, "corpCode.xml", url.Values{})
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		// Errors come back as a JSON or XML status document instead of an archive.
		var resp statementResponse
		if jsonErr := json.Unmarshal(body, &resp); jsonErr == nil && resp.Status != "" {
			return nil, &StatusError{Code: resp.Status, Message: resp.Message}
		}
		return nil, fmt.Errorf("failed to open corp code archive: %w", err)
	}

	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, "CORPCODE.xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("CORPCODE.xml not found in archive")
}

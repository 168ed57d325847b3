package dart

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Status codes returned by the disclosure API
const (
	StatusOK              = "000"
	StatusUnregisteredKey = "010"
	StatusDisabledKey     = "011"
	StatusIPNotAllowed    = "012"
	StatusNoData          = "013"
	StatusRateLimited     = "020"
	StatusBadField        = "100"
	StatusMaintenance     = "800"
	StatusUnclassified    = "900"
)

var statusDescriptions = map[string]string{
	StatusUnregisteredKey: "the disclosure API key is not registered",
	StatusDisabledKey:     "the disclosure API key is disabled",
	StatusIPNotAllowed:    "this server's IP address is not allowed by the disclosure API",
	StatusNoData:          "no data found for the requested company and period",
	StatusRateLimited:     "the disclosure API request limit was exceeded",
	StatusBadField:        "the disclosure API rejected a request field",
	StatusMaintenance:     "the disclosure API is under maintenance",
	StatusUnclassified:    "the disclosure API returned an unclassified error",
}

// StatusError is a non-success status reported by the disclosure API
type StatusError struct {
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dart status %s: %s", e.Code, e.Message)
}

// Description returns a short human-readable classification of the status.
func (e *StatusError) Description() string {
	if d, ok := statusDescriptions[e.Code]; ok {
		return d
	}
	return statusDescriptions[StatusUnclassified]
}

// Describe maps any fetch error to a short message safe to show to clients.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Description()
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "the disclosure API did not respond in time"
	}
	return "could not fetch financial statements from the disclosure API"
}

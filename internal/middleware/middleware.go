package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Logger logs one entry per request with its status and latency
func Logger(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			entry := log.WithFields(logrus.Fields{
				"StatusCode": rec.status,
				"Latency":    time.Since(start).Milliseconds(),
				"IP":         r.RemoteAddr,
				"Method":     r.Method,
				"Path":       r.URL.Path,
				"Bytes":      rec.bytes,
			})

			switch {
			case rec.status >= http.StatusInternalServerError:
				entry.Error("server error")
			case rec.status >= http.StatusBadRequest:
				entry.Warn("client error")
			default:
				entry.Info("success")
			}
		})
	}
}

// Recover converts a handler panic into a 500 JSON error
func Recover(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					log.WithFields(logrus.Fields{
						"Method": r.Method,
						"Path":   r.URL.Path,
					}).Errorf("panic: %v", v)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

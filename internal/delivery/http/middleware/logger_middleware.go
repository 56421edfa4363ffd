package middleware

import (
	"net/http"
	"runtime"
	"time"

	"hospital-scheduling/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request and tags it with a request id.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rid := r.Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, rid)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			entry := log.WithFields(logrus.Fields{
				"request_id": rid,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"latency_ms": time.Since(start).Milliseconds(),
				"remote_ip":  r.RemoteAddr,
			})
			if rec.status >= http.StatusInternalServerError {
				entry.Error("request")
				return
			}
			entry.Info("request")
		})
	}
}

// Recovery turns a handler panic into a 500 and logs the stack.
func Recovery(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					var stack [4096]byte
					n := runtime.Stack(stack[:], false)
					log.WithFields(logrus.Fields{
						"request_id": w.Header().Get(RequestIDHeader),
						"panic":      p,
						"stack":      string(stack[:n]),
					}).Error("panic recovered")

					response.InternalServerError(w, "Something went wrong, please try again")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

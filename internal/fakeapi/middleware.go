package fakeapi

import (
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.Debug("fake api request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		var injected *failure
		if len(s.failures) > 0 {
			injected = &s.failures[0]
			s.failures = s.failures[1:]
		}
		s.mu.Unlock()

		if injected != nil {
			writeError(w, injected.status, injected.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

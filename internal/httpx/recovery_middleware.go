package httpx

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a panic into a 500 unless a response was already
// started. Install it inside AccessLogMiddleware so the status is recorded.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered request_id=%s error=%v stack=%s", RequestIDFrom(r), err, debug.Stack())

				if rw, ok := w.(*statusRecorder); ok && rw.wroteHeader {
					return
				}
				JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

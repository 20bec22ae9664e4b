package middleware

import "net/http"

// DefaultMaxBodySize caps request bodies at 1 MiB; no endpoint accepts
// payloads anywhere near that.
const DefaultMaxBodySize = 1 << 20

// RequestSizeLimit creates middleware that limits the maximum request body
// size.
func RequestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	"github.com/kbukum/whisper-asr-mcp/util"
)

// DefaultMaxBodySize fits a base64-encoded file of the default media cap.
const DefaultMaxBodySize = "700MB"

// BodySizeLimit restricts request bodies to maxSize ("700MB", "512KB").
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, util.ParseSize(DefaultMaxBodySize, 0))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > size {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"time"
)

// timeoutBody mirrors the error envelope; http.TimeoutHandler only accepts a
// fixed string.
const timeoutBody = `{"resultCode":5,"message":"request timed out"}`

func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = 30 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, limit, timeoutBody)
	}
}

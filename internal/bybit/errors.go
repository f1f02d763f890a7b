package bybit

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Transient v5 retCodes: request expired/timestamp drift, rate limits, and
// internal server errors. Everything else is treated as a caller problem.
var transientRetCodes = map[int64]bool{
	10002: true, // request expired (timestamp outside recv window)
	10006: true, // rate limit exceeded
	10016: true, // internal server error
	10018: true, // IP rate limit exceeded
}

// Error is a non-zero exchange response: either an HTTP-level failure or a
// retCode != 0 envelope. RetMsg carries the upstream message verbatim.
type Error struct {
	Status  int
	RetCode int64
	RetMsg  string
}

func (e *Error) Error() string {
	if e.RetCode != 0 {
		return fmt.Sprintf("bybit: retCode %d: %s", e.RetCode, e.RetMsg)
	}
	return fmt.Sprintf("bybit: http %d: %s", e.Status, e.RetMsg)
}

// Transient reports whether retrying the same request could plausibly
// succeed: rate limits, server-side errors, and timeout statuses.
func (e *Error) Transient() bool {
	if e.Status == 408 || e.Status == 429 || e.Status >= 500 {
		return true
	}
	return transientRetCodes[e.RetCode]
}

// Retryable classifies any error coming out of the client. True only for
// transient exchange responses, network timeouts, and deadline expiry.
// The caller decides whether to actually retry; the client never does.
func Retryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

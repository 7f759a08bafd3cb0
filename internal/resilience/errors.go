package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// IsTransient reports whether an error is safe to retry: network timeouts,
// connection failures, and the rate-limit/overload responses the
// transcription and completion APIs return under load.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// String heuristics for wrapped errors surfaced by the SDK clients.
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"429",
		"rate limit",
		"too many requests",
		"overloaded",
		"500",
		"502",
		"503",
		"internal server error",
		"server_error",
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

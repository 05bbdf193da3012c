package retry

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	"storycast/internal/provider"
)

// transientTypes are provider error types that flag a server-side failure.
var transientTypes = map[string]bool{
	"server_error":     true,
	"rate_limit_error": true,
	"overloaded_error": true,
	"timeout":          true,
	"api_error":        true,
}

// IsRetryable classifies err as a transient provider failure. Unclassified
// errors are not retried so unknown failures surface immediately.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var perr *provider.Error
	if errors.As(err, &perr) {
		switch {
		case perr.Status == http.StatusTooManyRequests:
			return true
		case perr.Status >= 500 && perr.Status < 600:
			return true
		case perr.Status >= 400 && perr.Status < 500:
			return false
		case perr.Code == provider.CodeConnReset, perr.Code == provider.CodeTimeout:
			return true
		case transientTypes[perr.Type]:
			return true
		}
	}

	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// LogObserver logs one line per retry attempt.
func LogObserver(logger *slog.Logger) Observer {
	return func(ev Event) {
		switch ev.Type {
		case EventRetry:
			logger.Warn("provider call failed, retrying",
				"operation", ev.Operation,
				"attempt", ev.Attempt,
				"max_retries", ev.MaxRetries,
				"error", ev.Message,
				"delay", ev.Delay,
			)
		case EventExhausted:
			logger.Error("provider call retries exhausted",
				"operation", ev.Operation,
				"max_retries", ev.MaxRetries,
				"error", ev.Message,
			)
		}
	}
}

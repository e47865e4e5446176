package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var ErrRateLimit = errors.New("rate limit")

// IsRateLimit reports whether err was caused by a rate limit and when the
// limit resets.
func IsRateLimit(err error) (time.Time, bool) {
	if !errors.Is(err, ErrRateLimit) {
		return time.Time{}, false
	}

	_, resetAt, found := strings.Cut(err.Error(), ":")
	if !found {
		return time.Time{}, false
	}

	resetAtInt, err := strconv.ParseInt(resetAt, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.UnixMilli(resetAtInt), true
}

func wrapRateLimit(resetAt time.Time) error {
	return fmt.Errorf("%w:%d", ErrRateLimit, resetAt.UnixMilli())
}

// APIError is a non-2xx answer of the service.
type APIError struct {
	Status   int
	Code     int
	Message  string
	Method   string
	Endpoint string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s %s: %d %s (code %d)", e.Method, e.Endpoint, e.Status, e.Message, e.Code)
	}

	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Endpoint, e.Status, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

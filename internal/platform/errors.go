package platform

import (
	"errors"
	"fmt"
)

// ErrRateLimited is returned when the local bucket for a route is
// exhausted. The call is not retried; the next qualifying event will
// naturally re-trigger it.
var ErrRateLimited = errors.New("rate limited")

// APIError is a non-2xx response from the moderation API. Permission
// failures are distinguishable from transient ones so callers can word
// monitor diagnostics accordingly.
type APIError struct {
	Route  string
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: status %d", e.Route, e.Status)
}

// PermissionDenied reports whether the failure is a permission problem
// rather than a transient fault.
func (e *APIError) PermissionDenied() bool {
	return e.Status == 401 || e.Status == 403
}

// IsPermissionDenied reports whether err is an APIError caused by missing
// permissions.
func IsPermissionDenied(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.PermissionDenied()
}

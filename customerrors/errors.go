package customerrors

import (
	"errors"
	"fmt"
)

var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UpstreamError marks a failed World Bank call. Code is the indicator code
// being fetched when the failure happened. Status is set for non-2xx
// responses; Err is set for network-level failures (connect error, timeout).
type UpstreamError struct {
	Code   string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("world bank request for %s failed: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("world bank returned status %d for %s", e.Status, e.Code)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

package httpclient

import "fmt"

// ConfigurationError reports invalid configuration input: a malformed master
// or proxy URL, or certificate material that does not parse. Construction
// aborts and no partial client is returned.
type ConfigurationError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("httpclient: %s: %v", e.Reason, e.Err)
	}
	return "httpclient: " + e.Reason
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// TLSUnavailableError reports that the platform cannot provide TLS at all
// (the system trust store is unreadable). There is no safe way to talk to the
// API server in this state: callers must treat it as fatal rather than fall
// back to an unverified connection.
type TLSUnavailableError struct {
	Err error
}

// Error implements the error interface.
func (e *TLSUnavailableError) Error() string {
	return fmt.Sprintf("httpclient: TLS is unavailable on this platform: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *TLSUnavailableError) Unwrap() error { return e.Err }

// Fatal marks the error as unrecoverable.
func (e *TLSUnavailableError) Fatal() bool { return true }

// newConfigError builds a *ConfigurationError with an optional cause.
func newConfigError(reason string, err error) error {
	return &ConfigurationError{Reason: reason, Err: err}
}

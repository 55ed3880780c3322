package gate

import "fmt"

// AuthError reports rejected credentials or a malformed identity response.
// It is fatal to the current operation; the caller decides whether to
// prompt for new credentials.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: status %d: %s", e.Status, e.Body)
}

// RequestError reports a non-auth failure from the reservation service: any
// status >= 400 remaining after the single re-authentication retry, or a
// transport-level failure (Status 0, Err set). The core never retries
// beyond that.
type RequestError struct {
	Status int
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed: status %d: %s", e.Status, e.Body)
}

func (e *RequestError) Unwrap() error { return e.Err }

package ai

import "fmt"

// RequestError covers transport-level cross-extraction failures: connection
// errors, timeouts, auth rejections and non-200 statuses. It never aborts a
// batch, only the affected document's cross-check.
type RequestError struct {
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ai request failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("ai request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// MalformedResponseError means the endpoint answered but its payload could
// not be parsed into the expected structure. Kept distinct from RequestError
// so callers can tell network trouble from model misbehavior.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	raw := e.Raw
	if len(raw) > 200 {
		raw = raw[:200] + "..."
	}
	return fmt.Sprintf("ai response malformed: %v (raw: %s)", e.Err, raw)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

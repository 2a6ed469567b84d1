package wordpress

import "fmt"

// Op names the client operation that failed.
type Op string

const (
	OpUploadMedia Op = "upload media"
	OpSetAltText  Op = "set alt text"
	OpCreatePost  Op = "create post"
)

// RequestError wraps a failed WordPress REST call. Either StatusCode/Body is
// set (the server answered with an error) or Message/Cause is set (the
// request never completed or the response could not be decoded).
type RequestError struct {
	Op         Op
	StatusCode int
	Body       string
	Message    string
	Cause      error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("wordpress: %s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	if e.Cause != nil {
		return fmt.Sprintf("wordpress: %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("wordpress: %s: %s", e.Op, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

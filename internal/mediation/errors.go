package mediation

import "errors"

var (
	// ErrTransport covers network, auth, quota and provider failures.
	ErrTransport = errors.New("generative endpoint failed")
	// ErrMalformedResponse means the reply was not the expected JSON document.
	ErrMalformedResponse = errors.New("malformed model response")
)

// FailureKind labels err for metrics and logs.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "internal"
	}
}

package source

import "errors"

// ErrUnauthorized marks a fetch the origin rejected for missing or bad
// credentials. It is surfaced to the user as an actionable message,
// distinct from generic transport failures.
var ErrUnauthorized = errors.New("unauthorized: this source requires a valid access token")

// FailureMessage turns a fetch error into the per-source errorMessage the
// presentation layer shows.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnauthorized) {
		return ErrUnauthorized.Error()
	}
	return err.Error()
}

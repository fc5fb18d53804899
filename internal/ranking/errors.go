package ranking

import "errors"

// FetchError is returned for every failed fetch. Message is the fixed
// localized text safe to show a user; Err keeps the cause for logs.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// UserMessage extracts the user-facing text from err. Errors that are not a
// *FetchError yield fallback.
func UserMessage(err error, fallback string) string {
	var fe *FetchError
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return fallback
}

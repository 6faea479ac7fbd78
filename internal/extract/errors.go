package extract

import (
	"errors"
	"fmt"
)

// Kind discriminates extraction failures so callers can react differently
// to an outage, a rejected credential, or a bad response. No failure is
// ever coerced into a default candidate.
type Kind string

const (
	// KindUnavailable covers a misconfigured backend (missing credential),
	// transport errors, and non-auth server failures.
	KindUnavailable Kind = "service_unavailable"
	// KindAuth means the credential was rejected.
	KindAuth Kind = "auth_failure"
	// KindRateLimited means the caller should back off and retry.
	KindRateLimited Kind = "rate_limited"
	// KindMalformed means the response body could not be parsed.
	KindMalformed Kind = "malformed_response"
	// KindMissingTitle means the response lacked the required title field.
	KindMissingTitle Kind = "missing_title"
	// KindCanceled means the caller canceled the outstanding call.
	KindCanceled Kind = "canceled"
)

// Error is an extraction failure with a classified kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %s: %v", e.Msg, e.Err)
	}
	return "extract: " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err, or "" when err is not an
// extraction error.
func KindOf(err error) Kind {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ""
}

// UserMessage renders a failure kind as the human-readable message shown to
// the user. Unknown kinds get a generic line.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindUnavailable:
		return "The assistant service is unavailable right now. Your message was not lost, try again."
	case KindAuth:
		return "The assistant credential was rejected. Check the configured API key."
	case KindRateLimited:
		return "Too many requests. Wait a moment and try again."
	case KindMalformed:
		return "The assistant returned something unreadable. Try rephrasing."
	case KindMissingTitle:
		return "I couldn't work out a title for that. Try rephrasing."
	case KindCanceled:
		return "Request canceled."
	}
	return "Something went wrong processing that message."
}

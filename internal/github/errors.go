package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v60/github"
)

// FailureKind classifies a failed API call. Callers branch on the kind, not
// on message strings.
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureNotFound: the addressed entity does not exist (HTTP 404).
	FailureNotFound
	// FailureTransient: rate limiting, 5xx, or a network-level error; the
	// call may succeed on retry.
	FailureTransient
	// FailureFatal: any other API rejection or a malformed response.
	FailureFatal
)

// Classify maps an error from any operation in this package to a FailureKind.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return FailureTransient
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch {
		case respErr.Response.StatusCode == http.StatusNotFound:
			return FailureNotFound
		case respErr.Response.StatusCode >= 500:
			return FailureTransient
		default:
			return FailureFatal
		}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return FailureTransient
	}
	return FailureFatal
}

// ErrorMessage extracts an operator-facing message: the API body's message
// field when present, "No response" for an error body with no usable
// message, "Unknown error" for a JSON syntax failure surfaced directly.
// Note the client library discards error bodies it cannot parse and leaves
// the message empty, so an unparsable API body also reports "No response".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		if respErr.Message != "" {
			return respErr.Message
		}
		return "No response"
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "Unknown error"
	}
	return err.Error()
}

// TeamNotFoundError is returned when a team name resolves to no slug.
type TeamNotFoundError struct {
	Organization string
	Name         string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team %q not found in organization %q", e.Name, e.Organization)
}

// IsTeamNotFound checks whether an error is a failed team resolution.
func IsTeamNotFound(err error) bool {
	var notFound *TeamNotFoundError
	return errors.As(err, &notFound)
}

// EmailInputError is returned when a username argument is an email address.
// It is an input-validation failure; no API call was made.
type EmailInputError struct {
	Input string
}

func (e *EmailInputError) Error() string {
	return fmt.Sprintf("%q looks like an email address; the GitHub username is required", e.Input)
}

// IsEmailInput checks whether an error is an email-shaped username rejection.
func IsEmailInput(err error) bool {
	var emailErr *EmailInputError
	return errors.As(err, &emailErr)
}

// retryTransient retries fn on transient failures with a rate-limit-aware
// backoff.
func retryTransient(ctx context.Context, fn func() error) error {
	const maxRetries = 3
	backoff := 200 * time.Millisecond
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if Classify(err) != FailureTransient || attempt == maxRetries {
			return err
		}
		wait := backoff
		if rateWait, ok := rateLimitWait(err); ok {
			wait = rateWait
		}
		if wait > 2*time.Second {
			wait = 2 * time.Second
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil
}

func rateLimitWait(err error) (time.Duration, bool) {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		wait := time.Until(rateErr.Rate.Reset.Time)
		if wait < 0 {
			wait = 0
		}
		return wait, true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return abuseErr.GetRetryAfter(), true
	}
	return 0, false
}

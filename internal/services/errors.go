package services

import (
	"errors"
	"fmt"
)

const (
	msgMatchFailed  = "Something went wrong. Please try again."
	msgNotifyFailed = "Failed to extract and send email."
	msgSendFailed   = "Failed to send email"
)

var ErrNoEmailFound = errors.New("No email found in the resume")

// StatusError is a non-2xx answer from an external service.
type StatusError struct {
	Prefix     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", e.Prefix, e.StatusCode)
}

// SendError is a 2xx answer from /send-email that did not report success.
type SendError struct {
	Message string
}

func (e *SendError) Error() string {
	return e.Message
}

var userFacing = []error{
	ErrMissingDescription,
	ErrMissingResume,
	ErrWrongType,
	ErrNoResumeForNotify,
	ErrNoEmailFound,
}

// UserMessage returns the single message shown for a failed flow. Known
// validation, status and semantic errors speak for themselves; anything
// else (network failures, malformed JSON) collapses to fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}

	var sendErr *SendError
	if errors.As(err, &sendErr) {
		return sendErr.Error()
	}

	for _, known := range userFacing {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return fallback
}

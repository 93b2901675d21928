package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks a network failure: no response was reachable.
	ErrUnavailable = errors.New("server unavailable")

	// ErrEmptySelection is the local validation failure for a stamp job
	// submitted without files. It never reaches the network.
	ErrEmptySelection = errors.New("Please add images or a .zip")
)

// StatusError is a non-2xx HTTP response. Message is the response body text,
// or the HTTP status phrase when the body was empty.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// NewStatusError builds a StatusError from a status code and raw body text.
func NewStatusError(code int, body string) *StatusError {
	msg := body
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &StatusError{Code: code, Message: msg}
}

// UserMessage extracts the text to surface in a notice for err.
func UserMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return ErrUnavailable.Error()
	}
	return err.Error()
}

// wrapTransport normalizes a transport-level failure into ErrUnavailable.
func wrapTransport(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}

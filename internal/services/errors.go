package services

import (
	"errors"
	"fmt"
)

// ErrNoFileSelected is returned when an upload is requested with nothing selected
var ErrNoFileSelected = &UserInputError{Message: "Please select an image first."}

// UserInputError means the user has to act before the request can be made
type UserInputError struct {
	Message string
}

func (e *UserInputError) Error() string {
	return e.Message
}

// ApplicationError carries the message from the server's error payload
type ApplicationError struct {
	StatusCode int
	Message    string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("upscaling service error (status %d): %s", e.StatusCode, e.Message)
}

// TransportError covers network failures, unexpected statuses and
// malformed responses.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusMessage converts an upload error into the text shown on the status line
func StatusMessage(err error) string {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return "Error: " + appErr.Message
	}
	var inputErr *UserInputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	return "Failed to connect to server."
}

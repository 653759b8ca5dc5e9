package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Spring-Mustache/translate-srt/pkg/log"
)

type ErrorType int

const (
	// ErrValidation: no subtitle selected or parsing yielded zero entries.
	// The run never starts.
	ErrValidation ErrorType = iota
	// ErrEncoding: media read/transcode failure, before any batch is sent.
	ErrEncoding
	// ErrRequest: the translation call failed (network, quota, server).
	ErrRequest
	// ErrMalformedResponse: response body missing or not parseable per schema.
	ErrMalformedResponse
	ErrFileWrite
	ErrConfig
	ErrUnknown
)

// RunError is the typed error carried out of a failed run. All pipeline
// error types are terminal: no automatic retry, no batch skipping.
type RunError struct {
	Type    ErrorType
	Message string
	Context map[string]any
	Cause   error
}

func NewError(errorType ErrorType, message string) *RunError {
	return &RunError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

func NewErrorWithCause(errorType ErrorType, message string, cause error) *RunError {
	return &RunError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
		Cause:   cause,
	}
}

func (e *RunError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] %s", e.Type.String(), e.Message))

	if len(e.Context) > 0 {
		var ctxParts []string
		for k, v := range e.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context: %s", strings.Join(ctxParts, ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}

	return strings.Join(parts, " | ")
}

func (e *RunError) Unwrap() error {
	return e.Cause
}

func (e *RunError) WithContext(key string, value any) *RunError {
	e.Context[key] = value
	return e
}

func (t ErrorType) String() string {
	switch t {
	case ErrValidation:
		return "Validation"
	case ErrEncoding:
		return "Encoding"
	case ErrRequest:
		return "Request"
	case ErrMalformedResponse:
		return "MalformedResponse"
	case ErrFileWrite:
		return "FileWrite"
	case ErrConfig:
		return "Config"
	default:
		return "Unknown"
	}
}

func IsErrorType(err error, errorType ErrorType) bool {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Type == errorType
	}
	return false
}

func WrapError(err error, errorType ErrorType, message string) *RunError {
	return NewErrorWithCause(errorType, message, err)
}

// Advice returns operator guidance for a failed run.
func Advice(err *RunError) string {
	switch err.Type {
	case ErrValidation:
		return "Select a subtitle file and verify it contains at least one well-formed SRT cue"
	case ErrEncoding:
		return "Check that the video file exists, is readable, and is not corrupted"
	case ErrRequest:
		return "Check the API key, network connectivity, and the translation service status"
	case ErrMalformedResponse:
		return "The service returned an unexpected payload; retry the run or try a smaller batch size"
	case ErrFileWrite:
		return "Ensure the output directory exists and has write permissions"
	case ErrConfig:
		return "Check that configuration files or environment variables are set correctly"
	default:
		return "Review detailed error information and check relevant configuration and files"
	}
}

// HandleError logs a failed run with advice and reports whether the error
// carried a run-level type.
func HandleError(err error) bool {
	var runErr *RunError
	if !errors.As(err, &runErr) {
		log.Error("Unknown Error: %v", err)
		return false
	}

	log.Error("Error Detail: %v\n advice: %s", err, Advice(runErr))
	return true
}

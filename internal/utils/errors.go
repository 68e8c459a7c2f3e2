package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidVideoURL   ErrorCode = "INVALID_VIDEO_URL"
	ErrorCodeFormatNotFound    ErrorCode = "FORMAT_NOT_FOUND"
	ErrorCodeExtractorError    ErrorCode = "EXTRACTOR_ERROR"
	ErrorCodeTranscodeFailed   ErrorCode = "TRANSCODE_FAILED"
	ErrorCodeCacheError        ErrorCode = "CACHE_ERROR"
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeValidationError   ErrorCode = "VALIDATION_ERROR"
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// AppError is the error shape every endpoint responds with. Message is the
// user-facing "error" string; Detail optionally carries the underlying
// collaborator message.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"error"`
	Detail     string    `json:"message,omitempty"`
	StatusCode int       `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Common error constructors
func NewValidationError(message string) *AppError {
	return NewError(ErrorCodeValidationError, message, http.StatusBadRequest)
}

func NewInvalidURLError(input string) *AppError {
	err := NewError(
		ErrorCodeInvalidVideoURL,
		"Invalid YouTube URL or video ID",
		http.StatusBadRequest,
	)
	err.Detail = fmt.Sprintf("could not extract a video ID from %q", input)
	return err
}

func NewFormatNotFoundError(quality string) *AppError {
	return NewError(
		ErrorCodeFormatNotFound,
		fmt.Sprintf("No stream format available for quality %s", quality),
		http.StatusNotFound,
	)
}

func NewExtractorError(err error) *AppError {
	appErr := NewError(
		ErrorCodeExtractorError,
		"Failed to fetch video data",
		http.StatusInternalServerError,
	)
	if err != nil {
		appErr.Detail = err.Error()
	}
	return appErr
}

func NewTranscodeError(err error) *AppError {
	appErr := NewError(
		ErrorCodeTranscodeFailed,
		"Audio transcoding failed",
		http.StatusInternalServerError,
	)
	if err != nil {
		appErr.Detail = err.Error()
	}
	return appErr
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}

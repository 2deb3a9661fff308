package apperror

import (
	"errors"
	"net/http"
)

// Error types for the print subsystem. The dispatch strategy and the
// HTTP layer match on Type, not on message text.
const (
	TypePlatformUnsupported = "platform_unsupported"
	TypeNoCompatibleService = "no_compatible_service"
	TypeNotConnected        = "not_connected"
	TypeImageLoad           = "image_load"
	TypeAppHandoffFailed    = "app_handoff_failed"
	TypeValidation          = "validation"
	TypeUnauthorized        = "unauthorized"
	TypeNotFound            = "not_found"
	TypeInternal            = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches AppErrors by Type so errors.Is works against the sentinels below.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if !errors.As(target, &appErr) {
		return false
	}
	return e.Type == appErr.Type
}

// Common errors
var (
	ErrPlatformUnsupported = &AppError{Code: http.StatusBadRequest, Type: TypePlatformUnsupported, Message: "Platform does not support this print method"}
	ErrNoCompatibleService = &AppError{Code: http.StatusBadGateway, Type: TypeNoCompatibleService, Message: "No compatible printer service found on device"}
	ErrNotConnected        = &AppError{Code: http.StatusConflict, Type: TypeNotConnected, Message: "Printer is not connected"}
	ErrImageLoad           = &AppError{Code: http.StatusUnprocessableEntity, Type: TypeImageLoad, Message: "Image could not be decoded"}
	ErrAppHandoffFailed    = &AppError{Code: http.StatusBadGateway, Type: TypeAppHandoffFailed, Message: "Printing app did not take over the print request"}
	ErrUnauthorized        = &AppError{Code: http.StatusUnauthorized, Type: TypeUnauthorized, Message: "Unauthorized"}
	ErrNotFound            = &AppError{Code: http.StatusNotFound, Type: TypeNotFound, Message: "Resource not found"}
	ErrBadRequest          = &AppError{Code: http.StatusBadRequest, Type: TypeValidation, Message: "Bad request"}
	ErrInternalServer      = &AppError{Code: http.StatusInternalServerError, Type: TypeInternal, Message: "Internal server error"}
)

// NewAppError creates a new application error
func NewAppError(code int, errType, message string) *AppError {
	return &AppError{
		Code:    code,
		Type:    errType,
		Message: message,
	}
}

// NewPlatformUnsupportedError creates a platform error with a custom message
func NewPlatformUnsupportedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Type: TypePlatformUnsupported, Message: message}
}

// NewNoCompatibleServiceError creates a GATT discovery error with a custom message
func NewNoCompatibleServiceError(message string) *AppError {
	return &AppError{Code: http.StatusBadGateway, Type: TypeNoCompatibleService, Message: message}
}

// NewNotConnectedError creates a not-connected error with a custom message
func NewNotConnectedError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Type: TypeNotConnected, Message: message}
}

// NewImageLoadError creates an image decode error with a custom message
func NewImageLoadError(message string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Type: TypeImageLoad, Message: message}
}

// NewAppHandoffFailedError creates a handoff failure error with a custom message
func NewAppHandoffFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadGateway, Type: TypeAppHandoffFailed, Message: message}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Type: TypeValidation, Message: message}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Type: TypeNotFound, Message: resource + " not found"}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Type:    TypeInternal,
		Message: err.Error(),
	}
}

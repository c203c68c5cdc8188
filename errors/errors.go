package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeNoSession    ErrorCode = "NO_SESSION"

	// Validation errors
	ErrCodeValidation           ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField        ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidEmail         ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidFormat        ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidAmount        ErrorCode = "INVALID_AMOUNT"
	ErrCodeConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"

	// Backend errors
	ErrCodeBackend         ErrorCode = "BACKEND_ERROR"
	ErrCodeNetwork         ErrorCode = "NETWORK_ERROR"
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"

	// Export errors
	ErrCodeNothingToExport ErrorCode = "NOTHING_TO_EXPORT"
	ErrCodeExportFailed    ErrorCode = "EXPORT_FAILED"

	// Storage errors
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithStatus gắn HTTP status trả về từ backend
func (e *AppError) WithStatus(status int) *AppError {
	e.Status = status
	return e
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra error có mang mã lỗi code không
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// IsUnauthorized cho biết backend đã từ chối token (401/403)
func IsUnauthorized(err error) bool {
	return HasCode(err, ErrCodeUnauthorized) || HasCode(err, ErrCodeNoSession)
}

// IsValidation cho biết lỗi phát sinh trước khi gửi request
func IsValidation(err error) bool {
	appErr := GetAppError(err)
	if appErr == nil {
		return false
	}
	switch appErr.Code {
	case ErrCodeValidation, ErrCodeRequiredField, ErrCodeInvalidEmail,
		ErrCodeInvalidFormat, ErrCodeInvalidAmount, ErrCodeConfirmationRequired, ErrCodeNotFound:
		return true
	}
	return false
}

// Message trả về thông điệp hiển thị cho người dùng, fallback nếu không phải AppError
func Message(err error, fallback string) string {
	if appErr := GetAppError(err); appErr != nil && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

var ErrNoSession = NewAppError(ErrCodeNoSession, "Unauthorized access. Please log in.", nil)

package services

import "fmt"

// Phân loại lỗi trả về cho client, kèm mã máy đọc được.
type ErrorKind string

const (
	ErrKindValidation      ErrorKind = "validation_error"
	ErrKindUnauthenticated ErrorKind = "unauthenticated"
	ErrKindForbidden       ErrorKind = "forbidden"
	ErrKindNotFound        ErrorKind = "not_found"
	ErrKindConflict        ErrorKind = "conflict"
	ErrKindUploadFailed    ErrorKind = "upload_failed"
	ErrKindInternal        ErrorKind = "internal_error"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ErrValidation(message string) *AppError {
	return &AppError{Kind: ErrKindValidation, Message: message}
}

func ErrUnauthenticated(message string) *AppError {
	return &AppError{Kind: ErrKindUnauthenticated, Message: message}
}

func ErrForbidden(message string) *AppError {
	return &AppError{Kind: ErrKindForbidden, Message: message}
}

func ErrNotFound(message string) *AppError {
	return &AppError{Kind: ErrKindNotFound, Message: message}
}

func ErrConflict(message string) *AppError {
	return &AppError{Kind: ErrKindConflict, Message: message}
}

func ErrUploadFailed(message string, err error) *AppError {
	return &AppError{Kind: ErrKindUploadFailed, Message: message, Err: err}
}

func ErrInternal(message string, err error) *AppError {
	return &AppError{Kind: ErrKindInternal, Message: message, Err: err}
}

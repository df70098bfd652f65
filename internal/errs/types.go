package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

// ValidationError carries per-field reasons keyed by JSON path
// (e.g. "bubble.size.width") when the failure came from a payload.
type ValidationError struct {
	ErrorMessage
	Issues map[string]string
}

type PayloadTooLargeError struct {
	ErrorMessage
	Limit int64
}

type UnsupportedMediaTypeError struct {
	ErrorMessage
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// StorageError is a failed write to object or file storage. The cause is
// logged, never shown to the client.
type StorageError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *StorageError) Unwrap() error { return e.Err }

type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationIssues(message string, issues map[string]string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
		Issues:       issues,
	}
}

func NewPayloadTooLargeError(limit int64) *PayloadTooLargeError {
	return &PayloadTooLargeError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("payload exceeds %d bytes", limit)},
		Limit:        limit,
	}
}

func NewUnsupportedMediaTypeError(message string) *UnsupportedMediaTypeError {
	return &UnsupportedMediaTypeError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	if err != nil {
		message = message + ": " + err.Error()
	}
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewStorageError(operation, message string, err error) *StorageError {
	if err != nil {
		message = message + ": " + err.Error()
	}
	return &StorageError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service, message string, transient bool, err error) *ExternalServiceError {
	if err != nil {
		message = message + ": " + err.Error()
	}
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
		Err:          err,
	}
}

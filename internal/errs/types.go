package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// DataSourceError reports a failed fetch against the external warehouse.
// The pipeline stops at the first one; nothing downstream is computed.
type DataSourceError struct {
	ErrorMessage
	Source string
	Query  string
	Err    error
}

func (e *DataSourceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// EmptySelectionError means the filter cascade or the join left no rows.
type EmptySelectionError struct {
	ErrorMessage
	Stage string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDataSourceError(source, query string, err error) *DataSourceError {
	return &DataSourceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s query %s failed", source, query)},
		Source:       source,
		Query:        query,
		Err:          err,
	}
}

func NewEmptySelectionError(stage string) *EmptySelectionError {
	return &EmptySelectionError{
		ErrorMessage: ErrorMessage{Message: "no rows match the current selection"},
		Stage:        stage,
	}
}

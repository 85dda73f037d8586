package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError rejects an input before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PersistenceError means the store failed and nothing of the entry was kept.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PartialWriteError means some writes of an entry landed and others did not.
// The pending intent identified by IntentID is finished by replay.
type PartialWriteError struct {
	IntentID string
	Err      error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("entry %s partially written: %v", e.IntentID, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func validationFailed(err error) error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	names := make([]string, 0, len(fields))
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field())
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", f.Field(), f.Tag()))
	}
	return &ValidationError{
		Field:   strings.Join(names, ","),
		Message: strings.Join(msgs, "; "),
	}
}

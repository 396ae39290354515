// Package errors provides custom error types for the shockwave planner.
// These errors enable programmatic error checking across the sync engine,
// distinguishing session-fatal failures from per-record failures that the
// sync session swallows into its tally.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the shockwave planner.
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a record already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrFeedUnavailable indicates that the external feed did not return data
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrStoreUnavailable indicates the local store cannot accept any writes.
	// Unlike a single rejected write, this is fatal to an entire sync session.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrReadOnly indicates an attempt to modify a read-only store
	ErrReadOnly = errors.New("read only")
)

// NotFoundError represents an error when a record is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure on a record or option.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// TransportError represents a failure fetching from the external feed.
// The fetch never produced records, so it is fatal to the whole sync
// session: zero records are processed and the audit entry carries the
// failure detail.
type TransportError struct {
	Feed       string
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed %s returned status %d: %s", e.Feed, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("feed %s unreachable: %s", e.Feed, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrFeedUnavailable
}

// NewTransportError creates a new TransportError
func NewTransportError(feed, endpoint string, statusCode int, err error) *TransportError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &TransportError{
		Feed:       feed,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// MalformedRecordError represents a single feed payload that could not be
// normalized because a field required for identity (external id, temporal
// anchor, site) is absent or unparseable. The record is counted as a
// per-record failure and the batch continues.
type MalformedRecordError struct {
	ExternalID string
	Field      string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *MalformedRecordError) Error() string {
	if e.ExternalID != "" {
		return fmt.Sprintf("malformed record %s: field %s: %s", e.ExternalID, e.Field, e.Message)
	}
	return fmt.Sprintf("malformed record: field %s: %s", e.Field, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// NewMalformedRecordError creates a new MalformedRecordError
func NewMalformedRecordError(externalID, field, message string) *MalformedRecordError {
	return &MalformedRecordError{ExternalID: externalID, Field: field, Message: message}
}

// UnresolvedReferenceError represents a payload referencing a site or
// rocket that could not be matched or created. Per-record failure, the
// batch continues.
type UnresolvedReferenceError struct {
	ExternalID string
	Reference  string // "site" or "rocket"
	Name       string
	Err        error
}

// Error implements the error interface
func (e *UnresolvedReferenceError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("record %s references unresolvable %s %q", e.ExternalID, e.Reference, e.Name)
	}
	return fmt.Sprintf("record %s references unresolvable %s", e.ExternalID, e.Reference)
}

// Unwrap implements errors.Unwrap
func (e *UnresolvedReferenceError) Unwrap() error {
	return e.Err
}

// NewUnresolvedReferenceError creates a new UnresolvedReferenceError
func NewUnresolvedReferenceError(externalID, reference, name string) *UnresolvedReferenceError {
	return &UnresolvedReferenceError{ExternalID: externalID, Reference: reference, Name: name}
}

// PersistenceError represents a store write that was rejected, e.g. a
// constraint violation. A per-record failure unless Fatal is set, in
// which case the store is globally unavailable and the session aborts.
type PersistenceError struct {
	Operation string // "insert", "update", "append"
	Resource  string // "launch", "reentry", "site", "rocket", "sync record"
	ID        string
	Fatal     bool
	Err       error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store rejected %s of %s %s: %v", e.Operation, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("store rejected %s of %s: %v", e.Operation, e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PersistenceError) Is(target error) bool {
	if e.Fatal {
		return target == ErrStoreUnavailable
	}
	return false
}

// NewPersistenceError creates a new PersistenceError
func NewPersistenceError(operation, resource, id string, err error) *PersistenceError {
	return &PersistenceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "date", etc.
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{Format: format, Source: source, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "stat"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTransport checks if an error is a feed transport failure
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsMalformed checks if an error is a malformed record failure
func IsMalformed(err error) bool {
	var me *MalformedRecordError
	return errors.As(err, &me)
}

// IsUnresolved checks if an error is an unresolved reference failure
func IsUnresolved(err error) bool {
	var ue *UnresolvedReferenceError
	return errors.As(err, &ue)
}

// IsPersistence checks if an error is a store write rejection
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// IsSessionFatal reports whether an error must abort a whole sync session
// rather than being tallied as a per-record failure.
func IsSessionFatal(err error) bool {
	return errors.Is(err, ErrFeedUnavailable) ||
		errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrCanceled)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapCanceled marks an error as a cancellation so callers can match it
// with errors.Is(err, ErrCanceled)
func WrapCanceled(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrCanceled, err)
}

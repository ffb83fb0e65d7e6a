// Package errors provides custom error types and utilities for cloum.
//
// This package provides error handling for various operations including:
// - Configuration errors
// - Validation errors
// - Subprocess (provider CLI) errors
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories for cloum operations
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfiguration = errors.New("configuration error")
	ErrCommand       = errors.New("command error")
)

// ConfigurationError represents configuration-file-related errors
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrConfiguration)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, value, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// IsConfiguration checks if an error is configuration-related
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidInput)
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IsValidation checks if an error is validation-related
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// NotFoundError represents a lookup miss on a named resource
type NotFoundError struct {
	Kind  string
	Name  string
	Known []string
}

func (e *NotFoundError) Error() string {
	known := "(none configured)"
	if len(e.Known) > 0 {
		known = strings.Join(e.Known, ", ")
	}
	return fmt.Sprintf("%s '%s' not found. Known: %s", e.Kind, e.Name, known)
}

func (e *NotFoundError) Is(target error) bool {
	return errors.Is(target, ErrNotFound)
}

// NewNotFoundError creates a new not-found error
func NewNotFoundError(kind, name string, known []string) *NotFoundError {
	return &NotFoundError{
		Kind:  kind,
		Name:  name,
		Known: known,
	}
}

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// CommandError represents a failed subprocess invocation. Stderr is empty
// when the command ran with inherited streams.
type CommandError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Message  string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Tool, e.Message)
	}
	return fmt.Sprintf("%s %s exited with code %d", e.Tool, strings.Join(e.Args, " "), e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) Is(target error) bool {
	return errors.Is(target, ErrCommand)
}

// NewCommandError creates a new command error
func NewCommandError(tool string, args []string, exitCode int, stderr, message string) *CommandError {
	return &CommandError{
		Tool:     tool,
		Args:     args,
		ExitCode: exitCode,
		Stderr:   stderr,
		Message:  message,
	}
}

// IsCommand checks if an error came from a subprocess failure
func IsCommand(err error) bool {
	return errors.Is(err, ErrCommand)
}

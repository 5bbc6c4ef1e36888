package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned when a requested resource doesn't exist
var ErrNotFound = errors.New("resource not found")

// ErrInvalidInput is returned when the provided input is invalid
var ErrInvalidInput = errors.New("invalid input")

// ErrVendorUnavailable is returned when a vendor service or device can't be
// reached or is not responding
var ErrVendorUnavailable = errors.New("vendor unavailable")

// ErrVendorProtocol is returned when a vendor response has an unexpected
// shape (e.g. a group-create response missing the group id)
var ErrVendorProtocol = errors.New("unexpected vendor response")

// ErrStore is returned when a room/light store read or write fails
var ErrStore = errors.New("store operation failed")

// ErrInternal is returned for unexpected internal errors
var ErrInternal = errors.New("internal error")

// LogErrorAndReturn logs an error with structured context and returns it
func LogErrorAndReturn(logger *slog.Logger, err error, message string, args ...any) error {
	// Don't modify nil errors
	if err == nil {
		return nil
	}

	// Log the error with the provided context
	logger.Error(message, append([]any{"error", err}, args...)...)
	return err
}

// WrapErrorf wraps an error with additional context using fmt.Errorf
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// IsNotFound returns true if the error is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput returns true if the error is or wraps ErrInvalidInput
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsVendorUnavailable returns true if the error is or wraps ErrVendorUnavailable
func IsVendorUnavailable(err error) bool {
	return errors.Is(err, ErrVendorUnavailable)
}

// IsVendorProtocol returns true if the error is or wraps ErrVendorProtocol
func IsVendorProtocol(err error) bool {
	return errors.Is(err, ErrVendorProtocol)
}

// IsStore returns true if the error is or wraps ErrStore
func IsStore(err error) bool {
	return errors.Is(err, ErrStore)
}

// NotFoundf returns a formatted ErrNotFound error
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidInputf returns a formatted ErrInvalidInput error
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

// VendorUnavailablef returns a formatted ErrVendorUnavailable error
func VendorUnavailablef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrVendorUnavailable)...)
}

// VendorProtocolf returns a formatted ErrVendorProtocol error
func VendorProtocolf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrVendorProtocol)...)
}

// Storef returns a formatted ErrStore error
func Storef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrStore)...)
}

// Internalf returns a formatted ErrInternal error
func Internalf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInternal)...)
}

package service

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when no Link matches the requested code.
var ErrNotFound = errors.New("link not found")

// Validation messages, keyed by field at the call sites.
const (
	msgBlank          = "can't be blank"
	msgTooLong        = "is too long (maximum is 2000 characters)"
	msgInvalid        = "is invalid"
	msgNotUnique      = "must be unique"
	msgNotShortenable = "could not be shortened"
)

// ValidationErrors collects field-keyed validation messages. It is
// returned as a normal error value and never indicates a fault in the
// process itself.
type ValidationErrors map[string][]string

func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Joined flattens each field's messages into one ", "-joined string, the
// shape the boundary serializes.
func (e ValidationErrors) Joined() map[string]string {
	joined := make(map[string]string, len(e))
	for field, messages := range e {
		joined[field] = strings.Join(messages, ", ")
	}
	return joined
}

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+" "+strings.Join(e[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) ValidationErrors {
	errs := ValidationErrors{}
	errs.Add(field, message)
	return errs
}

package validator

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Errors []FieldError `json:"errors"`
}

func NewValidationResult() *ValidationResult {
	return &ValidationResult{}
}

func (r *ValidationResult) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func (r *ValidationResult) HasError() bool {
	return len(r.Errors) > 0
}

// Message joins every field error into one line for the error envelope.
func (r *ValidationResult) Message() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

func (r *ValidationResult) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		r.Add(field, "is required")
	}
}

func (r *ValidationResult) OneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	r.Add(field, "must be one of "+strings.Join(allowed, ", "))
}

// UUID parses value, recording an error when it is malformed.
func (r *ValidationResult) UUID(field, value string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		r.Add(field, "must be a valid UUID")
		return uuid.Nil
	}
	return id
}

// Time parses an RFC 3339 timestamp. Empty input yields nil without error.
func (r *ValidationResult) Time(field, value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		r.Add(field, "must be an RFC 3339 timestamp")
		return nil
	}
	return &t
}

func (r *ValidationResult) Email(field, value string) {
	at := strings.LastIndex(value, "@")
	if at < 1 || at == len(value)-1 || !strings.Contains(value[at+1:], ".") || strings.ContainsAny(value, " \t") {
		r.Add(field, "must be a valid email")
	}
}

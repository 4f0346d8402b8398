// Package services defines the business logic of the landing site: the
// contact intake pipeline, document delivery, singleton settings, catalog
// aggregation and back-office accounts. This file centralizes service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"sort"
	"strings"
)

// Contact intake errors.
var (
	// ErrBotDetected is returned when the honeypot field was filled. Callers
	// respond as if the submission succeeded.
	ErrBotDetected = errors.New("honeypot triggered")

	// ErrCaptchaRejected is returned when the verification service explicitly
	// rejected the CAPTCHA token.
	ErrCaptchaRejected = errors.New("captcha rejected")

	// ErrContactNotFound indicates that the requested contact request does not exist.
	ErrContactNotFound = errors.New("contact request not found")
)

// Document errors.
var (
	// ErrDocumentNotFound is returned for unknown or inactive documents and
	// for documents whose backing file is missing.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrUnsupportedFileType is returned when an upload has an extension
	// outside domain.AllowedDocumentExtensions.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrCategoryNotFound is returned when an upload targets an unknown category.
	ErrCategoryNotFound = errors.New("document category not found")
)

// Back-office account errors.
var (
	// ErrAdminExists is returned when creating an account whose username is taken.
	ErrAdminExists = errors.New("admin user already exists")

	// ErrInvalidCredentials covers unknown users, inactive users and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWeakPassword is returned when a new password is shorter than minPasswordLen.
	ErrWeakPassword = errors.New("password too short")
)

// ValidationError carries per-field messages for a rejected form. Keys are
// form field names; values are human-readable messages in display order.
type ValidationError struct {
	Fields map[string][]string
}

// Error implements error.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}

// add appends msg to the messages of field.
func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// empty reports whether no field failed.
func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

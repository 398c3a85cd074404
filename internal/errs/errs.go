// Package errs defines the application's error types.
//
// There are two layers:
//   - Error is the domain taxonomy (validation, referential, not found,
//     storage) returned by the repository and service layers.
//   - HTTPError is the JSON shape returned to API clients.
//
// ToHTTPError bridges the two at the HTTP boundary.
package errs

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind classifies a domain error.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindReferential Kind = "referential"
	KindNotFound    Kind = "not_found"
	KindStorage     Kind = "storage"
)

// Error is a domain error. Entity names the record type involved
// ("venue", "artist", "show").
type Error struct {
	Kind    Kind
	Entity  string
	ID      int64
	Message string
	Fields  []FieldError

	// Fatal marks integrity failures that indicate corrupted state rather
	// than bad input, e.g. a show whose venue row is gone.
	Fatal bool

	Err error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrReferential = &Error{Kind: KindReferential}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrStorage     = &Error{Kind: KindStorage}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind, and on Entity when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Entity != "" && t.Entity != e.Entity {
		return false
	}
	return true
}

// AsError extracts a domain error from err's chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// Invalid reports malformed or missing input for entity.
func Invalid(entity, message string, fields ...FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Entity:  entity,
		Message: message,
		Fields:  fields,
	}
}

// NotFound reports a lookup by id with no match.
func NotFound(entity string, id int64) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %d not found", EntityTitle(entity), id),
	}
}

// MissingReference reports a write that points at a record that does not exist.
func MissingReference(entity string, id int64) *Error {
	return &Error{
		Kind:    KindReferential,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("The referenced %s %d does not exist", entity, id),
	}
}

// DanglingReference reports a stored record whose reference no longer
// resolves. It is always fatal.
func DanglingReference(entity string, id int64, owner string, ownerID int64) *Error {
	return &Error{
		Kind:    KindReferential,
		Entity:  entity,
		ID:      id,
		Fatal:   true,
		Message: fmt.Sprintf("%s %d references missing %s %d", owner, ownerID, entity, id),
	}
}

// Storage wraps a transaction or query failure.
func Storage(op string, err error) *Error {
	return &Error{
		Kind:    KindStorage,
		Message: op,
		Err:     err,
	}
}

// WriteFailed reports a create or update that the store rejected for
// reasons other than bad input. Unlike Storage, its message is meant for the
// client and names the record.
func WriteFailed(entity, name string, err error) *Error {
	return &Error{
		Kind:    KindStorage,
		Entity:  entity,
		Message: fmt.Sprintf("An error occurred. %s '%s' could not be listed.", EntityTitle(entity), name),
		Err:     err,
	}
}

// EntityTitle turns "venue" into "Venue".
func EntityTitle(entity string) string {
	if entity == "" {
		return "Record"
	}
	return cases.Title(language.English).String(entity)
}

// Package validation binds request payloads and validates them.
//
// Payload types carry go-playground/validator tags (required fields, URL
// formats, genre limits) and expose a Validate method. Failures are turned
// into field-level errs.FieldError entries that the global error handler
// returns to the client with a 400.
package validation

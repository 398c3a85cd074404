// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate requests through the validation package, call
// the matching service and let the global error handler shape failures.
package handler

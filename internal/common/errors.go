// Package common holds sentinel errors shared across layers. Repositories
// and services return these; the HTTP layer maps them to status codes.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("invalid username or password")
	ErrorValidation   = errors.New("validation error")

	// auth-specific errors
	ErrorMissingToken = errors.New("missing token")
	ErrorInvalidToken = errors.New("invalid token")
	ErrorTokenExpired = errors.New("token expired")
)

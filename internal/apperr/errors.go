package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a state conflict, e.g. a delivery already taken by another courier.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates the backend rejected the courier's credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnavailable indicates the backend could not be reached or answered with a server error.
var ErrUnavailable = errors.New("backend unavailable")

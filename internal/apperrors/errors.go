package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTarget indicates that a distribution named a fund node that does
// not exist in the hierarchy. A silent no-op here would let the authority
// records drift from what the caller believes was applied, so the miss is
// always surfaced.
var ErrInvalidTarget = errors.New("no matching fund control node")

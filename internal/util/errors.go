package util

import "errors"

// Failure categories produced by the services. Controllers map them 1:1 onto
// HTTP statuses (404/409/403/400); anything else is treated as a store error
// and surfaces as 500 without any internal retry.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("bad request")
)

var (
	ErrInvalidReorderSet = BadRequestError("reorder set does not match the current children")
	ErrLockHeld          = ConflictError("lesson is locked by another user")
	ErrNotLockOwner      = ForbiddenError("not lock owner")
)

type statusError struct {
	kind error
	msg  string
}

func (e *statusError) Error() string { return e.msg }

func (e *statusError) Is(target error) bool { return target == e.kind }

func NotFoundError(msg string) error   { return &statusError{kind: ErrNotFound, msg: msg} }
func ConflictError(msg string) error   { return &statusError{kind: ErrConflict, msg: msg} }
func ForbiddenError(msg string) error  { return &statusError{kind: ErrForbidden, msg: msg} }
func BadRequestError(msg string) error { return &statusError{kind: ErrBadRequest, msg: msg} }

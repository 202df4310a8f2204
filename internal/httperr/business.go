package httperr

import (
	"github.com/cockroachdb/errors"
)

// Classes of business errors. Every BusinessError is marked with exactly
// one of them and the class decides the HTTP status.
var (
	ErrValidation      = errors.New("class: validation")
	ErrConflict        = errors.New("class: conflict")
	ErrPolicyViolation = errors.New("class: policy violation")
	ErrForbidden       = errors.New("class: forbidden")
	ErrNotFound        = errors.New("class: not found")
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

// New builds a business error tagged with its class.
func New(class error, code, message string) error {
	return errors.Mark(BusinessError{Code: code, Message: message}, class)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code carried by err, or "internal_error".
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return "internal_error"
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidState            = errors.New("invalid state")
	ErrInvalidInput            = errors.New("invalid input")
	ErrAdmission               = errors.New("admission rejected")
	ErrAmountMismatch          = errors.New("amount mismatch")
	ErrAlreadySettled          = errors.New("already settled")
	ErrRevisionLimitExceeded   = errors.New("revision limit exceeded")
	ErrConcurrentUpdate        = errors.New("concurrent update")
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
)

type AdmissionReason string

const (
	ReasonAccountTooNew        AdmissionReason = "account_too_new"
	ReasonTooManyDisputes      AdmissionReason = "too_many_disputes"
	ReasonTooManyOpenOrders    AdmissionReason = "too_many_open_orders"
	ReasonEmailNotVerified     AdmissionReason = "email_not_verified"
	ReasonPhoneNotVerified     AdmissionReason = "phone_not_verified"
	ReasonNotEnoughCompletions AdmissionReason = "not_enough_completed_orders"
)

var admissionMessages = map[AdmissionReason]string{
	ReasonAccountTooNew:        "account too new",
	ReasonTooManyDisputes:      "too many disputed orders",
	ReasonTooManyOpenOrders:    "too many open orders with this seller",
	ReasonEmailNotVerified:     "email not verified",
	ReasonPhoneNotVerified:     "phone not verified",
	ReasonNotEnoughCompletions: "not enough completed orders",
}

// AdmissionError names the first seller policy check a buyer failed.
type AdmissionError struct {
	Reason AdmissionReason
}

func NewAdmissionError(reason AdmissionReason) *AdmissionError {
	return &AdmissionError{Reason: reason}
}

func (e *AdmissionError) Message() string {
	if msg, ok := admissionMessages[e.Reason]; ok {
		return msg
	}
	return string(e.Reason)
}

func (e *AdmissionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAdmission, e.Message())
}

func (e *AdmissionError) Is(target error) bool {
	return target == ErrAdmission
}

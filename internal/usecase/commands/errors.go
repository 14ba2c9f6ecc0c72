package commands

import (
	"fmt"

	"swimbooking/internal/infra"
	"swimbooking/internal/pkg/errs"
)

var (
	ErrForbidden             = errs.New("caller may not act on this resource")
	ErrValidation            = errs.New("validation failed")
	ErrBookingNotFound       = errs.New("booking not found")
	ErrSessionNotFound       = errs.New("session not found")
	ErrSwimmerNotFound       = errs.New("swimmer not found")
	ErrBlockNotFound         = errs.New("no bookings in block")
	ErrAlreadyBooked         = errs.New("swimmer already holds a confirmed booking on this session")
	ErrNoActivePurchaseOrder = errs.New("no active purchase order covers the requested sessions")
	ErrBlockAlreadyStarted   = errs.New("first session in block has already started")
	ErrIdempotencyKeyReused  = errs.New("idempotency key reused with a different request")
	ErrIdempotencyInProgress = errs.New("idempotency in progress")
	ErrLateCancellation      = errs.New("cancellation is inside the notice window")
)

// LateCancellationError carries what a parent needs to reach staff when the
// app refuses a cancellation.
type LateCancellationError struct {
	HoursBeforeSession float64
	ContactPhone       string
	ContactType        string
}

func (e *LateCancellationError) Error() string {
	return fmt.Sprintf("cancellation %.1f hours before session must go through staff", e.HoursBeforeSession)
}

func (e *LateCancellationError) Is(target error) bool {
	return target == ErrLateCancellation
}

func validationError(msg string) error {
	return errs.Mark(errs.New(msg), ErrValidation)
}

// notFound turns a repository NOT_FOUND into the given sentinel and leaves
// every other error untouched.
func notFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return err
}

package queries

import "swimbooking/internal/pkg/errs"

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrSessionNotFound = errs.New("session not found")
	ErrSwimmerNotFound = errs.New("swimmer not found")
	ErrAccessDenied    = errs.New("access denied")
	ErrInvalidCursor   = errs.New("invalid cursor")
)

package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrInvalidTransition = errors.New("booking status transition not allowed")
	ErrInvalidType       = errors.New("invalid booking type")
	ErrNotConfirmed      = errors.New("booking is not confirmed")
	ErrSameSession       = errors.New("booking is already on this session")
)

type Booking struct {
	id              uuid.UUID
	sessionID       uuid.UUID
	swimmerID       uuid.UUID
	parentID        uuid.UUID
	status          Status
	bookingType     Type
	batchID         *uuid.UUID
	purchaseOrderID *uuid.UUID
	requestID       *uuid.UUID
	cancelReason    string
	cancelSource    *CancelSource
	canceledAt      *time.Time
	canceledBy      *uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

type NewBookingParams struct {
	SessionID       uuid.UUID
	SwimmerID       uuid.UUID
	ParentID        uuid.UUID
	Type            Type
	BatchID         *uuid.UUID
	PurchaseOrderID *uuid.UUID
	RequestID       *uuid.UUID
}

func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if !p.Type.IsValid() {
		return nil, ErrInvalidType
	}
	return &Booking{
		id:              uuid.New(),
		sessionID:       p.SessionID,
		swimmerID:       p.SwimmerID,
		parentID:        p.ParentID,
		status:          StatusConfirmed,
		bookingType:     p.Type,
		batchID:         p.BatchID,
		purchaseOrderID: p.PurchaseOrderID,
		requestID:       p.RequestID,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructBooking(
	id, sessionID, swimmerID, parentID uuid.UUID,
	status Status,
	bookingType Type,
	batchID, purchaseOrderID, requestID *uuid.UUID,
	cancelReason string,
	cancelSource *CancelSource,
	canceledAt *time.Time,
	canceledBy *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		sessionID:       sessionID,
		swimmerID:       swimmerID,
		parentID:        parentID,
		status:          status,
		bookingType:     bookingType,
		batchID:         batchID,
		purchaseOrderID: purchaseOrderID,
		requestID:       requestID,
		cancelReason:    cancelReason,
		cancelSource:    cancelSource,
		canceledAt:      canceledAt,
		canceledBy:      canceledBy,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (b *Booking) transition(to Status, now time.Time) error {
	if b.status == StatusCancelled && to == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !CanTransition(b.status, to) {
		return ErrInvalidTransition
	}
	b.status = to
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(reason string, source CancelSource, by uuid.UUID, now time.Time) error {
	if err := b.transition(StatusCancelled, now); err != nil {
		return err
	}
	b.cancelReason = strings.TrimSpace(reason)
	b.cancelSource = &source
	b.canceledAt = &now
	b.canceledBy = &by
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	return b.transition(StatusCompleted, now)
}

func (b *Booking) MarkNoShow(now time.Time) error {
	return b.transition(StatusNoShow, now)
}

func (b *Booking) MoveTo(sessionID uuid.UUID, now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	if b.sessionID == sessionID {
		return ErrSameSession
	}
	b.sessionID = sessionID
	b.updatedAt = now
	return nil
}

func (b *Booking) IsConfirmed() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) SessionID() uuid.UUID        { return b.sessionID }
func (b *Booking) SwimmerID() uuid.UUID        { return b.swimmerID }
func (b *Booking) ParentID() uuid.UUID         { return b.parentID }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) Type() Type                  { return b.bookingType }
func (b *Booking) BatchID() *uuid.UUID         { return b.batchID }
func (b *Booking) PurchaseOrderID() *uuid.UUID { return b.purchaseOrderID }
func (b *Booking) RequestID() *uuid.UUID       { return b.requestID }
func (b *Booking) CancelReason() string        { return b.cancelReason }
func (b *Booking) CancelSource() *CancelSource { return b.cancelSource }
func (b *Booking) CanceledAt() *time.Time      { return b.canceledAt }
func (b *Booking) CanceledBy() *uuid.UUID      { return b.canceledBy }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }

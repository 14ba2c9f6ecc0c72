//go:build unit || e2e

package builder

import (
	"time"

	"swimbooking/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	SwimmerID       uuid.UUID
	ParentID        uuid.UUID
	Status          booking.Status
	Type            booking.Type
	BatchID         *uuid.UUID
	PurchaseOrderID *uuid.UUID
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:        uuid.New(),
		SessionID: uuid.New(),
		SwimmerID: uuid.New(),
		ParentID:  uuid.New(),
		Status:    booking.StatusConfirmed,
		Type:      booking.TypeSingle,
		CreatedAt: time.Now().Add(-time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID,
		b.SessionID,
		b.SwimmerID,
		b.ParentID,
		b.Status,
		b.Type,
		b.BatchID,
		b.PurchaseOrderID,
		nil,
		"",
		nil,
		nil,
		nil,
		b.CreatedAt,
		b.CreatedAt,
	)
}

func (b *BookingBuilder) ForSession(sessionID uuid.UUID) *BookingBuilder {
	b.SessionID = sessionID
	return b
}

func (b *BookingBuilder) ForSwimmer(swimmerID, parentID uuid.UUID) *BookingBuilder {
	b.SwimmerID = swimmerID
	b.ParentID = parentID
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithType(t booking.Type) *BookingBuilder {
	b.Type = t
	return b
}

package request

import (
	"swimbooking/internal/pkg/patch"
	"swimbooking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SwimmerID   uuid.UUID `json:"swimmer_id" binding:"required"`
	SessionID   uuid.UUID `json:"session_id" binding:"required"`
	BookingType string    `json:"booking_type,omitempty" binding:"omitempty,oneof=single assessment"`
}

func (r CreateBookingRequest) ToInput(idempotencyKey *uuid.UUID) commands.CreateBookingsInput {
	return commands.CreateBookingsInput{
		SwimmerID:      r.SwimmerID,
		SessionIDs:     []uuid.UUID{r.SessionID},
		BookingType:    r.BookingType,
		IdempotencyKey: idempotencyKey,
	}
}

type CreateRecurringBookingRequest struct {
	SwimmerID  uuid.UUID   `json:"swimmer_id" binding:"required"`
	SessionIDs []uuid.UUID `json:"session_ids" binding:"required,min=1,max=60"`
}

func (r CreateRecurringBookingRequest) ToInput(idempotencyKey *uuid.UUID) commands.CreateBookingsInput {
	return commands.CreateBookingsInput{
		SwimmerID:      r.SwimmerID,
		SessionIDs:     r.SessionIDs,
		BookingType:    "recurring",
		IdempotencyKey: idempotencyKey,
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type AdminCancelBookingRequest struct {
	Reason       string `json:"reason" binding:"max=500"`
	MarkFlexible bool   `json:"mark_flexible"`
}

func (r AdminCancelBookingRequest) ToInput() commands.AdminCancelInput {
	return commands.AdminCancelInput{Reason: r.Reason, MarkFlexible: r.MarkFlexible}
}

type RescheduleRequest struct {
	TargetSessionID uuid.UUID `json:"target_session_id" binding:"required"`
	// NotifyParent defaults to true when omitted.
	NotifyParent *bool `json:"notify_parent,omitempty"`
}

func (r RescheduleRequest) ToInput() commands.RescheduleInput {
	return commands.RescheduleInput{
		TargetSessionID: r.TargetSessionID,
		NotifyParent:    patch.Coalesce(r.NotifyParent, true),
	}
}

type BulkBookingRequest struct {
	BookingIDs   []uuid.UUID `json:"booking_ids" binding:"required,min=1,max=500"`
	Action       string      `json:"action" binding:"required,oneof=cancel change_instructor mark_completed mark_no_show"`
	InstructorID *uuid.UUID  `json:"instructor_id,omitempty"`
}

func (r BulkBookingRequest) ToInput() commands.BulkInput {
	return commands.BulkInput{
		BookingIDs:   r.BookingIDs,
		Action:       commands.BulkAction(r.Action),
		InstructorID: r.InstructorID,
	}
}

type CancelBlockRequest struct {
	SwimmerID uuid.UUID `json:"swimmer_id" binding:"required"`
	BatchID   uuid.UUID `json:"batch_id" binding:"required"`
	Reason    string    `json:"reason" binding:"max=500"`
}

func (r CancelBlockRequest) ToInput() commands.CancelBlockInput {
	return commands.CancelBlockInput{SwimmerID: r.SwimmerID, BatchID: r.BatchID, Reason: r.Reason}
}

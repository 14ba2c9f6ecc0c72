package purchaseorder

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInsufficientAuthorization = errors.New("insufficient authorized sessions on purchase order")
	ErrNotUsable                 = errors.New("purchase order is not usable")
)

type Status string

const (
	StatusPending             Status = "pending"
	StatusApproved            Status = "approved"
	StatusActive              Status = "active"
	StatusApprovedPendingAuth Status = "approved_pending_auth"
	StatusCancelled           Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// IsUsable reports whether sessions may be booked against the order.
func (s Status) IsUsable() bool {
	return s == StatusActive || s == StatusApproved
}

// PurchaseOrder authorizes a bounded number of lessons for a funded swimmer.
// sessionsBooked never exceeds sessionsAuthorized.
type PurchaseOrder struct {
	id                  uuid.UUID
	swimmerID           uuid.UUID
	fundingSourceID     uuid.UUID
	status              Status
	sessionsAuthorized  int
	sessionsBooked      int
	sessionsUsed        int
	startDate           time.Time
	endDate             time.Time
	authorizationNumber string
	updatedAt           time.Time
}

func Reconstruct(
	id, swimmerID, fundingSourceID uuid.UUID,
	status Status,
	sessionsAuthorized, sessionsBooked, sessionsUsed int,
	startDate, endDate time.Time,
	authorizationNumber string,
	updatedAt time.Time,
) *PurchaseOrder {
	return &PurchaseOrder{
		id:                  id,
		swimmerID:           swimmerID,
		fundingSourceID:     fundingSourceID,
		status:              status,
		sessionsAuthorized:  sessionsAuthorized,
		sessionsBooked:      sessionsBooked,
		sessionsUsed:        sessionsUsed,
		startDate:           startDate,
		endDate:             endDate,
		authorizationNumber: authorizationNumber,
		updatedAt:           updatedAt,
	}
}

func (p *PurchaseOrder) Remaining() int {
	if r := p.sessionsAuthorized - p.sessionsBooked; r > 0 {
		return r
	}
	return 0
}

// Covers reports whether at falls inside the order's validity window. Dates
// are inclusive on both ends.
func (p *PurchaseOrder) Covers(at time.Time) bool {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(p.startDate) && !day.After(p.endDate)
}

func (p *PurchaseOrder) CanCover(n int, at time.Time) error {
	if !p.status.IsUsable() || !p.Covers(at) {
		return ErrNotUsable
	}
	if p.Remaining() < n {
		return ErrInsufficientAuthorization
	}
	return nil
}

func (p *PurchaseOrder) Reserve(n int, now time.Time) error {
	if p.Remaining() < n {
		return ErrInsufficientAuthorization
	}
	p.sessionsBooked += n
	p.updatedAt = now
	return nil
}

// Release returns n sessions to the order, floored at zero.
func (p *PurchaseOrder) Release(n int, now time.Time) {
	p.sessionsBooked = max(p.sessionsBooked-n, 0)
	p.updatedAt = now
}

func (p *PurchaseOrder) ID() uuid.UUID               { return p.id }
func (p *PurchaseOrder) SwimmerID() uuid.UUID        { return p.swimmerID }
func (p *PurchaseOrder) FundingSourceID() uuid.UUID  { return p.fundingSourceID }
func (p *PurchaseOrder) Status() Status              { return p.status }
func (p *PurchaseOrder) SessionsAuthorized() int     { return p.sessionsAuthorized }
func (p *PurchaseOrder) SessionsBooked() int         { return p.sessionsBooked }
func (p *PurchaseOrder) SessionsUsed() int           { return p.sessionsUsed }
func (p *PurchaseOrder) StartDate() time.Time        { return p.startDate }
func (p *PurchaseOrder) EndDate() time.Time          { return p.endDate }
func (p *PurchaseOrder) AuthorizationNumber() string { return p.authorizationNumber }
func (p *PurchaseOrder) UpdatedAt() time.Time        { return p.updatedAt }

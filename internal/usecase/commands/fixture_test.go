//go:build unit

package commands_test

import (
	"time"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/purchaseorder"
	"swimbooking/internal/domain/session"
	"swimbooking/internal/domain/swimmer"
	"swimbooking/internal/domain/user"
	"swimbooking/internal/pkg/clock"
	"swimbooking/internal/pkg/config"
	"swimbooking/internal/usecase/commands"
	"swimbooking/tests/common/builder"
	"swimbooking/tests/common/memuow"

	"github.com/google/uuid"
)

var baseNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type (
	builderSession = builder.SessionBuilder
	builderBooking = builder.BookingBuilder
)

// world is one in-memory booking system with a parent, their swimmer and an
// admin.
type world struct {
	store    *memuow.Store
	clock    *clock.MockClock
	policy   commands.Policy
	bookings commands.BookingCommands
	sessions commands.SessionCommands

	parent  user.Actor
	admin   user.Actor
	swimmer *swimmer.Swimmer
}

func newWorld() *world {
	cfg := config.NewTestConfig()
	w := &world{
		store:  memuow.New(),
		clock:  clock.NewMockClock(baseNow),
		policy: commands.NewPolicy(cfg),
		parent: user.NewActor(uuid.New(), user.RoleParent),
		admin:  user.NewActor(uuid.New(), user.RoleAdmin),
	}
	w.bookings = commands.NewBookingCommands(w.store, w.clock, w.policy)
	w.sessions = commands.NewSessionCommands(w.store, w.clock, w.policy)
	w.swimmer = w.addSwimmer(w.parent.UserID, false)
	return w
}

func (w *world) addSwimmer(parentID uuid.UUID, funded bool) *swimmer.Swimmer {
	payment := swimmer.PaymentPrivatePay
	var fundingID *uuid.UUID
	if funded {
		id := uuid.New()
		payment, fundingID = swimmer.PaymentFundingSource, &id
	}
	sw := swimmer.Reconstruct(uuid.New(), parentID, "Ava", "Nguyen", payment, fundingID, false, swimmer.AssessmentScheduled, baseNow)
	w.store.PutSwimmer(sw)
	return sw
}

func (w *world) addSession(startIn time.Duration, capacity int, mutate ...func(*builder.SessionBuilder)) uuid.UUID {
	b := builder.NewSessionBuilder().StartingAt(baseNow.Add(startIn)).WithCapacity(capacity, 0)
	for _, m := range mutate {
		b.With(m)
	}
	s := b.MustBuildDomain()
	w.store.PutSession(s)
	return s.ID()
}

func recurring(b *builder.SessionBuilder) {
	b.AsRecurring(uuid.New())
}

func (w *world) addOrder(sw *swimmer.Swimmer, authorized int) *purchaseorder.PurchaseOrder {
	po := purchaseorder.Reconstruct(uuid.New(), sw.ID(), *sw.FundingSourceID(), purchaseorder.StatusActive,
		authorized, 0, 0,
		baseNow.AddDate(0, -1, 0), baseNow.AddDate(0, 3, 0), "AUTH-1", baseNow)
	w.store.PutPurchaseOrder(po)
	return po
}

// seedBooking puts a confirmed booking directly into the store and keeps the
// session count in step with it.
func (w *world) seedBooking(sessionID uuid.UUID, mutate ...func(*builder.BookingBuilder)) *booking.Booking {
	bb := builder.NewBookingBuilder().ForSession(sessionID).ForSwimmer(w.swimmer.ID(), w.parent.UserID)
	for _, m := range mutate {
		bb.With(m)
	}
	b := bb.BuildDomain()
	w.store.PutBooking(b)

	s := w.store.Session(sessionID)
	s.Recount(w.store.ActiveCount(sessionID), baseNow)
	w.store.PutSession(s)
	return b
}

func (w *world) count(sessionID uuid.UUID) int {
	return w.store.Session(sessionID).BookingCount()
}

func (w *world) status(bookingID uuid.UUID) booking.Status {
	return w.store.Booking(bookingID).Status()
}

func (w *world) sessionStatus(sessionID uuid.UUID) session.Status {
	return w.store.Session(sessionID).Status()
}

func (w *world) jobTopics() []string {
	var topics []string
	for _, j := range w.store.Jobs() {
		topics = append(topics, j.Topic)
	}
	return topics
}

// countsConsistent checks every session's stored count against its
// live bookings.
func (w *world) countsConsistent(ids ...uuid.UUID) bool {
	for _, id := range ids {
		s := w.store.Session(id)
		if s.BookingCount() != w.store.ActiveCount(id) {
			return false
		}
		if s.IsFull() != (s.BookingCount() >= s.MaxCapacity()) {
			return false
		}
	}
	return true
}

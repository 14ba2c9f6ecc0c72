//go:build unit

// Package memuow is an in-memory shared.UnitOfWork for use-case tests.
// Transactions are serialized by a single mutex and see a private copy of
// the store that is published only when fn succeeds.
package memuow

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/cancellation"
	"swimbooking/internal/domain/floating"
	"swimbooking/internal/domain/purchaseorder"
	"swimbooking/internal/domain/session"
	"swimbooking/internal/domain/swimmer"
	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errs.New("memuow: read-only access is not supported")

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type Job struct {
	shared.NotificationJob
	RunAt     time.Time
	Status    string
	LastError string
}

type state struct {
	sessions      map[uuid.UUID]session.Session
	bookings      map[uuid.UUID]booking.Booking
	swimmers      map[uuid.UUID]swimmer.Swimmer
	orders        map[uuid.UUID]purchaseorder.PurchaseOrder
	floats        map[uuid.UUID]floating.FloatingSession
	cancellations []cancellation.Record
	idempotency   map[idemKey]shared.IdempotencyRecord
	jobs          []Job
	assessments   map[uuid.UUID]int
}

func newState() *state {
	return &state{
		sessions:    map[uuid.UUID]session.Session{},
		bookings:    map[uuid.UUID]booking.Booking{},
		swimmers:    map[uuid.UUID]swimmer.Swimmer{},
		orders:      map[uuid.UUID]purchaseorder.PurchaseOrder{},
		floats:      map[uuid.UUID]floating.FloatingSession{},
		idempotency: map[idemKey]shared.IdempotencyRecord{},
		assessments: map[uuid.UUID]int{},
	}
}

func (s *state) clone() *state {
	return &state{
		sessions:      maps.Clone(s.sessions),
		bookings:      maps.Clone(s.bookings),
		swimmers:      maps.Clone(s.swimmers),
		orders:        maps.Clone(s.orders),
		floats:        maps.Clone(s.floats),
		cancellations: slices.Clone(s.cancellations),
		idempotency:   maps.Clone(s.idempotency),
		jobs:          slices.Clone(s.jobs),
		assessments:   maps.Clone(s.assessments),
	}
}

// Store implements shared.UnitOfWork. The zero value is not usable; call New.
type Store struct {
	mu    sync.Mutex
	state *state

	// FailFloating makes every floating session insert fail.
	FailFloating bool
	commits      int
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{state: newState()}
}

func (m *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &tx{store: m, st: m.state.clone()}
	if err := fn(ctx, t); err != nil {
		return err
	}
	m.state = t.st
	m.commits++
	return nil
}

func (m *Store) WithinReadOnly(context.Context, func(ctx context.Context, db sqlc.DBTX) error) error {
	return errReadOnly
}

func (m *Store) WithDB(context.Context, func(ctx context.Context, db sqlc.DBTX) error) error {
	return errReadOnly
}

// Seeding and inspection. These bypass transactions.

func (m *Store) PutSession(s *session.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.sessions[s.ID()] = *s
}

func (m *Store) PutBooking(b *booking.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.bookings[b.ID()] = *b
}

func (m *Store) PutSwimmer(s *swimmer.Swimmer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.swimmers[s.ID()] = *s
}

func (m *Store) PutPurchaseOrder(p *purchaseorder.PurchaseOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.orders[p.ID()] = *p
}

func (m *Store) Session(id uuid.UUID) *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.sessions[id]
	if !ok {
		return nil
	}
	return &s
}

func (m *Store) Booking(id uuid.UUID) *booking.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.state.bookings[id]
	if !ok {
		return nil
	}
	return &b
}

func (m *Store) Swimmer(id uuid.UUID) *swimmer.Swimmer {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.swimmers[id]
	if !ok {
		return nil
	}
	return &s
}

func (m *Store) PurchaseOrder(id uuid.UUID) *purchaseorder.PurchaseOrder {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.state.orders[id]
	if !ok {
		return nil
	}
	return &p
}

// ActiveCount is the number of non-cancelled bookings on a session.
func (m *Store) ActiveCount(sessionID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.activeCount(sessionID)
}

func (m *Store) Bookings() []booking.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Collect(maps.Values(m.state.bookings))
}

func (m *Store) FloatingSessions() []floating.FloatingSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Collect(maps.Values(m.state.floats))
}

func (m *Store) Cancellations() []cancellation.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.cancellations)
}

func (m *Store) Jobs() []Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.jobs)
}

func (m *Store) AddJob(topic string, payload []byte, runAt time.Time) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.state.jobs = append(m.state.jobs, Job{
		NotificationJob: shared.NotificationJob{ID: id, Kind: shared.JobKindEmail, Topic: topic, Payload: payload},
		RunAt:           runAt,
		Status:          "queued",
	})
	return id
}

func (m *Store) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

func (s *state) activeCount(sessionID uuid.UUID) int {
	n := 0
	for _, b := range s.bookings {
		if b.SessionID() == sessionID && b.Status().CountsTowardCapacity() {
			n++
		}
	}
	return n
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type tx struct {
	store *Store
	st    *state
}

func (t *tx) Sessions() shared.SessionRepository                 { return sessionRepo{t} }
func (t *tx) Bookings() shared.BookingRepository                 { return bookingRepo{t} }
func (t *tx) Swimmers() shared.SwimmerRepository                 { return swimmerRepo{t} }
func (t *tx) PurchaseOrders() shared.PurchaseOrderRepository     { return orderRepo{t} }
func (t *tx) FloatingSessions() shared.FloatingSessionRepository { return floatRepo{t} }
func (t *tx) Cancellations() shared.CancellationRepository       { return cancellationRepo{t} }
func (t *tx) Assessments() shared.AssessmentRepository           { return assessmentRepo{t} }
func (t *tx) Idempotency() shared.IdempotencyRepository          { return idempotencyRepo{t} }
func (t *tx) Notifications() shared.NotificationRepository       { return notificationRepo{t} }
func (t *tx) DB() sqlc.DBTX                                      { return nil }

func (t *tx) Savepoint(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	saved := t.st.clone()
	if err := fn(ctx, nil); err != nil {
		t.st = saved
		return err
	}
	return nil
}

type sessionRepo struct{ t *tx }

func (r sessionRepo) LockForUpdate(_ context.Context, _ sqlc.DBTX, ids []uuid.UUID) ([]*session.Session, error) {
	out := make([]*session.Session, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.t.st.sessions[id]; ok {
			out = append(out, &s)
		}
	}
	return out, nil
}

func (r sessionRepo) CountActive(_ context.Context, _ sqlc.DBTX, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(ids))
	for _, id := range ids {
		out[id] = r.t.st.activeCount(id)
	}
	return out, nil
}

func (r sessionRepo) SaveOccupancy(_ context.Context, _ sqlc.DBTX, s *session.Session) error {
	r.t.st.sessions[s.ID()] = *s
	return nil
}

func (r sessionRepo) SaveClosure(_ context.Context, _ sqlc.DBTX, s *session.Session) error {
	r.t.st.sessions[s.ID()] = *s
	return nil
}

func (r sessionRepo) UpdateInstructor(_ context.Context, _ sqlc.DBTX, ids []uuid.UUID, instructorID uuid.UUID, at time.Time) (int64, error) {
	var n int64
	for _, id := range ids {
		s, ok := r.t.st.sessions[id]
		if !ok {
			continue
		}
		s.ChangeInstructor(instructorID, at)
		r.t.st.sessions[id] = s
		n++
	}
	return n, nil
}

type bookingRepo struct{ t *tx }

func (r bookingRepo) Create(_ context.Context, _ sqlc.DBTX, b *booking.Booking) error {
	if _, ok := r.t.st.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking exists", nil, infra.KindDuplicateKey)
	}
	r.t.st.bookings[b.ID()] = *b
	return nil
}

func (r bookingRepo) LockForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.t.st.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return &b, nil
}

func (r bookingRepo) LockManyForUpdate(_ context.Context, _ sqlc.DBTX, ids []uuid.UUID) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.t.st.bookings[id]; ok {
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r bookingRepo) ListConfirmedForSessionForUpdate(_ context.Context, _ sqlc.DBTX, sessionID uuid.UUID) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, id := range r.sortedIDs() {
		b := r.t.st.bookings[id]
		if b.SessionID() == sessionID && b.IsConfirmed() {
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r bookingRepo) ListBlockForUpdate(_ context.Context, _ sqlc.DBTX, swimmerID, batchID uuid.UUID) ([]shared.BlockBooking, error) {
	var out []shared.BlockBooking
	for _, id := range r.sortedIDs() {
		b := r.t.st.bookings[id]
		if b.SwimmerID() != swimmerID || b.BatchID() == nil || *b.BatchID() != batchID {
			continue
		}
		s := r.t.st.sessions[b.SessionID()]
		out = append(out, shared.BlockBooking{Booking: &b, SessionStart: s.StartTime()})
	}
	slices.SortStableFunc(out, func(a, b shared.BlockBooking) int {
		return a.SessionStart.Compare(b.SessionStart)
	})
	return out, nil
}

func (r bookingRepo) HasConfirmedOnSession(_ context.Context, _ sqlc.DBTX, swimmerID, sessionID uuid.UUID) (bool, error) {
	for _, b := range r.t.st.bookings {
		if b.SwimmerID() == swimmerID && b.SessionID() == sessionID && b.IsConfirmed() {
			return true, nil
		}
	}
	return false, nil
}

func (r bookingRepo) Save(_ context.Context, _ sqlc.DBTX, b *booking.Booking) error {
	if _, ok := r.t.st.bookings[b.ID()]; !ok {
		return notFound("booking not found")
	}
	r.t.st.bookings[b.ID()] = *b
	return nil
}

func (r bookingRepo) UpdateStatusBatch(_ context.Context, _ sqlc.DBTX, ids []uuid.UUID, upd shared.StatusUpdate) (int64, error) {
	var n int64
	for _, id := range ids {
		b, ok := r.t.st.bookings[id]
		if !ok || !b.IsConfirmed() {
			continue
		}
		r.t.st.bookings[id] = *booking.ReconstructBooking(
			b.ID(), b.SessionID(), b.SwimmerID(), b.ParentID(),
			upd.Status, b.Type(),
			b.BatchID(), b.PurchaseOrderID(), b.RequestID(),
			upd.CancelReason, upd.CancelSource, upd.CanceledAt, upd.CanceledBy,
			b.CreatedAt(), upd.UpdatedAt,
		)
		n++
	}
	return n, nil
}

func (r bookingRepo) IDsByRequest(_ context.Context, _ sqlc.DBTX, requestID uuid.UUID) ([]uuid.UUID, error) {
	var out []booking.Booking
	for _, b := range r.t.st.bookings {
		if b.RequestID() != nil && *b.RequestID() == requestID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b booking.Booking) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return compareUUID(a.ID(), b.ID())
	})
	ids := make([]uuid.UUID, len(out))
	for i, b := range out {
		ids[i] = b.ID()
	}
	return ids, nil
}

func (r bookingRepo) sortedIDs() []uuid.UUID {
	ids := slices.Collect(maps.Keys(r.t.st.bookings))
	slices.SortFunc(ids, compareUUID)
	return ids
}

type swimmerRepo struct{ t *tx }

func (r swimmerRepo) GetForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*swimmer.Swimmer, error) {
	s, ok := r.t.st.swimmers[id]
	if !ok {
		return nil, notFound("swimmer not found")
	}
	return &s, nil
}

func (r swimmerRepo) SaveFlags(_ context.Context, _ sqlc.DBTX, s *swimmer.Swimmer) error {
	r.t.st.swimmers[s.ID()] = *s
	return nil
}

type orderRepo struct{ t *tx }

func (r orderRepo) LockUsableForSwimmer(_ context.Context, _ sqlc.DBTX, swimmerID uuid.UUID, on time.Time) (*purchaseorder.PurchaseOrder, error) {
	for _, p := range r.t.st.orders {
		if p.SwimmerID() == swimmerID && p.Status().IsUsable() && p.Covers(on) {
			return &p, nil
		}
	}
	return nil, notFound("no usable purchase order")
}

func (r orderRepo) LockForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*purchaseorder.PurchaseOrder, error) {
	p, ok := r.t.st.orders[id]
	if !ok {
		return nil, notFound("purchase order not found")
	}
	return &p, nil
}

func (r orderRepo) SaveUsage(_ context.Context, _ sqlc.DBTX, p *purchaseorder.PurchaseOrder) error {
	if p.SessionsBooked() > p.SessionsAuthorized() {
		return infra.WrapRepoErr("purchase order over-reserved", nil, infra.KindConflict)
	}
	r.t.st.orders[p.ID()] = *p
	return nil
}

type floatRepo struct{ t *tx }

func (r floatRepo) Create(_ context.Context, _ sqlc.DBTX, f *floating.FloatingSession) error {
	if r.t.store.FailFloating {
		return infra.WrapRepoErr("floating session insert failed", nil, infra.KindDBFailure)
	}
	r.t.st.floats[f.ID()] = *f
	return nil
}

type cancellationRepo struct{ t *tx }

func (r cancellationRepo) Create(_ context.Context, _ sqlc.DBTX, rec *cancellation.Record) error {
	r.t.st.cancellations = append(r.t.st.cancellations, *rec)
	return nil
}

type assessmentRepo struct{ t *tx }

func (r assessmentRepo) CancelForBooking(_ context.Context, _ sqlc.DBTX, bookingID uuid.UUID, _ time.Time) (int64, error) {
	r.t.st.assessments[bookingID]++
	return 1, nil
}

type idempotencyRepo struct{ t *tx }

func (r idempotencyRepo) TryInsert(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, endpoint, hash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key, userID}
	if _, ok := r.t.st.idempotency[k]; ok {
		return false, nil
	}
	r.t.st.idempotency[k] = shared.IdempotencyRecord{
		Key: key, UserID: userID, Endpoint: endpoint,
		Status: shared.IdempotencyStatusProcessing, RequestHash: hash, ExpiresAt: expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) GetForUpdate(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.t.st.idempotency[idemKey{key, userID}]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}

func (r idempotencyRepo) ClaimExpired(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, endpoint, hash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key, userID}
	if _, ok := r.t.st.idempotency[k]; !ok {
		return false, nil
	}
	r.t.st.idempotency[k] = shared.IdempotencyRecord{
		Key: key, UserID: userID, Endpoint: endpoint,
		Status: shared.IdempotencyStatusProcessing, RequestHash: hash, ExpiresAt: expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) Complete(_ context.Context, _ sqlc.DBTX, key, userID, resultRequestID uuid.UUID) error {
	k := idemKey{key, userID}
	rec, ok := r.t.st.idempotency[k]
	if !ok {
		return notFound("idempotency key not found")
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultRequestID = &resultRequestID
	r.t.st.idempotency[k] = rec
	return nil
}

type notificationRepo struct{ t *tx }

func (r notificationRepo) CreateJob(_ context.Context, _ sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.t.st.jobs = append(r.t.st.jobs, Job{
		NotificationJob: shared.NotificationJob{ID: uuid.New(), Kind: kind, Topic: topic, Payload: payload},
		RunAt:           runAt,
		Status:          "queued",
	})
	return nil
}

func (r notificationRepo) ClaimDue(_ context.Context, _ sqlc.DBTX, now time.Time, limit int32) ([]shared.NotificationJob, error) {
	due := make([]Job, 0)
	for _, j := range r.t.st.jobs {
		if j.Status == "queued" && !j.RunAt.After(now) {
			due = append(due, j)
		}
	}
	slices.SortStableFunc(due, func(a, b Job) int { return a.RunAt.Compare(b.RunAt) })
	if len(due) > int(limit) {
		due = due[:limit]
	}
	out := make([]shared.NotificationJob, len(due))
	for i, j := range due {
		out[i] = j.NotificationJob
	}
	return out, nil
}

func (r notificationRepo) MarkSent(_ context.Context, _ sqlc.DBTX, jobID uuid.UUID) error {
	return r.update(jobID, func(j *Job) { j.Status = "sent" })
}

func (r notificationRepo) MarkFailed(_ context.Context, _ sqlc.DBTX, jobID uuid.UUID, lastError string, retryAt time.Time, final bool) error {
	return r.update(jobID, func(j *Job) {
		j.Attempts++
		j.LastError = lastError
		j.RunAt = retryAt
		if final {
			j.Status = "failed"
		}
	})
}

func (r notificationRepo) update(id uuid.UUID, fn func(*Job)) error {
	for i := range r.t.st.jobs {
		if r.t.st.jobs[i].ID == id {
			fn(&r.t.st.jobs[i])
			return nil
		}
	}
	return notFound("notification job not found")
}

func compareUUID(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}

//go:build unit

package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/notify"
	"swimbooking/internal/usecase/queries"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecipients map[uuid.UUID]*queries.AuthorizedUserView

func (f fakeRecipients) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, queries.ErrUserNotFound
}

type fakeRenderer struct{ err error }

func (r fakeRenderer) Render(ev shared.BookingEvent, name string) (notify.Message, error) {
	if r.err != nil {
		return notify.Message{}, r.err
	}
	return notify.Message{Subject: ev.Kind, HTML: "<p>" + name + "</p>"}, nil
}

type sentMail struct{ to, subject, html string }

type fakeSender struct {
	err  error
	sent []sentMail
}

func (s *fakeSender) Send(_ context.Context, to, subject, html string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to, subject, html})
	return nil
}

func TestDispatcher_Handle(t *testing.T) {
	ctx := context.Background()
	parentID := uuid.New()
	inactiveID := uuid.New()
	recipients := fakeRecipients{
		parentID:   {ID: parentID, Email: "maria@example.com", FullName: "Maria Lopez", IsActive: true},
		inactiveID: {ID: inactiveID, Email: "gone@example.com", FullName: "Gone", IsActive: false},
	}
	start := time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC)
	event := func(parent uuid.UUID) []byte {
		body, err := json.Marshal(shared.BookingEvent{
			Kind:         shared.EventBookingCreated,
			ParentID:     parent,
			BookingIDs:   []uuid.UUID{uuid.New()},
			SessionStart: &start,
			OccurredAt:   start.Add(-72 * time.Hour),
		})
		require.NoError(t, err)
		return body
	}

	testCases := []struct {
		name       string
		body       []byte
		renderErr  error
		sendErr    error
		expectSent bool
		malformed  bool
		expectErr  bool
	}{
		{name: "sends to the parent", body: event(parentID), expectSent: true},
		{name: "inactive parent is skipped", body: event(inactiveID)},
		{name: "invalid json", body: []byte(`{not json`), malformed: true, expectErr: true},
		{name: "missing parent id", body: []byte(`{"kind":"booking.created"}`), malformed: true, expectErr: true},
		{name: "unknown kind cannot render", body: event(parentID), renderErr: errors.New("no template"), malformed: true, expectErr: true},
		{name: "unknown parent is retried", body: event(uuid.New()), expectErr: true},
		{name: "send failure is retried", body: event(parentID), sendErr: errors.New("resend: 503"), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sender := &fakeSender{err: tc.sendErr}
			d := notify.NewDispatcher(recipients, fakeRenderer{err: tc.renderErr}, sender)

			err := d.Handle(ctx, tc.body)

			if tc.expectErr {
				require.Error(t, err)
				assert.Equal(t, tc.malformed, errs.Is(err, notify.ErrMalformedEvent))
			} else {
				require.NoError(t, err)
			}
			if tc.expectSent {
				require.Len(t, sender.sent, 1)
				assert.Equal(t, "maria@example.com", sender.sent[0].to)
				assert.Equal(t, shared.EventBookingCreated, sender.sent[0].subject)
				assert.Contains(t, sender.sent[0].html, "Maria Lopez")
			} else {
				assert.Empty(t, sender.sent)
			}
		})
	}
}

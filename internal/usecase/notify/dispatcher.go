package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/queries"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrMalformedEvent = errs.New("malformed booking event")

type Message struct {
	Subject string
	HTML    string
}

type Renderer interface {
	Render(ev shared.BookingEvent, recipientName string) (Message, error)
}

type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type RecipientStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
}

// Dispatcher turns a booking event from the broker into a parent email.
type Dispatcher struct {
	recipients RecipientStore
	renderer   Renderer
	sender     Sender
}

func NewDispatcher(recipients RecipientStore, renderer Renderer, sender Sender) *Dispatcher {
	return &Dispatcher{recipients: recipients, renderer: renderer, sender: sender}
}

// Handle returns ErrMalformedEvent for payloads that can never succeed so the
// consumer can drop them instead of requeueing.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) error {
	var ev shared.BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return errs.Mark(err, ErrMalformedEvent)
	}
	if ev.Kind == "" || ev.ParentID == uuid.Nil {
		return ErrMalformedEvent
	}

	parent, err := d.recipients.FindByID(ctx, ev.ParentID)
	if err != nil {
		return errs.Wrapf(err, "failed to resolve parent %s", ev.ParentID)
	}
	if !parent.IsActive || parent.Email == "" {
		slog.Info("skipping notification for inactive parent", "parent_id", ev.ParentID, "kind", ev.Kind)
		return nil
	}

	msg, err := d.renderer.Render(ev, parent.FullName)
	if err != nil {
		return errs.Mark(err, ErrMalformedEvent)
	}

	if err := d.sender.Send(ctx, parent.Email, msg.Subject, msg.HTML); err != nil {
		return errs.Wrap(err, "failed to send notification email")
	}
	slog.Info("notification sent", "kind", ev.Kind, "parent_id", ev.ParentID, "bookings", len(ev.BookingIDs))
	return nil
}

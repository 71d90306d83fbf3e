package calendar

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

// Lister is the slice of the repository a session needs for its
// initial load.
type Lister interface {
	ListByRoom(ctx context.Context, sala string) ([]domain.Booking, error)
}

// Frame is one message pushed to a connected calendar client.
type Frame struct {
	Type    string  `json:"type"` // snapshot|insert|update|delete|error
	Events  []Event `json:"events,omitempty"`
	Event   *Event  `json:"event,omitempty"`
	ID      string  `json:"id,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Session is one mounted calendar view: an initial load plus a live
// subscription folded through a View and mirrored to the client as
// frames. Exactly one feed subscription per session; Run tears it
// down on the way out.
type Session struct {
	view   *View
	lister Lister
	events <-chan domain.ChangeEvent
	cancel func()
	log    *zap.Logger
}

func NewSession(room string, lister Lister, events <-chan domain.ChangeEvent, cancel func(), log *zap.Logger) *Session {
	return &Session{
		view:   NewView(room),
		lister: lister,
		events: events,
		cancel: cancel,
		log:    log,
	}
}

// Run loads the room's bookings, sends the snapshot, then streams
// deltas until the context ends, the feed closes, or send fails.
func (s *Session) Run(ctx context.Context, send func(Frame) error) error {
	defer s.cancel()

	bookings, err := s.lister.ListByRoom(ctx, s.view.Room())
	if err != nil {
		ferr := domain.NewFetchError(err)
		s.log.Error("initial load", zap.String("sala", s.view.Room()), zap.Error(err))
		_ = send(Frame{Type: "error", Message: ferr.Banner()})
		return ferr
	}
	s.view.Reload(bookings)
	if err := send(Frame{Type: "snapshot", Events: s.view.Events()}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.events:
			if !ok {
				return errors.New("feed subscription closed")
			}
			if !s.view.Apply(ev) {
				continue
			}
			if err := send(s.frame(ev)); err != nil {
				return err
			}
		}
	}
}

func (s *Session) frame(ev domain.ChangeEvent) Frame {
	switch ev.EventType {
	case domain.EventInsert:
		e := Project(*ev.New)
		return Frame{Type: "insert", Event: &e}
	case domain.EventUpdate:
		e := Project(*ev.New)
		return Frame{Type: "update", Event: &e}
	default:
		return Frame{Type: "delete", ID: ev.Old.ID}
	}
}

// View exposes the session's reconciled state, mainly for tests.
func (s *Session) View() *View { return s.view }

package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

type fakeLister struct {
	rows []domain.Booking
	err  error
}

func (f *fakeLister) ListByRoom(ctx context.Context, sala string) ([]domain.Booking, error) {
	return f.rows, f.err
}

type frameSink struct {
	mu     sync.Mutex
	frames []Frame
}

func (s *frameSink) send(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
	return nil
}

func (s *frameSink) snapshot() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

func TestSessionSnapshotThenDeltas(t *testing.T) {
	lister := &fakeLister{rows: []domain.Booking{
		booking("a", "Sala 1", "2024-01-01T09:00:00Z", t),
	}}
	events := make(chan domain.ChangeEvent)
	cancelled := false
	sess := NewSession("Sala 1", lister, events, func() { cancelled = true }, zap.NewNop())

	sink := &frameSink{}
	done := make(chan error, 1)
	go func() { done <- sess.Run(context.Background(), sink.send) }()

	inSala := booking("b", "Sala 1", "2024-01-02T09:00:00Z", t)
	events <- domain.ChangeEvent{EventType: domain.EventInsert, New: &inSala}

	elsewhere := booking("c", "Sala 2", "2024-01-02T09:00:00Z", t)
	events <- domain.ChangeEvent{EventType: domain.EventInsert, New: &elsewhere}

	old := booking("a", "Sala 1", "2024-01-01T09:00:00Z", t)
	events <- domain.ChangeEvent{EventType: domain.EventDelete, Old: &old}

	close(events)
	require.Error(t, <-done) // closed feed ends the session

	frames := sink.snapshot()
	require.Len(t, frames, 3) // other-room insert produced no frame

	assert.Equal(t, "snapshot", frames[0].Type)
	require.Len(t, frames[0].Events, 1)
	assert.Equal(t, "a", frames[0].Events[0].ID)

	assert.Equal(t, "insert", frames[1].Type)
	assert.Equal(t, "b", frames[1].Event.ID)

	assert.Equal(t, "delete", frames[2].Type)
	assert.Equal(t, "a", frames[2].ID)

	assert.True(t, cancelled, "subscription must be cancelled on exit")
	assert.Equal(t, 1, sess.View().Len())
}

func TestSessionStopsOnContextCancel(t *testing.T) {
	lister := &fakeLister{}
	events := make(chan domain.ChangeEvent)
	sess := NewSession("Sala 1", lister, events, func() {}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	sink := &frameSink{}
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx, sink.send) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session did not stop on cancel")
	}
}

func TestSessionFetchFailureSendsBanner(t *testing.T) {
	lister := &fakeLister{err: errors.New("db down")}
	events := make(chan domain.ChangeEvent)
	sess := NewSession("Sala 1", lister, events, func() {}, zap.NewNop())

	sink := &frameSink{}
	err := sess.Run(context.Background(), sink.send)

	var berr *domain.BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, domain.OpFetch, berr.Op)

	frames := sink.snapshot()
	require.Len(t, frames, 1)
	assert.Equal(t, "error", frames[0].Type)
	assert.Equal(t, "Errore nel caricamento delle prenotazioni", frames[0].Message)
}

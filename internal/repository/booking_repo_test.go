package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

func newTestRepo(t *testing.T) *BookingRepo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	r := NewBookingRepo(gdb)
	require.NoError(t, r.Migrate())
	return r
}

func seed(t *testing.T, r *BookingRepo, sala, start string) *domain.Booking {
	t.Helper()
	st, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	b := &domain.Booking{
		Room:      sala,
		Start:     st,
		Requester: "Bob",
		Vendor:    "Acme",
		Headcount: 2,
	}
	require.NoError(t, r.Create(context.Background(), b))
	return b
}

func TestCreateAssignsID(t *testing.T) {
	r := newTestRepo(t)
	b := seed(t, r, "Sala 1", "2024-01-01T09:00:00Z")
	assert.NotEmpty(t, b.ID)

	got, err := r.ByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Requester)
	assert.Nil(t, got.End)
}

func TestListByRoomFiltersAndOrders(t *testing.T) {
	r := newTestRepo(t)
	seed(t, r, "Sala 1", "2024-01-03T09:00:00Z")
	seed(t, r, "Sala 1", "2024-01-01T09:00:00Z")
	seed(t, r, "Sala 2", "2024-01-02T09:00:00Z")

	out, err := r.ListByRoom(context.Background(), "Sala 1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, b := range out {
		assert.Equal(t, "Sala 1", b.Room)
	}
	assert.True(t, out[0].Start.Before(out[1].Start))

	empty, err := r.ListByRoom(context.Background(), "Sala 3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestByIDNotFound(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.ByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateMergesFields(t *testing.T) {
	r := newTestRepo(t)
	b := seed(t, r, "Sala 1", "2024-01-01T09:00:00Z")

	got, err := r.Update(context.Background(), b.ID, map[string]any{"fornitore": "Globex"})
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.Vendor)
	assert.Equal(t, "Bob", got.Requester) // untouched
	assert.Equal(t, "Sala 1", got.Room)
}

func TestUpdateClearsEnd(t *testing.T) {
	r := newTestRepo(t)
	b := seed(t, r, "Sala 1", "2024-01-01T09:00:00Z")
	end := b.Start.Add(time.Hour)
	_, err := r.Update(context.Background(), b.ID, map[string]any{"data_ora_fine": end})
	require.NoError(t, err)

	got, err := r.Update(context.Background(), b.ID, map[string]any{"data_ora_fine": nil})
	require.NoError(t, err)
	assert.Nil(t, got.End)
}

func TestUpdateNotFound(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.Update(context.Background(), "missing", map[string]any{"utente": "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteReportsExistence(t *testing.T) {
	r := newTestRepo(t)
	b := seed(t, r, "Sala 1", "2024-01-01T09:00:00Z")

	found, err := r.Delete(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = r.Delete(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOverlappingBookingsAreAccepted(t *testing.T) {
	r := newTestRepo(t)
	seed(t, r, "Sala 1", "2024-01-01T09:00:00Z")
	seed(t, r, "Sala 1", "2024-01-01T09:00:00Z")

	out, err := r.ListByRoom(context.Background(), "Sala 1")
	require.NoError(t, err)
	assert.Len(t, out, 2) // no overlap constraint anywhere
}

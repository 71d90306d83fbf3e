package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func booking(id, sala, start string, t *testing.T) domain.Booking {
	t.Helper()
	return domain.Booking{
		ID:        id,
		Room:      sala,
		Start:     ts(t, start),
		Requester: "Bob",
		Vendor:    "Acme",
		Headcount: 2,
	}
}

func TestProjectTitleAndShape(t *testing.T) {
	b := domain.Booking{
		ID:        "1",
		Room:      "A",
		Start:     ts(t, "2024-01-01T09:00:00Z"),
		Requester: "Bob",
		Vendor:    "Acme",
		Headcount: 2,
	}
	e := Project(b)
	assert.Equal(t, "Bob - Acme (2 pers.)", e.Title)
	assert.Equal(t, ts(t, "2024-01-01T09:00:00Z"), e.Start)
	assert.Nil(t, e.End)
	assert.False(t, e.AllDay)
	assert.Equal(t, "A", e.Extended.Sala)
}

func TestReloadSortsByStart(t *testing.T) {
	v := NewView("Sala 1")
	v.Reload([]domain.Booking{
		booking("b", "Sala 1", "2024-01-02T09:00:00Z", t),
		booking("a", "Sala 1", "2024-01-01T09:00:00Z", t),
		booking("c", "Sala 1", "2024-01-03T09:00:00Z", t),
	})
	got := v.Events()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestApplyDeleteMatchesAnyRoom(t *testing.T) {
	v := NewView("Sala 1")
	v.Reload([]domain.Booking{booking("x", "Sala 1", "2024-01-01T09:00:00Z", t)})

	// delete payloads may lack a reliable room on the old row, so the
	// match is by id only
	other := booking("x", "Sala 2", "2024-01-01T09:00:00Z", t)
	assert.True(t, v.Apply(domain.ChangeEvent{EventType: domain.EventDelete, Old: &other}))
	assert.Equal(t, 0, v.Len())
}

func TestApplyDeleteAbsentIsNoop(t *testing.T) {
	v := NewView("Sala 1")
	v.Reload([]domain.Booking{booking("x", "Sala 1", "2024-01-01T09:00:00Z", t)})

	gone := booking("nope", "Sala 1", "2024-01-01T09:00:00Z", t)
	assert.False(t, v.Apply(domain.ChangeEvent{EventType: domain.EventDelete, Old: &gone}))
	assert.Equal(t, 1, v.Len())

	assert.False(t, v.Apply(domain.ChangeEvent{EventType: domain.EventDelete}))
	assert.Equal(t, 1, v.Len())
}

func TestApplyInsertFiltersByRoom(t *testing.T) {
	v := NewView("Sala 1")
	v.Reload(nil)

	elsewhere := booking("y", "Sala 2", "2024-01-01T09:00:00Z", t)
	assert.False(t, v.Apply(domain.ChangeEvent{EventType: domain.EventInsert, New: &elsewhere}))
	assert.Equal(t, 0, v.Len())

	here := booking("z", "Sala 1", "2024-01-01T09:00:00Z", t)
	assert.True(t, v.Apply(domain.ChangeEvent{EventType: domain.EventInsert, New: &here}))
	assert.Equal(t, 1, v.Len())
}

func TestApplyInsertDoesNotResort(t *testing.T) {
	v := NewView("Sala 1")
	v.Reload([]domain.Booking{booking("late", "Sala 1", "2024-01-05T09:00:00Z", t)})

	early := booking("early", "Sala 1", "2024-01-01T09:00:00Z", t)
	require.True(t, v.Apply(domain.ChangeEvent{EventType: domain.EventInsert, New: &early}))

	got := v.Events()
	require.Len(t, got, 2)
	// appended, not sorted in: the grid places events by their own
	// start, list order is display-irrelevant
	assert.Equal(t, "late", got[0].ID)
	assert.Equal(t, "early", got[1].ID)
}

func TestApplyUpdateReplacesInPlace(t *testing.T) {
	v := NewView("Sala 1")
	v.Reload([]domain.Booking{
		booking("a", "Sala 1", "2024-01-01T09:00:00Z", t),
		booking("b", "Sala 1", "2024-01-02T09:00:00Z", t),
	})

	updated := booking("a", "Sala 1", "2024-01-01T10:00:00Z", t)
	updated.Requester = "Alice"
	require.True(t, v.Apply(domain.ChangeEvent{EventType: domain.EventUpdate, New: &updated}))

	got := v.Events()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID) // position preserved
	assert.Equal(t, "Alice - Acme (2 pers.)", got[0].Title)
	assert.Equal(t, ts(t, "2024-01-01T10:00:00Z"), got[0].Start)
}

func TestApplyUpdateOtherRoomIsDropped(t *testing.T) {
	v := NewView("Sala 1")
	v.Reload([]domain.Booking{booking("a", "Sala 1", "2024-01-01T09:00:00Z", t)})

	// a booking moved to another room stays in this view untouched
	moved := booking("a", "Sala 2", "2024-01-01T09:00:00Z", t)
	assert.False(t, v.Apply(domain.ChangeEvent{EventType: domain.EventUpdate, New: &moved}))
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, "Sala 1", v.Events()[0].Extended.Sala)
}

func TestApplyUpdateUnknownIDIsNoop(t *testing.T) {
	v := NewView("Sala 1")
	v.Reload(nil)

	u := booking("ghost", "Sala 1", "2024-01-01T09:00:00Z", t)
	assert.False(t, v.Apply(domain.ChangeEvent{EventType: domain.EventUpdate, New: &u}))
	assert.Equal(t, 0, v.Len())
}

func TestOptimisticDeleteAndRevert(t *testing.T) {
	v := NewView("Sala 1")
	v.Reload([]domain.Booking{
		booking("a", "Sala 1", "2024-01-01T09:00:00Z", t),
		booking("b", "Sala 1", "2024-01-02T09:00:00Z", t),
	})

	removed, ok := v.RemoveOptimistic("b")
	require.True(t, ok)
	require.Equal(t, 1, v.Len())
	assert.Equal(t, "a", v.Events()[0].ID)

	// backend refused: the event comes back, appended at the end
	v.Revert(removed)
	got := v.Events()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].ID)

	_, ok = v.RemoveOptimistic("missing")
	assert.False(t, ok)
}

package calendar

import (
	"sort"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

// View holds the event list for one displayed room and folds the
// change feed into it. Not safe for concurrent use: each calendar
// session owns exactly one.
//
// The list is strictly sorted only right after Reload. Later inserts
// append and reverts re-append, so iteration order can drift from
// start-time order; the grid positions events by their own start/end,
// so only order-sensitive consumers care.
type View struct {
	room   string
	events []Event
}

func NewView(room string) *View {
	return &View{room: room}
}

func (v *View) Room() string { return v.room }

// Reload replaces the list wholesale with the fetch result, sorted
// ascending by start.
func (v *View) Reload(bookings []domain.Booking) {
	v.events = make([]Event, 0, len(bookings))
	for _, b := range bookings {
		v.events = append(v.events, Project(b))
	}
	sort.SliceStable(v.events, func(i, j int) bool {
		return v.events[i].Start.Before(v.events[j].Start)
	})
}

// Apply folds one feed event into the list and reports whether the
// list changed.
//
// DELETE matches by the prior row's id regardless of room: delete
// payloads don't always carry a reliable room on the old row, and ids
// are globally unique, so matching by id alone is safe.
// INSERT and UPDATE are filtered by the displayed room. An UPDATE that
// moves a booking into another room is dropped here rather than
// removed from this view.
func (v *View) Apply(ev domain.ChangeEvent) bool {
	switch ev.EventType {
	case domain.EventDelete:
		if ev.Old == nil {
			return false
		}
		return v.remove(ev.Old.ID)
	case domain.EventInsert:
		if ev.New == nil || ev.New.Room != v.room {
			return false
		}
		v.events = append(v.events, Project(*ev.New))
		return true
	case domain.EventUpdate:
		if ev.New == nil || ev.New.Room != v.room {
			return false
		}
		for i := range v.events {
			if v.events[i].ID == ev.New.ID {
				v.events[i] = Project(*ev.New)
				return true
			}
		}
		return false
	}
	return false
}

// RemoveOptimistic drops the event before the backend confirms the
// delete, returning it so a failed call can Revert it.
func (v *View) RemoveOptimistic(id string) (Event, bool) {
	for i := range v.events {
		if v.events[i].ID == id {
			e := v.events[i]
			v.events = append(v.events[:i], v.events[i+1:]...)
			return e, true
		}
	}
	return Event{}, false
}

// Revert re-appends an optimistically removed event. It lands at the
// end, not at its original position.
func (v *View) Revert(e Event) {
	v.events = append(v.events, e)
}

// Events returns a copy of the current list.
func (v *View) Events() []Event {
	out := make([]Event, len(v.events))
	copy(out, v.events)
	return out
}

func (v *View) Len() int { return len(v.events) }

func (v *View) remove(id string) bool {
	for i := range v.events {
		if v.events[i].ID == id {
			v.events = append(v.events[:i], v.events[i+1:]...)
			return true
		}
	}
	return false
}

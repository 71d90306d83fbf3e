package domain

const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// ChangeEvent is the realtime feed payload describing one row-level
// change to prenotazioni. DELETE carries only the prior row, INSERT
// only the new one, UPDATE both.
type ChangeEvent struct {
	EventType string   `json:"eventType"`
	New       *Booking `json:"new,omitempty"`
	Old       *Booking `json:"old,omitempty"`
}

// Routing keys the change events are published under.
const (
	KeyInserted = "prenotazioni.inserted"
	KeyUpdated  = "prenotazioni.updated"
	KeyDeleted  = "prenotazioni.deleted"
)

func (e ChangeEvent) RoutingKey() string {
	switch e.EventType {
	case EventInsert:
		return KeyInserted
	case EventUpdate:
		return KeyUpdated
	default:
		return KeyDeleted
	}
}

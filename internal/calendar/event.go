package calendar

import (
	"fmt"
	"time"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

// Event is the calendar projection of one booking, shaped the way the
// grid widget consumes it.
type Event struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Start    time.Time     `json:"start"`
	End      *time.Time    `json:"end,omitempty"`
	AllDay   bool          `json:"allDay"`
	Extended ExtendedProps `json:"extendedProps"`
}

type ExtendedProps struct {
	Utente        string `json:"utente"`
	Fornitore     string `json:"fornitore"`
	Sala          string `json:"sala"`
	NumeroPersone int    `json:"numero_persone"`
}

func Project(b domain.Booking) Event {
	return Event{
		ID:     b.ID,
		Title:  fmt.Sprintf("%s - %s (%d pers.)", b.Requester, b.Vendor, b.Headcount),
		Start:  b.Start,
		End:    b.End,
		AllDay: false,
		Extended: ExtendedProps{
			Utente:        b.Requester,
			Fornitore:     b.Vendor,
			Sala:          b.Room,
			NumeroPersone: b.Headcount,
		},
	}
}

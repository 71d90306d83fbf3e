package domain

// Room is a bookable meeting room. The catalog is a small fixed set,
// not data-driven.
type Room struct {
	Name  string `json:"nome"`
	Color string `json:"colore"`
}

var Rooms = []Room{
	{Name: "Sala 1", Color: "#2563eb"},
	{Name: "Sala 2", Color: "#16a34a"},
	{Name: "Sala 3", Color: "#d97706"},
	{Name: "Sala 4", Color: "#dc2626"},
}

func RoomByName(name string) (Room, bool) {
	for _, r := range Rooms {
		if r.Name == name {
			return r, true
		}
	}
	return Room{}, false
}

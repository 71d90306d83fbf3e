package domain

import "time"

// Booking is one row of the prenotazioni table. Column and JSON names
// keep the Italian field names the clients already speak.
type Booking struct {
	ID        string     `gorm:"primaryKey;column:id" json:"id"`
	Room      string     `gorm:"column:sala;index" json:"sala"`
	Start     time.Time  `gorm:"column:data_ora;index" json:"data_ora"`
	End       *time.Time `gorm:"column:data_ora_fine" json:"data_ora_fine,omitempty"` // nil = open-ended
	Requester string     `gorm:"column:utente" json:"utente"`
	Vendor    string     `gorm:"column:fornitore" json:"fornitore"`
	Headcount int        `gorm:"column:numero_persone" json:"numero_persone"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Booking) TableName() string { return "prenotazioni" }

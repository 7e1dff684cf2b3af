package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ArtistID uint   `json:"artist_id"`
	Artist   Artist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"artist"`

	RoomID uint `json:"room_id"`
	Room   Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"room"`

	CustomerPhone string `gorm:"size:20" json:"customer_phone"`
	CustomerName  string `gorm:"size:100" json:"customer_name"`

	StartTime   time.Time `json:"start_time"`
	DurationMin int       `json:"duration_min"`

	Status string `gorm:"size:20;default:'confermato'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appuntamenti"
}

// EndTime = inizio + durata; gli intervalli sono semiaperti [start, end).
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMin) * time.Minute)
}

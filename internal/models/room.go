package models

import "time"

// Stanza dello studio. NoOverbooking=true rende bloccante qualsiasi
// sovrapposizione che tocca la stanza.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name          string `gorm:"size:100;not null" json:"name"`
	NoOverbooking bool   `gorm:"default:false" json:"no_overbooking"`
	Active        bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Room) TableName() string {
	return "stanze"
}

package models

import "time"

// Tatuatore dello studio. Disattivato (active=false) finché esistono
// appuntamenti non cancellati che lo referenziano; hard delete solo a zero.
type Artist struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Artist) TableName() string {
	return "tatuatori"
}

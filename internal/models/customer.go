package models

import "time"

// Anagrafica cliente, chiave naturale = telefono (normalizzato E.164).
// Upsert condiviso da gift card, consensi e appuntamenti.
type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Phone string `gorm:"size:20;uniqueIndex;not null" json:"phone"`

	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`

	Email      *string    `gorm:"size:100" json:"email"`
	BirthDate  *time.Time `json:"birth_date"`
	BirthPlace *string    `gorm:"size:100" json:"birth_place"`
	FiscalCode *string    `gorm:"size:16" json:"fiscal_code"`
	Address    *string    `gorm:"size:255" json:"address"`
	City       *string    `gorm:"size:100" json:"city"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

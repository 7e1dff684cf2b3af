package models

import "time"

// Consenso informato: il payload è il form completo, opaco per lo storage.
// Il link a customer e gift card è best effort (risolto per telefono).
type Consent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Type  string `gorm:"size:30;not null" json:"type"`
	Phone string `gorm:"size:20" json:"phone"`

	Payload string `gorm:"type:jsonb" json:"payload"`

	CustomerID *uint `json:"customer_id"`
	GiftCardID *uint `json:"gift_card_id"`

	SubmittedAt time.Time `json:"submitted_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Consent) TableName() string {
	return "consensi"
}

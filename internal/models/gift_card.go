package models

import "time"

type GiftCard struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Status string `gorm:"size:20;default:'draft'" json:"status"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:3;default:'EUR'" json:"currency"`

	ExpiresAt time.Time `json:"expires_at"`

	// Credenziale monouso per la personalizzazione; azzerata al claim.
	ClaimToken          *string    `gorm:"size:64;uniqueIndex" json:"-"`
	ClaimTokenExpiresAt *time.Time `json:"-"`
	ClaimedAt           *time.Time `json:"claimed_at"`

	CustomerID *uint     `json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	// Null finché la card non diventa active; unico una volta assegnato.
	Code *string `gorm:"size:16;uniqueIndex" json:"code"`

	HolderFirstName string     `gorm:"size:100" json:"holder_first_name"`
	HolderLastName  string     `gorm:"size:100" json:"holder_last_name"`
	HolderEmail     string     `gorm:"size:100" json:"holder_email"`
	HolderPhone     string     `gorm:"size:20" json:"holder_phone"`
	HolderBirthDate *time.Time `json:"holder_birth_date"`

	Dedication string `gorm:"size:500" json:"dedication"`
	Consents   string `gorm:"type:jsonb" json:"consents"`

	UsedAt *time.Time `json:"used_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GiftCard) TableName() string {
	return "gift_cards"
}

package giftcard

import (
	"time"

	"github.com/inklab/studio-manager/internal/httperr"
)

// ===============================
// Gift Card Status
// ===============================

type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusUsed    Status = "used"
	StatusExpired Status = "expired"
)

// ===============================
// Validations
// ===============================

// CanClaim: solo una card ancora draft è rivendicabile.
func CanClaim(current Status) error {
	if current != StatusDraft {
		return httperr.ErrBusiness("token_not_claimable")
	}
	return nil
}

// CanMarkUsed: il timbro d'uso vale solo su una card active.
func CanMarkUsed(current Status) error {
	if current != StatusActive {
		return httperr.ErrBusiness("gift_card_not_active")
	}
	return nil
}

// ComputedStatus è la nozione di scadenza derivata da expires_at, usata da
// dashboard e verifica pubblica. Lo status persistito resta indipendente e
// non viene riconciliato da nessun job: la divergenza è del gestionale.
func ComputedStatus(persisted Status, expiresAt time.Time, now time.Time) Status {
	if (persisted == StatusDraft || persisted == StatusActive) && expiresAt.Before(now) {
		return StatusExpired
	}
	return persisted
}

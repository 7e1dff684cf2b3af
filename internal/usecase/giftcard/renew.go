package giftcard

import (
	"context"
	"time"

	"github.com/inklab/studio-manager/internal/audit"
	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/models"
	"github.com/inklab/studio-manager/internal/timezone"
)

type RenewGiftCard struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	validityDays  int
	tokenTTLHours int
}

func NewRenewGiftCard(
	repo domain.Repository,
	audit *audit.Dispatcher,
	validityDays int,
	tokenTTLHours int,
) *RenewGiftCard {
	return &RenewGiftCard{
		repo:          repo,
		audit:         audit,
		validityDays:  validityDays,
		tokenTTLHours: tokenTTLHours,
	}
}

// Execute imposta la nuova scadenza (now + finestra di validità). Solo se
// il letterale è esattamente 'expired' lo status torna a 'draft' (mai
// rivendicata) o 'active' (già rivendicata); una card con expires_at
// passato ma letterale intatto non viene toccata nello status.
func (uc *RenewGiftCard) Execute(
	ctx context.Context,
	id uint,
) (*models.GiftCard, error) {

	var renewed *models.GiftCard

	err := uc.repo.Transaction(ctx, func(r domain.Repository) error {

		gc, err := r.GetGiftCardForUpdate(ctx, id)
		if err != nil {
			return httperr.ErrBusiness("gift_card_not_found")
		}

		now := timezone.Now()
		gc.ExpiresAt = now.AddDate(0, 0, uc.validityDays)

		if gc.Status == string(domain.StatusExpired) {
			if gc.ClaimedAt == nil {
				gc.Status = string(domain.StatusDraft)

				// Il token torna utilizzabile insieme alla card.
				if gc.ClaimToken != nil {
					tokenExpiry := now.Add(time.Duration(uc.tokenTTLHours) * time.Hour)
					gc.ClaimTokenExpiresAt = &tokenExpiry
				}
			} else {
				gc.Status = string(domain.StatusActive)
			}
		}

		if err := r.UpdateGiftCard(ctx, gc); err != nil {
			return err
		}

		renewed = gc
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "gift_card_renewed",
		Entity:   "gift_card",
		EntityID: &renewed.ID,
	})

	return renewed, nil
}

package giftcard

import (
	"context"
	"fmt"
	"time"

	"github.com/inklab/studio-manager/internal/audit"
	"github.com/inklab/studio-manager/internal/domain/customer"
	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/models"
	"github.com/inklab/studio-manager/internal/phone"
	"github.com/inklab/studio-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ClaimInput struct {
	FirstName string
	LastName  string
	Phone     string

	Email     *string
	BirthDate *time.Time

	Dedication string
	Consents   string
}

// ======================================================
// USE CASE
// ======================================================

type ClaimGiftCard struct {
	repo    domain.Repository
	codes   *domain.CodeGenerator
	audit   *audit.Dispatcher
	baseURL string
}

func NewClaimGiftCard(
	repo domain.Repository,
	codes *domain.CodeGenerator,
	audit *audit.Dispatcher,
	baseURL string,
) *ClaimGiftCard {
	return &ClaimGiftCard{
		repo:    repo,
		codes:   codes,
		audit:   audit,
		baseURL: baseURL,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute è l'intero flusso di claim in una transazione: row lock sulla
// card, guardie di stato e scadenza, upsert cliente, assegnazione codice,
// azzeramento del token. Un secondo claim concorrente sulla stessa card
// prende il lock dopo il commit e vede status != draft.
func (uc *ClaimGiftCard) Execute(
	ctx context.Context,
	token string,
	in ClaimInput,
) (*models.GiftCard, string, error) {

	var claimed *models.GiftCard

	err := uc.repo.Transaction(ctx, func(r domain.Repository) error {

		gc, err := r.GetByClaimTokenForUpdate(ctx, token)
		if err != nil {
			return httperr.ErrBusiness("token_not_claimable")
		}

		if err := domain.CanClaim(domain.Status(gc.Status)); err != nil {
			return err
		}

		now := timezone.Now()
		if gc.ClaimTokenExpiresAt != nil && gc.ClaimTokenExpiresAt.Before(now) {
			return httperr.ErrBusiness("claim_token_expired")
		}

		holderPhone := phone.Normalize(in.Phone)

		cust, err := r.UpsertCustomer(ctx, customer.Input{
			Phone:     holderPhone,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			BirthDate: in.BirthDate,
		})
		if err != nil {
			return err
		}

		// Il generatore gira sotto il row lock; il vincolo UNIQUE su code
		// resta comunque l'enforcement autoritativo.
		code, err := uc.codes.Generate(func(candidate string) (bool, error) {
			return r.CodeInUse(ctx, candidate)
		})
		if err != nil {
			return err
		}

		gc.Status = string(domain.StatusActive)
		gc.ClaimedAt = &now
		gc.CustomerID = &cust.ID
		gc.Code = &code

		gc.HolderFirstName = in.FirstName
		gc.HolderLastName = in.LastName
		gc.HolderPhone = holderPhone
		if in.Email != nil {
			gc.HolderEmail = *in.Email
		}
		gc.HolderBirthDate = in.BirthDate
		gc.Dedication = in.Dedication
		gc.Consents = in.Consents

		gc.ClaimToken = nil
		gc.ClaimTokenExpiresAt = nil

		if err := r.UpdateGiftCard(ctx, gc); err != nil {
			return err
		}

		claimed = gc
		return nil
	})

	if err != nil {
		return nil, "", err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "gift_card_claimed",
		Entity:   "gift_card",
		EntityID: &claimed.ID,
	})

	landingURL := fmt.Sprintf("%s/gift-card/%d", uc.baseURL, claimed.ID)
	return claimed, landingURL, nil
}

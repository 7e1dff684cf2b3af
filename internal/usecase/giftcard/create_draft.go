package giftcard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inklab/studio-manager/internal/audit"
	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/models"
	"github.com/inklab/studio-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateDraftInput struct {
	Amount   float64
	Currency string
}

// ======================================================
// USE CASE
// ======================================================

type CreateDraft struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	baseURL       string
	validityDays  int
	tokenTTLHours int
}

func NewCreateDraft(
	repo domain.Repository,
	audit *audit.Dispatcher,
	baseURL string,
	validityDays int,
	tokenTTLHours int,
) *CreateDraft {
	return &CreateDraft{
		repo:          repo,
		audit:         audit,
		baseURL:       baseURL,
		validityDays:  validityDays,
		tokenTTLHours: tokenTTLHours,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute crea la card in stato draft con token di claim monouso e
// ritorna il link da inviare al destinatario.
func (uc *CreateDraft) Execute(
	ctx context.Context,
	in CreateDraftInput,
) (*models.GiftCard, string, error) {

	if in.Amount <= 0 {
		return nil, "", httperr.ErrBusiness("invalid_amount")
	}

	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}

	now := timezone.Now()
	token := uuid.NewString()
	tokenExpiry := now.Add(time.Duration(uc.tokenTTLHours) * time.Hour)

	gc := &models.GiftCard{
		Status:              string(domain.StatusDraft),
		Amount:              in.Amount,
		Currency:            currency,
		ExpiresAt:           now.AddDate(0, 0, uc.validityDays),
		ClaimToken:          &token,
		ClaimTokenExpiresAt: &tokenExpiry,
	}

	if err := uc.repo.CreateGiftCard(ctx, gc); err != nil {
		return nil, "", err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "gift_card_draft_created",
		Entity:   "gift_card",
		EntityID: &gc.ID,
	})

	claimURL := fmt.Sprintf("%s/gift-cards/claim/%s", uc.baseURL, token)
	return gc, claimURL, nil
}

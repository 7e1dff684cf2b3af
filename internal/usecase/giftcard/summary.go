package giftcard

import (
	"context"
	"time"

	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/timezone"
)

// ClaimSummary è quanto la pagina pubblica di personalizzazione può
// mostrare prima del claim: mai dati del titolare.
type ClaimSummary struct {
	GiftCardID uint      `json:"gift_card_id"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type GetClaimSummary struct {
	repo domain.Repository
}

func NewGetClaimSummary(repo domain.Repository) *GetClaimSummary {
	return &GetClaimSummary{repo: repo}
}

func (uc *GetClaimSummary) Execute(
	ctx context.Context,
	token string,
) (*ClaimSummary, error) {

	gc, err := uc.repo.GetByClaimToken(ctx, token)
	if err != nil {
		return nil, httperr.ErrBusiness("token_not_claimable")
	}

	if err := domain.CanClaim(domain.Status(gc.Status)); err != nil {
		return nil, err
	}

	if gc.ClaimTokenExpiresAt != nil && gc.ClaimTokenExpiresAt.Before(timezone.Now()) {
		return nil, httperr.ErrBusiness("claim_token_expired")
	}

	return &ClaimSummary{
		GiftCardID: gc.ID,
		Amount:     gc.Amount,
		Currency:   gc.Currency,
		ExpiresAt:  gc.ExpiresAt,
	}, nil
}

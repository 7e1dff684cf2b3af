package giftcard

import (
	"context"
	"strings"
	"time"

	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/timezone"
)

// VerifyResult è la risposta pubblica: validità e importo, mai dati del
// titolare. Status è la nozione derivata (una active oltre expires_at
// risponde expired anche se il letterale non è aggiornato).
type VerifyResult struct {
	Valid     bool      `json:"valid"`
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VerifyGiftCard struct {
	repo domain.Repository
}

func NewVerifyGiftCard(repo domain.Repository) *VerifyGiftCard {
	return &VerifyGiftCard{repo: repo}
}

func (uc *VerifyGiftCard) Execute(
	ctx context.Context,
	code string,
) (*VerifyResult, error) {

	code = strings.ToUpper(strings.TrimSpace(code))

	gc, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, httperr.ErrBusiness("gift_card_not_found")
	}

	computed := domain.ComputedStatus(
		domain.Status(gc.Status),
		gc.ExpiresAt,
		timezone.Now(),
	)

	return &VerifyResult{
		Valid:     computed == domain.StatusActive,
		Status:    string(computed),
		Amount:    gc.Amount,
		Currency:  gc.Currency,
		ExpiresAt: gc.ExpiresAt,
	}, nil
}

package giftcard

import (
	"context"

	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/models"
	"github.com/inklab/studio-manager/internal/timezone"
)

// AdminView affianca al record lo status derivato: la lista admin mostra
// come scaduta una card il cui letterale non è mai stato aggiornato.
type AdminView struct {
	models.GiftCard
	ComputedStatus string `json:"computed_status"`
}

type ListGiftCards struct {
	repo domain.Repository
}

func NewListGiftCards(repo domain.Repository) *ListGiftCards {
	return &ListGiftCards{repo: repo}
}

func (uc *ListGiftCards) Execute(ctx context.Context) ([]AdminView, error) {
	cards, err := uc.repo.ListGiftCards(ctx)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()

	views := make([]AdminView, 0, len(cards))
	for _, gc := range cards {
		views = append(views, AdminView{
			GiftCard: gc,
			ComputedStatus: string(domain.ComputedStatus(
				domain.Status(gc.Status),
				gc.ExpiresAt,
				now,
			)),
		})
	}

	return views, nil
}

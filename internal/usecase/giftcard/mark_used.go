package giftcard

import (
	"context"
	"strings"

	"github.com/inklab/studio-manager/internal/audit"
	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/models"
	"github.com/inklab/studio-manager/internal/timezone"
)

type MarkUsed struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewMarkUsed(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *MarkUsed {
	return &MarkUsed{
		repo:  repo,
		audit: audit,
	}
}

// Execute timbra l'uso in un singolo update condizionato
// (status='active' -> 'used'): niente da fare se la card non è active.
func (uc *MarkUsed) Execute(
	ctx context.Context,
	code string,
) (*models.GiftCard, error) {

	code = strings.ToUpper(strings.TrimSpace(code))

	gc, err := uc.repo.MarkUsedByCode(ctx, code, timezone.Now())
	if err != nil {
		return nil, httperr.ErrBusiness("gift_card_not_active")
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "gift_card_used",
		Entity:   "gift_card",
		EntityID: &gc.ID,
	})

	return gc, nil
}

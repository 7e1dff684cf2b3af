package giftcard

import (
	"context"
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

type CompleteInput struct {
	Amount   float64
	Currency string

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

// CompleteGiftCard è la vendita walk-in: nessun token di claim, la card
// nasce già active con codice assegnato, in un'unica transazione.
type CompleteGiftCard struct {
	repo  domain.Repository
	codes *domain.CodeGenerator
	audit *audit.Dispatcher

	validityDays int
}

func NewCompleteGiftCard(
	repo domain.Repository,
	codes *domain.CodeGenerator,
	audit *audit.Dispatcher,
	validityDays int,
) *CompleteGiftCard {
	return &CompleteGiftCard{
		repo:         repo,
		codes:        codes,
		audit:        audit,
		validityDays: validityDays,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CompleteGiftCard) Execute(
	ctx context.Context,
	in CompleteInput,
) (*models.GiftCard, error) {

	if in.Amount <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}
	if in.FirstName == "" || in.LastName == "" || in.Phone == "" {
		return nil, httperr.ErrBusiness("missing_holder_fields")
	}

	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}

	var created *models.GiftCard

	err := uc.repo.Transaction(ctx, func(r domain.Repository) error {

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

		code, err := uc.codes.Generate(func(candidate string) (bool, error) {
			return r.CodeInUse(ctx, candidate)
		})
		if err != nil {
			return err
		}

		now := timezone.Now()

		gc := &models.GiftCard{
			Status:   string(domain.StatusActive),
			Amount:   in.Amount,
			Currency: currency,

			ExpiresAt: now.AddDate(0, 0, uc.validityDays),
			ClaimedAt: &now,

			CustomerID: &cust.ID,
			Code:       &code,

			HolderFirstName: in.FirstName,
			HolderLastName:  in.LastName,
			HolderPhone:     holderPhone,
			HolderBirthDate: in.BirthDate,

			Dedication: in.Dedication,
			Consents:   in.Consents,
		}
		if in.Email != nil {
			gc.HolderEmail = *in.Email
		}

		if err := r.CreateGiftCard(ctx, gc); err != nil {
			return err
		}

		created = gc
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "gift_card_completed",
		Entity:   "gift_card",
		EntityID: &created.ID,
	})

	return created, nil
}

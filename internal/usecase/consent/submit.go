package consent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inklab/studio-manager/internal/audit"
	"github.com/inklab/studio-manager/internal/domain/customer"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/models"
	"github.com/inklab/studio-manager/internal/phone"
	"github.com/inklab/studio-manager/internal/timezone"
)

// ======================================================
// TYPES
// ======================================================

const (
	TypeTatuaggio        = "tatuaggio"
	TypePiercing         = "piercing"
	TypeTruccoPermanente = "trucco_permanente"
)

// Flag di accettazione specifico per tipo, controllato oltre ai campi
// anagrafici comuni.
var typeFlags = map[string]string{
	TypeTatuaggio:        "consenso_tatuaggio",
	TypePiercing:         "consenso_piercing",
	TypeTruccoPermanente: "consenso_trucco",
}

var requiredFields = []string{"nome", "cognome", "telefono", "data_nascita"}

// ValidationError elenca i campi mancanti del form.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "campi obbligatori mancanti: " + strings.Join(e.Missing, ", ")
}

// ======================================================
// REPOSITORY
// ======================================================

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	UpsertCustomer(ctx context.Context, in customer.Input) (*models.Customer, error)

	// Link best effort: un telefono può avere zero o molte gift card.
	FindLatestGiftCardIDByPhone(ctx context.Context, phone string) (*uint, error)

	CreateConsent(ctx context.Context, consent *models.Consent) error
}

// ======================================================
// USE CASE
// ======================================================

type SubmitConsent struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewSubmitConsent(
	repo Repository,
	audit *audit.Dispatcher,
) *SubmitConsent {
	return &SubmitConsent{
		repo:  repo,
		audit: audit,
	}
}

// Execute valida i campi top-level richiesti, riconcilia l'anagrafica per
// telefono e salva il form completo come payload opaco, tutto in una
// transazione.
func (uc *SubmitConsent) Execute(
	ctx context.Context,
	consentType string,
	payload map[string]any,
) (*models.Consent, error) {

	flag, ok := typeFlags[consentType]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_consent_type")
	}

	var missing []string
	for _, field := range requiredFields {
		if v, ok := payload[field]; !ok || fmt.Sprint(v) == "" {
			missing = append(missing, field)
		}
	}
	if accepted, ok := payload[flag].(bool); !ok || !accepted {
		missing = append(missing, flag)
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	normalized := phone.Normalize(fmt.Sprint(payload["telefono"]))

	var saved *models.Consent

	err = uc.repo.Transaction(ctx, func(r Repository) error {

		cust, err := r.UpsertCustomer(ctx, customer.Input{
			Phone:     normalized,
			FirstName: fmt.Sprint(payload["nome"]),
			LastName:  fmt.Sprint(payload["cognome"]),
		})
		if err != nil {
			return err
		}

		giftCardID, err := r.FindLatestGiftCardIDByPhone(ctx, normalized)
		if err != nil {
			return err
		}

		consent := &models.Consent{
			Type:        consentType,
			Phone:       normalized,
			Payload:     string(raw),
			CustomerID:  &cust.ID,
			GiftCardID:  giftCardID,
			SubmittedAt: timezone.Now(),
		}

		if err := r.CreateConsent(ctx, consent); err != nil {
			return err
		}

		saved = consent
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "consent_submitted",
		Entity:   "consent",
		EntityID: &saved.ID,
	})

	return saved, nil
}

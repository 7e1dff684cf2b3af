package consent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/inklab/studio-manager/internal/domain/customer"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeConsentRepo struct {
	customers map[string]*models.Customer
	consents  []*models.Consent

	// telefono -> id gift card più recente
	latestCardByPhone map[string]uint

	nextCustomerID uint
	nextConsentID  uint
}

func newFakeConsentRepo() *fakeConsentRepo {
	return &fakeConsentRepo{
		customers:         make(map[string]*models.Customer),
		latestCardByPhone: make(map[string]uint),
	}
}

func (f *fakeConsentRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(f)
}

func (f *fakeConsentRepo) UpsertCustomer(_ context.Context, in customer.Input) (*models.Customer, error) {
	if existing, ok := f.customers[in.Phone]; ok {
		customer.Merge(existing, in)
		copied := *existing
		return &copied, nil
	}

	cust := customer.New(in)
	f.nextCustomerID++
	cust.ID = f.nextCustomerID
	f.customers[in.Phone] = cust

	copied := *cust
	return &copied, nil
}

func (f *fakeConsentRepo) FindLatestGiftCardIDByPhone(_ context.Context, phone string) (*uint, error) {
	if id, ok := f.latestCardByPhone[phone]; ok {
		return &id, nil
	}
	return nil, nil
}

func (f *fakeConsentRepo) CreateConsent(_ context.Context, consent *models.Consent) error {
	f.nextConsentID++
	consent.ID = f.nextConsentID
	stored := *consent
	f.consents = append(f.consents, &stored)
	return nil
}

var _ Repository = (*fakeConsentRepo)(nil)

// ======================================================
// TESTS
// ======================================================

func validPayload() map[string]any {
	return map[string]any{
		"nome":               "Giulia",
		"cognome":            "Rossi",
		"telefono":           "333 111 2222",
		"data_nascita":       "1990-05-01",
		"consenso_tatuaggio": true,
		"allergie":           "nessuna",
	}
}

func TestSubmitConsent_RejectsUnknownType(t *testing.T) {
	uc := NewSubmitConsent(newFakeConsentRepo(), nil)

	_, err := uc.Execute(context.Background(), "laser", validPayload())
	if !httperr.IsBusiness(err, "invalid_consent_type") {
		t.Fatalf("expected invalid_consent_type, got %v", err)
	}
}

func TestSubmitConsent_CollectsMissingFields(t *testing.T) {
	uc := NewSubmitConsent(newFakeConsentRepo(), nil)

	payload := map[string]any{
		"nome": "Giulia",
		// cognome, telefono, data_nascita e flag assenti
	}

	_, err := uc.Execute(context.Background(), TypeTatuaggio, payload)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Missing) != 4 {
		t.Fatalf("expected 4 missing fields, got %v", vErr.Missing)
	}
}

func TestSubmitConsent_FlagMustBeTrue(t *testing.T) {
	uc := NewSubmitConsent(newFakeConsentRepo(), nil)

	payload := validPayload()
	payload["consenso_tatuaggio"] = false

	_, err := uc.Execute(context.Background(), TypeTatuaggio, payload)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Missing) != 1 || vErr.Missing[0] != "consenso_tatuaggio" {
		t.Fatalf("expected the acceptance flag flagged, got %v", vErr.Missing)
	}
}

func TestSubmitConsent_PerTypeFlag(t *testing.T) {
	uc := NewSubmitConsent(newFakeConsentRepo(), nil)

	// Il flag del tatuaggio non vale per il piercing.
	_, err := uc.Execute(context.Background(), TypePiercing, validPayload())

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Missing) != 1 || vErr.Missing[0] != "consenso_piercing" {
		t.Fatalf("expected consenso_piercing flagged, got %v", vErr.Missing)
	}
}

func TestSubmitConsent_PersistsAndLinks(t *testing.T) {
	repo := newFakeConsentRepo()
	repo.latestCardByPhone["+393331112222"] = 7

	uc := NewSubmitConsent(repo, nil)

	saved, err := uc.Execute(context.Background(), TypeTatuaggio, validPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved.Type != TypeTatuaggio {
		t.Fatalf("expected type tatuaggio, got %q", saved.Type)
	}
	if saved.Phone != "+393331112222" {
		t.Fatalf("expected normalized phone, got %q", saved.Phone)
	}
	if saved.GiftCardID == nil || *saved.GiftCardID != 7 {
		t.Fatalf("expected link to gift card 7, got %v", saved.GiftCardID)
	}
	if saved.CustomerID == nil {
		t.Fatalf("expected customer linked")
	}
	if saved.SubmittedAt.IsZero() {
		t.Fatalf("expected submitted_at set")
	}

	// Il payload resta il form completo, campi extra inclusi.
	var stored map[string]any
	if err := json.Unmarshal([]byte(saved.Payload), &stored); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if stored["allergie"] != "nessuna" {
		t.Fatalf("expected extra fields preserved, got %v", stored)
	}

	if _, ok := repo.customers["+393331112222"]; !ok {
		t.Fatalf("expected customer upserted by normalized phone")
	}
}

func TestSubmitConsent_NoGiftCardMatchIsFine(t *testing.T) {
	repo := newFakeConsentRepo()
	uc := NewSubmitConsent(repo, nil)

	saved, err := uc.Execute(context.Background(), TypeTruccoPermanente, map[string]any{
		"nome":            "Giulia",
		"cognome":         "Rossi",
		"telefono":        "3331112222",
		"data_nascita":    "1990-05-01",
		"consenso_trucco": true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.GiftCardID != nil {
		t.Fatalf("expected no gift card link, got %v", saved.GiftCardID)
	}
}

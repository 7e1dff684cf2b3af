package giftcard

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/inklab/studio-manager/internal/domain/customer"
	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeGiftCardRepo struct {
	cards     map[uint]*models.GiftCard
	customers map[string]*models.Customer

	nextCardID     uint
	nextCustomerID uint
}

func newFakeGiftCardRepo() *fakeGiftCardRepo {
	return &fakeGiftCardRepo{
		cards:     make(map[uint]*models.GiftCard),
		customers: make(map[string]*models.Customer),
	}
}

func (f *fakeGiftCardRepo) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(f)
}

func (f *fakeGiftCardRepo) CreateGiftCard(_ context.Context, gc *models.GiftCard) error {
	f.nextCardID++
	gc.ID = f.nextCardID
	stored := *gc
	f.cards[gc.ID] = &stored
	return nil
}

func (f *fakeGiftCardRepo) GetGiftCard(_ context.Context, id uint) (*models.GiftCard, error) {
	gc, ok := f.cards[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *gc
	return &copied, nil
}

func (f *fakeGiftCardRepo) GetGiftCardForUpdate(ctx context.Context, id uint) (*models.GiftCard, error) {
	return f.GetGiftCard(ctx, id)
}

func (f *fakeGiftCardRepo) GetByClaimToken(_ context.Context, token string) (*models.GiftCard, error) {
	for _, gc := range f.cards {
		if gc.ClaimToken != nil && *gc.ClaimToken == token {
			copied := *gc
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeGiftCardRepo) GetByClaimTokenForUpdate(ctx context.Context, token string) (*models.GiftCard, error) {
	return f.GetByClaimToken(ctx, token)
}

func (f *fakeGiftCardRepo) GetByCode(_ context.Context, code string) (*models.GiftCard, error) {
	for _, gc := range f.cards {
		if gc.Code != nil && *gc.Code == code {
			copied := *gc
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeGiftCardRepo) UpdateGiftCard(_ context.Context, gc *models.GiftCard) error {
	if _, ok := f.cards[gc.ID]; !ok {
		return errors.New("record not found")
	}
	stored := *gc
	f.cards[gc.ID] = &stored
	return nil
}

func (f *fakeGiftCardRepo) MarkUsedByCode(_ context.Context, code string, now time.Time) (*models.GiftCard, error) {
	for _, gc := range f.cards {
		if gc.Code != nil && *gc.Code == code && gc.Status == string(domain.StatusActive) {
			gc.Status = string(domain.StatusUsed)
			gc.UsedAt = &now
			copied := *gc
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeGiftCardRepo) CodeInUse(_ context.Context, code string) (bool, error) {
	for _, gc := range f.cards {
		if gc.Code != nil && *gc.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGiftCardRepo) ListGiftCards(_ context.Context) ([]models.GiftCard, error) {
	out := make([]models.GiftCard, 0, len(f.cards))
	for _, gc := range f.cards {
		out = append(out, *gc)
	}
	return out, nil
}

func (f *fakeGiftCardRepo) Stats(_ context.Context, now time.Time) (*domain.Stats, error) {
	stats := &domain.Stats{}
	for _, gc := range f.cards {
		switch domain.ComputedStatus(domain.Status(gc.Status), gc.ExpiresAt, now) {
		case domain.StatusDraft:
			stats.Draft++
		case domain.StatusActive:
			stats.Active++
			stats.ActiveAmount += gc.Amount
		case domain.StatusUsed:
			stats.Used++
		case domain.StatusExpired:
			stats.Expired++
		}
	}
	return stats, nil
}

func (f *fakeGiftCardRepo) UpsertCustomer(_ context.Context, in customer.Input) (*models.Customer, error) {
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

var _ domain.Repository = (*fakeGiftCardRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

const testBaseURL = "https://studio.example"

func newClaimUC(repo domain.Repository) *ClaimGiftCard {
	codes := domain.NewCodeGenerator(rand.NewSource(1))
	return NewClaimGiftCard(repo, codes, nil, testBaseURL)
}

func draftCard(t *testing.T, repo *fakeGiftCardRepo) (uint, string) {
	t.Helper()

	uc := NewCreateDraft(repo, nil, testBaseURL, 365, 720)
	gc, claimURL, err := uc.Execute(context.Background(), CreateDraftInput{Amount: 150})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if !strings.HasPrefix(claimURL, testBaseURL+"/gift-cards/claim/") {
		t.Fatalf("unexpected claim URL %q", claimURL)
	}

	stored := repo.cards[gc.ID]
	if stored.ClaimToken == nil {
		t.Fatalf("draft must carry a claim token")
	}
	return gc.ID, *stored.ClaimToken
}

// ======================================================
// TESTS
// ======================================================

func TestCreateDraft_RejectsNonPositiveAmount(t *testing.T) {
	repo := newFakeGiftCardRepo()
	uc := NewCreateDraft(repo, nil, testBaseURL, 365, 720)

	_, _, err := uc.Execute(context.Background(), CreateDraftInput{Amount: 0})
	if !httperr.IsBusiness(err, "invalid_amount") {
		t.Fatalf("expected invalid_amount, got %v", err)
	}
}

func TestCreateDraft_DefaultsCurrencyToEUR(t *testing.T) {
	repo := newFakeGiftCardRepo()
	uc := NewCreateDraft(repo, nil, testBaseURL, 365, 720)

	gc, _, err := uc.Execute(context.Background(), CreateDraftInput{Amount: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gc.Currency != "EUR" {
		t.Fatalf("expected EUR, got %q", gc.Currency)
	}
	if gc.Status != string(domain.StatusDraft) {
		t.Fatalf("expected draft status, got %q", gc.Status)
	}
}

func TestClaimGiftCard_FullFlow(t *testing.T) {
	repo := newFakeGiftCardRepo()
	cardID, token := draftCard(t, repo)

	uc := newClaimUC(repo)

	gc, landingURL, err := uc.Execute(context.Background(), token, ClaimInput{
		FirstName:  "Giulia",
		LastName:   "Rossi",
		Phone:      "333 111 2222",
		Dedication: "Buon compleanno!",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gc.ID != cardID {
		t.Fatalf("expected card %d, got %d", cardID, gc.ID)
	}
	if gc.Status != string(domain.StatusActive) {
		t.Fatalf("expected active after claim, got %q", gc.Status)
	}
	if gc.Code == nil || len(*gc.Code) != domain.CodeLength {
		t.Fatalf("expected %d-char code, got %v", domain.CodeLength, gc.Code)
	}
	if gc.ClaimToken != nil || gc.ClaimTokenExpiresAt != nil {
		t.Fatalf("claim token must be cleared after claim")
	}
	if gc.ClaimedAt == nil {
		t.Fatalf("expected claimed_at set")
	}
	if gc.HolderPhone != "+393331112222" {
		t.Fatalf("expected normalized holder phone, got %q", gc.HolderPhone)
	}
	if gc.CustomerID == nil {
		t.Fatalf("expected customer linked")
	}
	if !strings.Contains(landingURL, "/gift-card/") {
		t.Fatalf("unexpected landing URL %q", landingURL)
	}

	if _, ok := repo.customers["+393331112222"]; !ok {
		t.Fatalf("expected customer upserted by normalized phone")
	}
}

func TestClaimGiftCard_SecondClaimIsRejected(t *testing.T) {
	repo := newFakeGiftCardRepo()
	_, token := draftCard(t, repo)

	uc := newClaimUC(repo)

	in := ClaimInput{FirstName: "Giulia", LastName: "Rossi", Phone: "3331112222"}
	if _, _, err := uc.Execute(context.Background(), token, in); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}

	// Il token è stato azzerato: il secondo claim non trova più la card.
	_, _, err := uc.Execute(context.Background(), token, in)
	if !httperr.IsBusiness(err, "token_not_claimable") {
		t.Fatalf("expected token_not_claimable, got %v", err)
	}
}

func TestClaimGiftCard_ExpiredTokenIsGone(t *testing.T) {
	repo := newFakeGiftCardRepo()
	cardID, token := draftCard(t, repo)

	past := time.Now().Add(-time.Hour)
	repo.cards[cardID].ClaimTokenExpiresAt = &past

	uc := newClaimUC(repo)

	_, _, err := uc.Execute(context.Background(), token, ClaimInput{
		FirstName: "Giulia", LastName: "Rossi", Phone: "3331112222",
	})
	if !httperr.IsBusiness(err, "claim_token_expired") {
		t.Fatalf("expected claim_token_expired, got %v", err)
	}

	if repo.cards[cardID].Status != string(domain.StatusDraft) {
		t.Fatalf("card must stay draft after rejected claim")
	}
}

// La guardia di stato precede quella di scadenza del token.
func TestClaimGiftCard_StatusGuardBeforeTokenExpiry(t *testing.T) {
	repo := newFakeGiftCardRepo()
	cardID, token := draftCard(t, repo)

	past := time.Now().Add(-time.Hour)
	repo.cards[cardID].ClaimTokenExpiresAt = &past
	repo.cards[cardID].Status = string(domain.StatusUsed)

	uc := newClaimUC(repo)

	_, _, err := uc.Execute(context.Background(), token, ClaimInput{
		FirstName: "Giulia", LastName: "Rossi", Phone: "3331112222",
	})
	if !httperr.IsBusiness(err, "token_not_claimable") {
		t.Fatalf("expected token_not_claimable for non-draft card, got %v", err)
	}
}

func TestGetClaimSummary_NeverExposesHolderData(t *testing.T) {
	repo := newFakeGiftCardRepo()
	cardID, token := draftCard(t, repo)

	uc := NewGetClaimSummary(repo)

	summary, err := uc.Execute(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.GiftCardID != cardID {
		t.Fatalf("expected card %d, got %d", cardID, summary.GiftCardID)
	}
	if summary.Amount != 150 || summary.Currency != "EUR" {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestGetClaimSummary_UnknownToken(t *testing.T) {
	repo := newFakeGiftCardRepo()
	uc := NewGetClaimSummary(repo)

	_, err := uc.Execute(context.Background(), "nope")
	if !httperr.IsBusiness(err, "token_not_claimable") {
		t.Fatalf("expected token_not_claimable, got %v", err)
	}
}

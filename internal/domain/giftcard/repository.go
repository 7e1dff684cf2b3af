package giftcard

import (
	"context"
	"time"

	"github.com/inklab/studio-manager/internal/domain/customer"
	"github.com/inklab/studio-manager/internal/models"
)

// Stats sono i conteggi della dashboard, calcolati sulla nozione derivata
// di scadenza (expires_at vs now), non sullo status persistito.
type Stats struct {
	Draft        int64   `json:"draft"`
	Active       int64   `json:"active"`
	Used         int64   `json:"used"`
	Expired      int64   `json:"expired"`
	ActiveAmount float64 `json:"active_amount"`
}

type Repository interface {
	// Transaction esegue fn in una transazione; le chiamate sul Repository
	// ricevuto condividono la stessa connessione. I flussi claim e complete
	// vivono interamente qui dentro.
	Transaction(ctx context.Context, fn func(Repository) error) error

	// -------- Gift card --------
	CreateGiftCard(ctx context.Context, gc *models.GiftCard) error

	GetGiftCard(ctx context.Context, id uint) (*models.GiftCard, error)

	// GetGiftCardForUpdate acquisisce il row lock (SELECT ... FOR UPDATE).
	GetGiftCardForUpdate(ctx context.Context, id uint) (*models.GiftCard, error)

	GetByClaimToken(ctx context.Context, token string) (*models.GiftCard, error)

	GetByClaimTokenForUpdate(ctx context.Context, token string) (*models.GiftCard, error)

	GetByCode(ctx context.Context, code string) (*models.GiftCard, error)

	UpdateGiftCard(ctx context.Context, gc *models.GiftCard) error

	// MarkUsedByCode è l'update condizionato status='active' -> 'used'.
	// Ritorna gorm.ErrRecordNotFound se nessuna riga active ha quel codice.
	MarkUsedByCode(ctx context.Context, code string, now time.Time) (*models.GiftCard, error)

	CodeInUse(ctx context.Context, code string) (bool, error)

	ListGiftCards(ctx context.Context) ([]models.GiftCard, error)

	Stats(ctx context.Context, now time.Time) (*Stats, error)

	// -------- Customer --------
	UpsertCustomer(ctx context.Context, in customer.Input) (*models.Customer, error)
}

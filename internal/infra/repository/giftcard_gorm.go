package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inklab/studio-manager/internal/domain/customer"
	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/models"
)

type GiftCardGormRepository struct {
	db *gorm.DB
}

func NewGiftCardGormRepository(db *gorm.DB) *GiftCardGormRepository {
	return &GiftCardGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *GiftCardGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GiftCardGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Gift card
// --------------------------------------------------

func (r *GiftCardGormRepository) CreateGiftCard(
	ctx context.Context,
	gc *models.GiftCard,
) error {
	return r.db.WithContext(ctx).Create(gc).Error
}

func (r *GiftCardGormRepository) GetGiftCard(
	ctx context.Context,
	id uint,
) (*models.GiftCard, error) {

	var gc models.GiftCard
	if err := r.db.WithContext(ctx).First(&gc, id).Error; err != nil {
		return nil, err
	}
	return &gc, nil
}

func (r *GiftCardGormRepository) GetGiftCardForUpdate(
	ctx context.Context,
	id uint,
) (*models.GiftCard, error) {

	var gc models.GiftCard
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&gc, id).Error; err != nil {
		return nil, err
	}
	return &gc, nil
}

func (r *GiftCardGormRepository) GetByClaimToken(
	ctx context.Context,
	token string,
) (*models.GiftCard, error) {

	var gc models.GiftCard
	if err := r.db.WithContext(ctx).
		Where("claim_token = ?", token).
		First(&gc).Error; err != nil {
		return nil, err
	}
	return &gc, nil
}

// Serializza i claim concorrenti sulla stessa card: il secondo vede
// status != draft dopo aver preso il lock e fallisce pulito.
func (r *GiftCardGormRepository) GetByClaimTokenForUpdate(
	ctx context.Context,
	token string,
) (*models.GiftCard, error) {

	var gc models.GiftCard
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("claim_token = ?", token).
		First(&gc).Error; err != nil {
		return nil, err
	}
	return &gc, nil
}

func (r *GiftCardGormRepository) GetByCode(
	ctx context.Context,
	code string,
) (*models.GiftCard, error) {

	var gc models.GiftCard
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&gc).Error; err != nil {
		return nil, err
	}
	return &gc, nil
}

func (r *GiftCardGormRepository) UpdateGiftCard(
	ctx context.Context,
	gc *models.GiftCard,
) error {
	return r.db.WithContext(ctx).Save(gc).Error
}

func (r *GiftCardGormRepository) MarkUsedByCode(
	ctx context.Context,
	code string,
	now time.Time,
) (*models.GiftCard, error) {

	res := r.db.WithContext(ctx).
		Model(&models.GiftCard{}).
		Where("code = ? AND status = ?", code, string(domain.StatusActive)).
		Updates(map[string]any{
			"status":  string(domain.StatusUsed),
			"used_at": now,
		})

	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByCode(ctx, code)
}

func (r *GiftCardGormRepository) CodeInUse(
	ctx context.Context,
	code string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GiftCard{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *GiftCardGormRepository) ListGiftCards(
	ctx context.Context,
) ([]models.GiftCard, error) {

	var cards []models.GiftCard
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, err
	}

	return cards, nil
}

// Stats conta sulla nozione derivata di scadenza: una card active con
// expires_at passato figura come expired anche se il letterale non è
// stato mai aggiornato.
func (r *GiftCardGormRepository) Stats(
	ctx context.Context,
	now time.Time,
) (*domain.Stats, error) {

	var stats domain.Stats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = 'draft'  AND expires_at >= @now) AS draft,
			COUNT(*) FILTER (WHERE status = 'active' AND expires_at >= @now) AS active,
			COUNT(*) FILTER (WHERE status = 'used') AS used,
			COUNT(*) FILTER (
				WHERE status = 'expired'
				   OR (status IN ('draft', 'active') AND expires_at < @now)
			) AS expired,
			COALESCE(SUM(amount) FILTER (WHERE status = 'active' AND expires_at >= @now), 0) AS active_amount
		FROM gift_cards
	`, map[string]any{"now": now}).Scan(&stats).Error

	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *GiftCardGormRepository) UpsertCustomer(
	ctx context.Context,
	in customer.Input,
) (*models.Customer, error) {
	return upsertCustomer(ctx, r.db, in)
}

// Compile-time check
var _ domain.Repository = (*GiftCardGormRepository)(nil)

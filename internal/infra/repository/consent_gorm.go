package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inklab/studio-manager/internal/domain/customer"
	"github.com/inklab/studio-manager/internal/models"
	ucConsent "github.com/inklab/studio-manager/internal/usecase/consent"
)

type ConsentGormRepository struct {
	db *gorm.DB
}

func NewConsentGormRepository(db *gorm.DB) *ConsentGormRepository {
	return &ConsentGormRepository{db: db}
}

func (r *ConsentGormRepository) Transaction(
	ctx context.Context,
	fn func(ucConsent.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ConsentGormRepository{db: tx})
	})
}

func (r *ConsentGormRepository) UpsertCustomer(
	ctx context.Context,
	in customer.Input,
) (*models.Customer, error) {
	return upsertCustomer(ctx, r.db, in)
}

// FindLatestGiftCardIDByPhone risolve il link best effort consenso->card:
// un telefono può avere zero o molte card, si prende la più recente.
// Nessun match non è un errore.
func (r *ConsentGormRepository) FindLatestGiftCardIDByPhone(
	ctx context.Context,
	phone string,
) (*uint, error) {

	var gc models.GiftCard
	err := r.db.WithContext(ctx).
		Where("holder_phone = ?", phone).
		Order("created_at DESC").
		First(&gc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &gc.ID, nil
}

func (r *ConsentGormRepository) CreateConsent(
	ctx context.Context,
	consent *models.Consent,
) error {
	return r.db.WithContext(ctx).Create(consent).Error
}

func (r *ConsentGormRepository) ListConsents(
	ctx context.Context,
	consentType string,
	phone string,
) ([]models.Consent, error) {

	q := r.db.WithContext(ctx).Model(&models.Consent{})

	if consentType != "" {
		q = q.Where("type = ?", consentType)
	}
	if phone != "" {
		q = q.Where("phone = ?", phone)
	}

	var consents []models.Consent
	if err := q.Order("submitted_at DESC").Find(&consents).Error; err != nil {
		return nil, err
	}

	return consents, nil
}

// Compile-time check
var _ ucConsent.Repository = (*ConsentGormRepository)(nil)

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inklab/studio-manager/internal/domain/customer"
	"github.com/inklab/studio-manager/internal/models"
)

// IsUniqueViolation riconosce il 23505 di Postgres: il vincolo UNIQUE è
// l'enforcement autoritativo per telefono cliente, code e claim_token.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// upsertCustomer è il punto unico di riconciliazione anagrafica, condiviso
// da gift card e consensi. Row lock sulla riga esistente, merge in
// applicazione (nomi sovrascritti, altri campi COALESCE).
func upsertCustomer(
	ctx context.Context,
	db *gorm.DB,
	in customer.Input,
) (*models.Customer, error) {

	var existing models.Customer
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("phone = ?", in.Phone).
		First(&existing).Error

	if err == nil {
		customer.Merge(&existing, in)
		if err := db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := customer.New(in)
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		if IsUniqueViolation(err) {
			// Corsa persa sull'insert: la riga ora esiste, merge su quella.
			var winner models.Customer
			if err := db.WithContext(ctx).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("phone = ?", in.Phone).
				First(&winner).Error; err != nil {
				return nil, err
			}

			customer.Merge(&winner, in)
			if err := db.WithContext(ctx).Save(&winner).Error; err != nil {
				return nil, err
			}
			return &winner, nil
		}
		return nil, err
	}

	return row, nil
}

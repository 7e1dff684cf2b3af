package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/inklab/studio-manager/internal/domain/customer"
	domain "github.com/inklab/studio-manager/internal/domain/schedule"
	"github.com/inklab/studio-manager/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Conflict detection
// --------------------------------------------------

// La fine memorizzata è start_time + duration_min; il confronto fine usa
// gli intervalli semiaperti in DetectConflicts, qui basta la finestra.
func (r *ScheduleGormRepository) ListConflictCandidates(
	ctx context.Context,
	roomID uint,
	artistID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Room").
		Where(
			"status <> ? AND (room_id = ? OR artist_id = ?) AND start_time < ? AND start_time + make_interval(mins => duration_min) > ?",
			string(domain.StatusCancelled),
			roomID,
			artistID,
			to,
			from,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Appointment CRUD
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Room").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *ScheduleGormRepository) UpsertCustomer(
	ctx context.Context,
	in customer.Input,
) (*models.Customer, error) {
	return upsertCustomer(ctx, r.db, in)
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Room").
		Where(
			"start_time >= ? AND start_time < ?",
			from,
			to,
		).
		Order("start_time ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)

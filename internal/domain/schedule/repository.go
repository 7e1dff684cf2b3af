package schedule

import (
	"context"
	"time"

	"github.com/inklab/studio-manager/internal/domain/customer"
	"github.com/inklab/studio-manager/internal/models"
)

type Repository interface {
	// -------- Conflict detection --------

	// ListConflictCandidates ritorna gli appuntamenti non cancellati che
	// toccano la stanza O il tatuatore e cadono nella finestra [from, to),
	// con Artist e Room precaricati. Il filtro fine è DetectConflicts.
	ListConflictCandidates(
		ctx context.Context,
		roomID uint,
		artistID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment CRUD --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Calendar --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Customer --------

	// UpsertCustomer riconcilia l'anagrafica per telefono: ogni prenotazione
	// con telefono passa dallo stesso punto unico di claim e consensi.
	UpsertCustomer(
		ctx context.Context,
		in customer.Input,
	) (*models.Customer, error)
}

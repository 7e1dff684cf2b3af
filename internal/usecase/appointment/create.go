package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/inklab/studio-manager/internal/audit"
	"github.com/inklab/studio-manager/internal/domain/customer"
	domain "github.com/inklab/studio-manager/internal/domain/schedule"
	"github.com/inklab/studio-manager/internal/models"
	"github.com/inklab/studio-manager/internal/phone"
)

// Gli appuntamenti non superano mai la giornata: finestra di ricerca
// conflitti = 24h prima dell'inizio candidato.
const conflictLookback = 24 * time.Hour

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ArtistID uint
	RoomID   uint

	CustomerPhone string
	CustomerName  string

	StartTime   time.Time
	DurationMin int
	Notes       string
}

// Result porta anche i conflitti non bloccanti: la creazione riesce con
// avviso quando la sovrapposizione è su stanze che ammettono overbooking.
type Result struct {
	Appointment *models.Appointment `json:"appointment"`
	Conflicts   []domain.Conflict   `json:"conflicts,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*Result, error) {

	cand := domain.Candidate{
		ArtistID:    in.ArtistID,
		RoomID:      in.RoomID,
		Start:       in.StartTime,
		DurationMin: in.DurationMin,
	}

	// --------------------------------------------------
	// 1) Validazione: tutte le violazioni insieme
	// --------------------------------------------------
	if violations := domain.Validate(cand, uc.loc); len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	// --------------------------------------------------
	// 2) Conflitti. Il check è read-then-write senza lock sulla risorsa:
	// due richieste concorrenti sullo stesso slot possono passare entrambe.
	// Limite noto del gestionale, lasciato tale.
	// --------------------------------------------------
	existing, err := uc.repo.ListConflictCandidates(
		ctx,
		in.RoomID,
		in.ArtistID,
		cand.Start.Add(-conflictLookback),
		cand.End(),
	)
	if err != nil {
		return nil, err
	}

	conflicts := domain.DetectConflicts(existing, cand, 0)
	if domain.HasBlocking(conflicts) {
		return nil, &domain.ConflictError{Conflicts: conflicts}
	}

	// --------------------------------------------------
	// 3) Riconciliazione anagrafica + persistenza
	// --------------------------------------------------
	customerPhone := in.CustomerPhone
	if customerPhone != "" {
		customerPhone = phone.Normalize(customerPhone)

		if err := upsertBookingCustomer(ctx, uc.repo, customerPhone, in.CustomerName); err != nil {
			return nil, err
		}
	}

	ap := &models.Appointment{
		ArtistID:      in.ArtistID,
		RoomID:        in.RoomID,
		CustomerPhone: customerPhone,
		CustomerName:  in.CustomerName,
		StartTime:     in.StartTime,
		DurationMin:   in.DurationMin,
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if full, err := uc.repo.GetAppointment(ctx, ap.ID); err == nil {
		ap = full
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &Result{Appointment: ap, Conflicts: conflicts}, nil
}

// upsertBookingCustomer porta la prenotazione nello stesso punto unico di
// riconciliazione per telefono usato da gift card e consensi. Il nome in
// agenda è un campo solo: la prima parola è il nome, il resto il cognome.
func upsertBookingCustomer(
	ctx context.Context,
	repo domain.Repository,
	normalizedPhone string,
	customerName string,
) error {

	parts := strings.SplitN(strings.TrimSpace(customerName), " ", 2)

	in := customer.Input{
		Phone:     normalizedPhone,
		FirstName: parts[0],
	}
	if len(parts) == 2 {
		in.LastName = parts[1]
	}

	_, err := repo.UpsertCustomer(ctx, in)
	return err
}

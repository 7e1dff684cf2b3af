package appointment

import (
	"context"
	"time"

	"github.com/inklab/studio-manager/internal/audit"
	domain "github.com/inklab/studio-manager/internal/domain/schedule"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/phone"
)

// ======================================================
// INPUT (patch: i campi assenti conservano il valore corrente)
// ======================================================

type UpdateAppointmentInput struct {
	ArtistID *uint `json:"artist_id"`
	RoomID   *uint `json:"room_id"`

	CustomerPhone *string `json:"customer_phone"`
	CustomerName  *string `json:"customer_name"`

	StartTime   *time.Time `json:"start_time"`
	DurationMin *int       `json:"duration_min"`
	Notes       *string    `json:"notes"`
	Status      *string    `json:"status"`
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	in UpdateAppointmentInput,
) (*Result, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// --------------------------------------------------
	// 1) Merge del patch sull'esistente
	// --------------------------------------------------
	if in.ArtistID != nil {
		ap.ArtistID = *in.ArtistID
	}
	if in.RoomID != nil {
		ap.RoomID = *in.RoomID
	}
	if in.CustomerPhone != nil {
		ap.CustomerPhone = phone.Normalize(*in.CustomerPhone)
	}
	if in.CustomerName != nil {
		ap.CustomerName = *in.CustomerName
	}
	if in.StartTime != nil {
		ap.StartTime = *in.StartTime
	}
	if in.DurationMin != nil {
		ap.DurationMin = *in.DurationMin
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.Status != nil {
		ap.Status = *in.Status
	}

	// --------------------------------------------------
	// 2) Rivalidazione del risultato del merge
	// --------------------------------------------------
	cand := domain.Candidate{
		ArtistID:    ap.ArtistID,
		RoomID:      ap.RoomID,
		Start:       ap.StartTime,
		DurationMin: ap.DurationMin,
	}

	violations := domain.Validate(cand, uc.loc)
	if !domain.Status(ap.Status).Valid() {
		violations = append(violations, "status non valido")
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	// --------------------------------------------------
	// 3) Conflitti, escludendo se stesso
	// --------------------------------------------------
	existing, err := uc.repo.ListConflictCandidates(
		ctx,
		ap.RoomID,
		ap.ArtistID,
		cand.Start.Add(-conflictLookback),
		cand.End(),
	)
	if err != nil {
		return nil, err
	}

	conflicts := domain.DetectConflicts(existing, cand, ap.ID)
	if domain.HasBlocking(conflicts) {
		return nil, &domain.ConflictError{Conflicts: conflicts}
	}

	// --------------------------------------------------
	// 4) Riconciliazione anagrafica se il patch tocca il cliente
	// --------------------------------------------------
	if (in.CustomerPhone != nil || in.CustomerName != nil) && ap.CustomerPhone != "" {
		if err := upsertBookingCustomer(ctx, uc.repo, ap.CustomerPhone, ap.CustomerName); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 5) Persistenza whole-row (Save aggiorna updated_at)
	// --------------------------------------------------
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if full, err := uc.repo.GetAppointment(ctx, ap.ID); err == nil {
		ap = full
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &Result{Appointment: ap, Conflicts: conflicts}, nil
}

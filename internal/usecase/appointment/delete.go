package appointment

import (
	"context"
	"time"

	"github.com/inklab/studio-manager/internal/audit"
	domain "github.com/inklab/studio-manager/internal/domain/schedule"
	"github.com/inklab/studio-manager/internal/httperr"
)

// DeletionReceipt è la ricevuta per il registro admin: lo slot liberato
// non richiede alcun ricontrollo conflitti.
type DeletionReceipt struct {
	ID        uint      `json:"id"`
	ArtistID  uint      `json:"artist_id"`
	RoomID    uint      `json:"room_id"`
	StartTime time.Time `json:"start_time"`
}

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id uint,
) (*DeletionReceipt, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	return &DeletionReceipt{
		ID:        ap.ID,
		ArtistID:  ap.ArtistID,
		RoomID:    ap.RoomID,
		StartTime: ap.StartTime,
	}, nil
}

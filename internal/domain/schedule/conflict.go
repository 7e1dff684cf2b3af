package schedule

import (
	"github.com/inklab/studio-manager/internal/models"
)

// Conflict descrive un appuntamento esistente che si sovrappone al
// candidato. NoOverbooking è il flag della stanza della riga ESISTENTE:
// la policy è per stanza e vale anche quando il conflitto passa per il
// tatuatore condiviso su una stanza diversa.
type Conflict struct {
	AppointmentID uint   `json:"appointment_id"`
	ArtistID      uint   `json:"artist_id"`
	ArtistName    string `json:"artist_name"`
	RoomID        uint   `json:"room_id"`
	RoomName      string `json:"room_name"`
	StartTime     string `json:"start_time"`
	DurationMin   int    `json:"duration_min"`
	Status        string `json:"status"`
	NoOverbooking bool   `json:"no_overbooking"`
}

// DetectConflicts confronta il candidato con gli appuntamenti esistenti
// (stessa stanza O stesso tatuatore, non cancellati), escludendo excludeID
// in update. Le righe devono arrivare con Artist e Room precaricati.
func DetectConflicts(existing []models.Appointment, c Candidate, excludeID uint) []Conflict {
	var conflicts []Conflict

	for _, ap := range existing {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if ap.Status == string(StatusCancelled) {
			continue
		}
		if ap.RoomID != c.RoomID && ap.ArtistID != c.ArtistID {
			continue
		}
		if !Overlaps(ap.StartTime, ap.EndTime(), c.Start, c.End()) {
			continue
		}

		conflicts = append(conflicts, Conflict{
			AppointmentID: ap.ID,
			ArtistID:      ap.ArtistID,
			ArtistName:    ap.Artist.Name,
			RoomID:        ap.RoomID,
			RoomName:      ap.Room.Name,
			StartTime:     ap.StartTime.Format("2006-01-02T15:04:05Z07:00"),
			DurationMin:   ap.DurationMin,
			Status:        ap.Status,
			NoOverbooking: ap.Room.NoOverbooking,
		})
	}

	return conflicts
}

// HasBlocking: basta un conflitto su stanza no-overbooking per rifiutare.
func HasBlocking(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.NoOverbooking {
			return true
		}
	}
	return false
}

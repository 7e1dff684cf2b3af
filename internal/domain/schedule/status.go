package schedule

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed  Status = "confermato"
	StatusCancelled  Status = "cancellato"
	StatusCompleted  Status = "completato"
	StatusInProgress Status = "in_corso"
)

// Nessuna transizione sorvegliata: lo status si imposta direttamente in
// update, come nel gestionale. "in_corso" è raggiungibile solo così.
func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusInProgress:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusConfirmed
}

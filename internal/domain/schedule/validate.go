package schedule

import "time"

const (
	// Durata minima di un appuntamento in minuti.
	MinDurationMin = 15

	// Orario di apertura: un appuntamento può iniziare in qualsiasi minuto
	// dell'ora 20, mai dalle 21 in poi. Solo l'ora di inizio è vincolata.
	OpeningHour = 9
	ClosingHour = 21
)

// Candidate è l'appuntamento da validare / confrontare con l'agenda.
type Candidate struct {
	ArtistID    uint
	RoomID      uint
	Start       time.Time
	DurationMin int
}

func (c Candidate) End() time.Time {
	return c.Start.Add(time.Duration(c.DurationMin) * time.Minute)
}

// Validate raccoglie tutte le violazioni, senza short-circuit. Il controllo
// dell'orario usa l'ora locale dello studio.
func Validate(c Candidate, loc *time.Location) []string {
	var violations []string

	if c.ArtistID == 0 {
		violations = append(violations, "tatuatore obbligatorio")
	}
	if c.RoomID == 0 {
		violations = append(violations, "stanza obbligatoria")
	}
	if c.Start.IsZero() {
		violations = append(violations, "data e ora di inizio obbligatorie")
	}
	if c.DurationMin < MinDurationMin {
		violations = append(violations, "durata minima 15 minuti")
	}
	if !c.Start.IsZero() {
		hour := c.Start.In(loc).Hour()
		if hour < OpeningHour || hour >= ClosingHour {
			violations = append(violations, "orario di inizio fuori dall'orario di apertura (09:00-21:00)")
		}
	}

	return violations
}

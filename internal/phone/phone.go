package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Numeri senza prefisso internazionale sono interpretati come italiani.
const defaultRegion = "IT"

// Normalize porta il numero in E.164 prima di usarlo come chiave naturale
// del cliente, così "333 123 4567" e "+393331234567" convergono sulla
// stessa riga. Se il parsing fallisce ritorna l'input ripulito: meglio una
// chiave grezza che perdere l'invio.
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

package giftcard

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

const (
	// Codice umano: 8 caratteri alfanumerici maiuscoli (base 36).
	CodeLength = 8

	maxCodeAttempts = 10

	codeSpace = 2821109907456 // 36^8
)

// ErrCodeExhausted: tutte le estrazioni sono collise. Errore fatale lato
// operatore, mai esposto al client.
var ErrCodeExhausted = errors.New("gift card code generation exhausted retries")

type ExistsFunc func(code string) (bool, error)

// CodeGenerator è best effort: l'unicità autoritativa è il vincolo UNIQUE
// sulla colonna code. Va invocato solo sotto il row lock della card in
// attivazione.
type CodeGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewCodeGenerator(src rand.Source) *CodeGenerator {
	return &CodeGenerator{rnd: rand.New(src)}
}

func (g *CodeGenerator) draw() string {
	g.mu.Lock()
	n := g.rnd.Int63n(codeSpace)
	g.mu.Unlock()

	code := strings.ToUpper(strconv.FormatInt(n, 36))
	for len(code) < CodeLength {
		code = "0" + code
	}
	return code
}

// Generate estrae fino a maxCodeAttempts codici, ritornando il primo non
// presente in tabella secondo exists.
func (g *CodeGenerator) Generate(exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := g.draw()

		inUse, err := exists(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

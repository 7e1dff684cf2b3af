package schedule

// ===============================
// Errori tipizzati del dominio
// ===============================

// ValidationError trasporta l'elenco completo delle violazioni (400).
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "dati appuntamento non validi"
}

// ConflictError trasporta i conflitti bloccanti (409) così il client può
// proporre alternative.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return "conflitto di orario su stanza senza overbooking"
}

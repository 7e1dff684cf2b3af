package customer

import (
	"time"

	"github.com/inklab/studio-manager/internal/models"
)

// Input è il sottoinsieme di anagrafica fornito da claim, complete,
// consensi e prenotazioni. Il telefono è la chiave naturale e arriva già
// normalizzato E.164.
type Input struct {
	Phone string

	FirstName string
	LastName  string

	Email      *string
	BirthDate  *time.Time
	BirthPlace *string
	FiscalCode *string
	Address    *string
	City       *string
}

// New costruisce la riga per un telefono mai visto.
func New(in Input) *models.Customer {
	return &models.Customer{
		Phone:      in.Phone,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		BirthDate:  in.BirthDate,
		BirthPlace: in.BirthPlace,
		FiscalCode: in.FiscalCode,
		Address:    in.Address,
		City:       in.City,
	}
}

// Merge applica l'ultimo invio sull'esistente: nome e cognome sempre
// sovrascritti, ogni altro campo solo se il nuovo valore è presente
// (semantica COALESCE).
func Merge(existing *models.Customer, in Input) {
	existing.FirstName = in.FirstName
	existing.LastName = in.LastName

	if in.Email != nil {
		existing.Email = in.Email
	}
	if in.BirthDate != nil {
		existing.BirthDate = in.BirthDate
	}
	if in.BirthPlace != nil {
		existing.BirthPlace = in.BirthPlace
	}
	if in.FiscalCode != nil {
		existing.FiscalCode = in.FiscalCode
	}
	if in.Address != nil {
		existing.Address = in.Address
	}
	if in.City != nil {
		existing.City = in.City
	}
}

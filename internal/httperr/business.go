package httperr

import "errors"

// BusinessError è una violazione di regola di business identificata da un
// codice stabile (es. "token_not_claimable"): i layer HTTP la mappano sul
// codice di stato e sul messaggio utente.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

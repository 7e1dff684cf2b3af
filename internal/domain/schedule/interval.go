package schedule

import "time"

// Overlaps verifica l'intersezione di due intervalli semiaperti [s1,e1) e
// [s2,e2). Un appuntamento che finisce esattamente quando l'altro inizia
// non è in conflitto.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

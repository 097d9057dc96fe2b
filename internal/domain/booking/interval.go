package booking

import "time"

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps é o único predicado de sobreposição do sistema: intervalos
// semiabertos [start, end), bordas encostadas NÃO conflitam.
// Geração de slots e checagem de conflito na escrita usam este mesmo
// predicado — variantes divergentes aqui são receita de double-booking.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (iv Interval) OverlapsAny(list []Interval) bool {
	for _, other := range list {
		if Overlaps(iv, other) {
			return true
		}
	}
	return false
}

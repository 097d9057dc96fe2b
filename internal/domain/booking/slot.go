package booking

import (
	"sort"
	"time"

	"github.com/atendoapp/agenda-api/internal/httperr"
)

// Window é uma janela de atendimento já validada (Start < End fica a cargo
// da borda que a construiu; janela invertida simplesmente não gera slot).
type Window struct {
	Start LocalTime
	End   LocalTime
}

// ===============================
// Geração de slots
// ===============================

// GenerateSlots produz todos os slots candidatos do dia, janela por janela,
// marcando cada um como disponível ou não. Função pura: sem I/O, sem relógio
// implícito — `now` vem de fora para o resultado ser determinístico.
//
// Regras:
//   - slots são contíguos dentro da janela (sem buffer entre eles);
//   - o slot só existe se couber inteiro na janela (fim exatamente no fim
//     da janela ainda vale; estourar, não);
//   - slot ocupado ou no passado continua na lista, só fica available=false;
//   - janelas sobrepostas podem gerar slots duplicados — comportamento
//     documentado, quem fornece janelas sobrepostas aceita a saída;
//   - a lista final sai ordenada por início, mesmo com janelas fora de ordem.
func GenerateSlots(
	day time.Time,
	durationMin int,
	windows []Window,
	booked []Interval,
	now time.Time,
) ([]TimeSlot, error) {

	if durationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	duration := time.Duration(durationMin) * time.Minute
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	slots := []TimeSlot{}

	for _, w := range windows {
		windowEnd := w.End.At(dayStart)

		for cursor := w.Start.At(dayStart); !cursor.Add(duration).After(windowEnd); cursor = cursor.Add(duration) {
			end := cursor.Add(duration)

			candidate := Interval{Start: cursor, End: end}
			isBooked := candidate.OverlapsAny(booked)
			isPast := cursor.Before(now)

			slots = append(slots, TimeSlot{
				Start:     cursor,
				End:       end,
				Available: !isBooked && !isPast,
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots, nil
}

// FitsAnyWindow responde se o intervalo candidato cabe inteiro em alguma
// janela do dia — usado na validação de escrita, antes do check de conflito.
func FitsAnyWindow(candidate Interval, day time.Time, windows []Window) bool {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	for _, w := range windows {
		start := w.Start.At(dayStart)
		end := w.End.At(dayStart)

		if !candidate.Start.Before(start) && !candidate.End.After(end) {
			return true
		}
	}
	return false
}

package booking

import (
	"reflect"
	"testing"
	"time"
)

// 2026-03-02 é uma segunda-feira.
var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func lt(t *testing.T, hour, minute int) LocalTime {
	t.Helper()
	v, err := NewLocalTime(hour, minute)
	if err != nil {
		t.Fatalf("NewLocalTime(%d, %d): %v", hour, minute, err)
	}
	return v
}

func window(t *testing.T, startH, startM, endH, endM int) Window {
	t.Helper()
	return Window{Start: lt(t, startH, startM), End: lt(t, endH, endM)}
}

func TestGenerateSlotsBasicWindow(t *testing.T) {
	// Janela 09:00–10:00, duração 30, sem reservas, now antes das 09:00.
	windows := []Window{window(t, 9, 0, 10, 0)}
	now := at(t, 8, 0)

	slots, err := GenerateSlots(testDay, 30, windows, nil, now)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(t, 9, 0)) || !slots[0].End.Equal(at(t, 9, 30)) {
		t.Fatalf("unexpected first slot: %+v", slots[0])
	}
	if !slots[1].Start.Equal(at(t, 9, 30)) || !slots[1].End.Equal(at(t, 10, 0)) {
		t.Fatalf("unexpected second slot: %+v", slots[1])
	}
	for i, s := range slots {
		if !s.Available {
			t.Fatalf("slot %d should be available", i)
		}
	}
}

func TestGenerateSlotsExactFit(t *testing.T) {
	// Duração igual à janela: um único slot cujo fim cai exatamente no
	// fim da janela — incluído, não estourou.
	windows := []Window{window(t, 9, 0, 10, 0)}

	slots, err := GenerateSlots(testDay, 60, windows, nil, at(t, 8, 0))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(t, 9, 0)) || !slots[0].End.Equal(at(t, 10, 0)) {
		t.Fatalf("unexpected slot: %+v", slots[0])
	}
}

func TestGenerateSlotsPartialRemainder(t *testing.T) {
	// 09:00–10:00 com duração 25: dois slots; os 10 minutos restantes não
	// comportam um terceiro (09:50+25 > 10:00).
	windows := []Window{window(t, 9, 0, 10, 0)}

	slots, err := GenerateSlots(testDay, 25, windows, nil, at(t, 8, 0))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(t, 9, 0)) || !slots[0].End.Equal(at(t, 9, 25)) {
		t.Fatalf("unexpected first slot: %+v", slots[0])
	}
	if !slots[1].Start.Equal(at(t, 9, 25)) || !slots[1].End.Equal(at(t, 9, 50)) {
		t.Fatalf("unexpected second slot: %+v", slots[1])
	}
}

func TestGenerateSlotsBookedSlotMarked(t *testing.T) {
	// 09:00–17:00, duração 60, reserva em [10:00, 11:00): o slot das 10h
	// continua na lista, só que indisponível.
	windows := []Window{window(t, 9, 0, 17, 0)}
	booked := []Interval{{Start: at(t, 10, 0), End: at(t, 11, 0)}}

	slots, err := GenerateSlots(testDay, 60, windows, booked, at(t, 8, 0))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}

	unavailable := 0
	for _, s := range slots {
		if !s.Available {
			unavailable++
			if !s.Start.Equal(at(t, 10, 0)) {
				t.Fatalf("wrong slot marked unavailable: %+v", s)
			}
		}
	}
	if unavailable != 1 {
		t.Fatalf("expected exactly 1 unavailable slot, got %d", unavailable)
	}
}

func TestGenerateSlotsTouchingBookingDoesNotConflict(t *testing.T) {
	// Intervalos semiabertos: reserva [10:00, 11:00) não toca os slots
	// 09:00–10:00 nem 11:00–12:00.
	windows := []Window{window(t, 9, 0, 12, 0)}
	booked := []Interval{{Start: at(t, 10, 0), End: at(t, 11, 0)}}

	slots, err := GenerateSlots(testDay, 60, windows, booked, at(t, 8, 0))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if !slots[0].Available || slots[1].Available || !slots[2].Available {
		t.Fatalf("expected [free, booked, free], got %+v", slots)
	}
}

func TestGenerateSlotsPastDaySuppressesBookabilityNotExistence(t *testing.T) {
	windows := []Window{window(t, 9, 0, 11, 0)}
	now := at(t, 23, 0) // dia inteiro já passou

	slots, err := GenerateSlots(testDay, 60, windows, nil, now)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots even for a past day, got %d", len(slots))
	}
	for i, s := range slots {
		if s.Available {
			t.Fatalf("slot %d in the past should not be available", i)
		}
	}
}

func TestGenerateSlotsPastCutsMidDay(t *testing.T) {
	windows := []Window{window(t, 9, 0, 12, 0)}
	now := at(t, 10, 30)

	slots, err := GenerateSlots(testDay, 60, windows, nil, now)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	// 09:00 e 10:00 começam antes de now; 11:00 não.
	want := []bool{false, false, true}
	for i, s := range slots {
		if s.Available != want[i] {
			t.Fatalf("slot %d availability = %v, want %v", i, s.Available, want[i])
		}
	}
}

func TestGenerateSlotsWindowNarrowerThanDuration(t *testing.T) {
	windows := []Window{window(t, 9, 0, 9, 45)}

	slots, err := GenerateSlots(testDay, 60, windows, nil, at(t, 8, 0))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected 0 slots for a too-narrow window, got %d", len(slots))
	}
}

func TestGenerateSlotsEmptyWindows(t *testing.T) {
	slots, err := GenerateSlots(testDay, 30, nil, nil, at(t, 8, 0))
	if err != nil {
		t.Fatalf("empty windows must not fail: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty slot list, got %d", len(slots))
	}
}

func TestGenerateSlotsInvalidDuration(t *testing.T) {
	for _, d := range []int{0, -15} {
		slots, err := GenerateSlots(testDay, d, []Window{window(t, 9, 0, 10, 0)}, nil, at(t, 8, 0))
		if err == nil {
			t.Fatalf("duration %d should fail", d)
		}
		if slots != nil {
			t.Fatalf("duration %d: expected nil slots, got %v", d, slots)
		}
	}
}

func TestGenerateSlotsWindowsOutOfOrder(t *testing.T) {
	// Janelas fora de ordem cronológica: o gerador é quem ordena.
	windows := []Window{
		window(t, 13, 0, 14, 0),
		window(t, 9, 0, 10, 0),
	}

	slots, err := GenerateSlots(testDay, 30, windows, nil, at(t, 8, 0))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].Start) {
			t.Fatalf("slots out of order at %d: %v before %v", i, slots[i].Start, slots[i-1].Start)
		}
	}
}

func TestGenerateSlotsLunchSplit(t *testing.T) {
	// Pausa de almoço = duas janelas; nenhum slot atravessa 12:00–13:00.
	windows := []Window{
		window(t, 9, 0, 12, 0),
		window(t, 13, 0, 17, 0),
	}

	slots, err := GenerateSlots(testDay, 60, windows, nil, at(t, 8, 0))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	if len(slots) != 7 {
		t.Fatalf("expected 7 slots (3 + 4), got %d", len(slots))
	}
	lunch := Interval{Start: at(t, 12, 0), End: at(t, 13, 0)}
	for _, s := range slots {
		if Overlaps(Interval{Start: s.Start, End: s.End}, lunch) {
			t.Fatalf("slot %v crosses the lunch gap", s)
		}
	}
}

func TestGenerateSlotsProperties(t *testing.T) {
	windows := []Window{
		window(t, 9, 0, 12, 30),
		window(t, 14, 0, 16, 0),
	}
	booked := []Interval{
		{Start: at(t, 9, 45), End: at(t, 10, 30)},
		{Start: at(t, 14, 0), End: at(t, 14, 45)},
	}
	now := at(t, 9, 10)
	const durationMin = 45

	slots, err := GenerateSlots(testDay, durationMin, windows, booked, now)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	duration := time.Duration(durationMin) * time.Minute
	for i, s := range slots {
		// todo slot tem exatamente a duração pedida
		if s.End.Sub(s.Start) != duration {
			t.Fatalf("slot %d has length %v, want %v", i, s.End.Sub(s.Start), duration)
		}

		// disponível ⇔ nem ocupado nem no passado
		candidate := Interval{Start: s.Start, End: s.End}
		wantAvailable := !candidate.OverlapsAny(booked) && !s.Start.Before(now)
		if s.Available != wantAvailable {
			t.Fatalf("slot %d availability = %v, want %v", i, s.Available, wantAvailable)
		}
	}

	// determinismo: mesma entrada, mesma saída
	again, err := GenerateSlots(testDay, durationMin, windows, booked, now)
	if err != nil {
		t.Fatalf("GenerateSlots (second call): %v", err)
	}
	if !reflect.DeepEqual(slots, again) {
		t.Fatal("generator is not deterministic for identical inputs")
	}
}

func TestFitsAnyWindow(t *testing.T) {
	windows := []Window{
		window(t, 9, 0, 12, 0),
		window(t, 13, 0, 17, 0),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"inside first window", at(t, 9, 0), at(t, 10, 0), true},
		{"exactly the window", at(t, 13, 0), at(t, 17, 0), true},
		{"ends at window end", at(t, 11, 0), at(t, 12, 0), true},
		{"crosses lunch gap", at(t, 11, 30), at(t, 13, 30), false},
		{"before opening", at(t, 8, 0), at(t, 9, 0), false},
		{"overruns closing", at(t, 16, 30), at(t, 17, 30), false},
	}

	for _, tc := range tests {
		got := FitsAnyWindow(Interval{Start: tc.start, End: tc.end}, testDay, windows)
		if got != tc.want {
			t.Fatalf("%s: FitsAnyWindow = %v, want %v", tc.name, got, tc.want)
		}
	}
}

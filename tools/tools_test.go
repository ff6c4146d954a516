package tools

import (
	"testing"
	"time"
)

func TestAgeFromBirthdate(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	cases := []struct {
		birthdate string
		want      int
		ok        bool
	}{
		{"1996-09-01", 30, true}, // aniversário hoje conta
		{"1996-09-02", 29, true}, // aniversário amanhã ainda não
		{"1996-08-31", 30, true},
		{"2026-09-01", 0, true},
		{"", 0, false},
		{"31/08/1996", 0, false},
		{"1996-13-40", 0, false},
	}
	for _, c := range cases {
		got, ok := AgeFromBirthdate(c.birthdate, now)
		if got != c.want || ok != c.ok {
			t.Fatalf("AgeFromBirthdate(%q): esperado (%d, %v), veio (%d, %v)",
				c.birthdate, c.want, c.ok, got, ok)
		}
	}
}

func TestShiftDay(t *testing.T) {
	if got := ShiftDay("2026-03-01", -1); got != "2026-02-28" {
		t.Fatalf("virada de mês: veio %s", got)
	}
	if got := ShiftDay("2026-12-31", 1); got != "2027-01-01" {
		t.Fatalf("virada de ano: veio %s", got)
	}
	if got := ShiftDay("data-invalida", -7); got != "data-invalida" {
		t.Fatalf("chave inválida volta inalterada: veio %s", got)
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	day := "2026-09-01"
	parsed, ok := ParseDay(day)
	if !ok {
		t.Fatalf("ParseDay falhou pra chave válida")
	}
	if got := DayKey(parsed); got != day {
		t.Fatalf("round trip quebrou: %s", got)
	}
}

package tools

import (
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// DayKey formata um instante como chave de dia (YYYY-MM-DD, fuso local).
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// ParseDay interpreta uma chave de dia no fuso local.
func ParseDay(day string) (time.Time, bool) {
	t, err := time.ParseInLocation(dayLayout, strings.TrimSpace(day), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ShiftDay soma (ou subtrai) dias de uma chave de dia.
// Chave inválida volta inalterada.
func ShiftDay(day string, days int) string {
	t, ok := ParseDay(day)
	if !ok {
		return day
	}
	return DayKey(t.AddDate(0, 0, days))
}

// AgeFromBirthdate calcula idade completa a partir de YYYY-MM-DD.
// Retorna (0, false) para birthdate vazio ou inválido.
func AgeFromBirthdate(birthdate string, now time.Time) (int, bool) {
	b, ok := ParseDay(birthdate)
	if !ok {
		return 0, false
	}
	age := now.Year() - b.Year()
	// ainda não fez aniversário este ano
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

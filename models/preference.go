package models

import (
	"strings"
	"time"
)

/************************************************
/**** MARK: RELATIONSHIP STRUCTURES ****/
/************************************************/
const STRUCTURE_EXCLUSIVE = "exclusive"         // exclui estruturas não exclusivas
const STRUCTURE_NON_EXCLUSIVE = "non_exclusive" // exclui estruturas exclusivas
const STRUCTURE_OPEN = "open"                   // compatível com qualquer estrutura
const STRUCTURE_ANY = ""                        // não declarado = compatível com qualquer

// Preference guarda as preferências de matching de um usuário.
// Regra: 1 linha por usuário (unique user_id).
// InterestedIn é uma lista separada por vírgula ("male,female"); vazio
// significa "aceita qualquer gênero".
type Preference struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID        int64      `gorm:"not null;unique_index" json:"user_id"`
	InterestedIn  string     `gorm:"default:''" json:"interested_in" form:"interested_in"`
	AgeMin        int        `gorm:"not null;default:0" json:"age_min" form:"age_min"`
	AgeMax        int        `gorm:"not null;default:0" json:"age_max" form:"age_max"` // 0 = sem teto
	MaxDistanceKm float64    `gorm:"not null;default:0" json:"max_distance_km" form:"max_distance_km"` // 0 = sem limite
	Structure     string     `gorm:"default:''" json:"structure" form:"structure"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// AcceptsGender verifica se o gênero está na lista de interesse.
// Lista vazia aceita qualquer um.
func (p Preference) AcceptsGender(gender string) bool {
	raw := strings.TrimSpace(p.InterestedIn)
	if raw == "" {
		return true
	}
	for _, g := range strings.Split(raw, ",") {
		if strings.TrimSpace(g) == gender {
			return true
		}
	}
	return false
}

// AcceptsAge verifica se a idade cai na faixa preferida.
// AgeMin/AgeMax zerados são tratados como "sem limite" daquele lado.
func (p Preference) AcceptsAge(age int) bool {
	if p.AgeMin > 0 && age < p.AgeMin {
		return false
	}
	if p.AgeMax > 0 && age > p.AgeMax {
		return false
	}
	return true
}

// excludesNonExclusive / excludesExclusive codificam a regra simétrica de
// incompatibilidade: duas estruturas só são incompatíveis quando uma exclui
// não-exclusividade e a outra exclui exclusividade. "open" (e não declarado)
// não exclui nada.
func structureExcludesNonExclusive(s string) bool {
	return s == STRUCTURE_EXCLUSIVE
}

func structureExcludesExclusive(s string) bool {
	return s == STRUCTURE_NON_EXCLUSIVE
}

// StructuresCompatible aplica a regra de compatibilidade de estrutura de
// relacionamento entre duas preferências.
func StructuresCompatible(a, b string) bool {
	if structureExcludesNonExclusive(a) && structureExcludesExclusive(b) {
		return false
	}
	if structureExcludesExclusive(a) && structureExcludesNonExclusive(b) {
		return false
	}
	return true
}

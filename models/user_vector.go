package models

import (
	"encoding/json"
	"strings"
	"time"
)

// UserVector é o snapshot imutável de features de um usuário, produzido pelo
// serviço de extração (a gente nunca calcula esses valores aqui). Os quatro
// blobs são JSON em coluna text, cada um com schema_version próprio.
// Só a última versão por usuário é usada no scoring; o blob de pulse é a
// exceção de mutabilidade: ele é atualizado in-place com mais frequência.
type UserVector struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID        int64      `gorm:"not null;index;unique_index:ux_user_vector_version" json:"user_id"`
	Version       int        `gorm:"not null;default:1;unique_index:ux_user_vector_version" json:"version"`
	IntentJSON    string     `gorm:"column:intent_json;type:text" json:"intent_json"`
	PillarsJSON   string     `gorm:"column:pillars_json;type:text" json:"pillars_json"`
	LifestyleJSON string     `gorm:"column:lifestyle_json;type:text" json:"lifestyle_json"`
	PulseJSON     string     `gorm:"column:pulse_json;type:text" json:"pulse_json"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// IntentMeta são os metadados de intenção do usuário (todos em [0,1]).
type IntentMeta struct {
	SchemaVersion int      `json:"schema_version"`
	Seriousness   float64  `json:"seriousness"`
	Flexibility   float64  `json:"flexibility"`
	Commitment    float64  `json:"commitment"`
	Tags          []string `json:"tags"`
}

// PillarSet são os oito pilares [0,1] + tags categóricas derivadas.
type PillarSet struct {
	SchemaVersion int       `json:"schema_version"`
	Values        []float64 `json:"values"`
	Tags          []string  `json:"tags"`
}

// LifestyleMap são atributos de estilo de vida em texto livre, já filtrados
// por visibilidade pelo serviço de extração.
type LifestyleMap struct {
	SchemaVersion int               `json:"schema_version"`
	Attributes    map[string]string `json:"attributes"`
}

// PulseMap são sinais curtos de humor/energia, renovados com frequência.
type PulseMap struct {
	SchemaVersion int                `json:"schema_version"`
	Features      map[string]float64 `json:"features"`
}

// Os parsers abaixo nunca devolvem erro pro caller: blob vazio ou corrompido
// vira valor zero com ok=false, e o sub-score correspondente degrada para o
// neutro. Corrupção de dado não pode derrubar o scoring inteiro.

func (v UserVector) Intent() (IntentMeta, bool) {
	var out IntentMeta
	if !decodeBlob(v.IntentJSON, &out) {
		return IntentMeta{}, false
	}
	return out, true
}

func (v UserVector) Pillars() (PillarSet, bool) {
	var out PillarSet
	if !decodeBlob(v.PillarsJSON, &out) || len(out.Values) == 0 {
		return PillarSet{}, false
	}
	return out, true
}

func (v UserVector) Lifestyle() (LifestyleMap, bool) {
	var out LifestyleMap
	if !decodeBlob(v.LifestyleJSON, &out) || len(out.Attributes) == 0 {
		return LifestyleMap{}, false
	}
	return out, true
}

func (v UserVector) Pulse() (PulseMap, bool) {
	var out PulseMap
	if !decodeBlob(v.PulseJSON, &out) || len(out.Features) == 0 {
		return PulseMap{}, false
	}
	return out, true
}

func decodeBlob(raw string, out any) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

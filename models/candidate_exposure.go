package models

import "time"

const EXPOSURE_SURFACE_DECK = "deck"

// CandidateExposure é o log append-only de "mostramos o candidato X pro
// viewer Y no dia D pela superfície S". É a única fonte de verdade para
// "já visto hoje" e para os sinais de fadiga/reciprocidade por janela.
// Linhas nunca são atualizadas nem removidas; o unique index torna o insert
// idempotente contra invocação duplicada.
type CandidateExposure struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ViewerID    int64      `gorm:"not null;index;unique_index:ux_exposure" json:"viewer_id"`
	CandidateID int64      `gorm:"not null;index;unique_index:ux_exposure" json:"candidate_id"`
	Day         string     `gorm:"not null;index;unique_index:ux_exposure" json:"day"` // YYYY-MM-DD
	Surface     string     `gorm:"not null;default:'deck';unique_index:ux_exposure" json:"surface"`
	CreatedAt   *time.Time `json:"created_at"`
}

package models

import "time"

/************************************************
/**** MARK: DECK BUCKETS ****/
/************************************************/
const BUCKET_CORE_FIT = "CORE_FIT"
const BUCKET_LIFESTYLE_FIT = "LIFESTYLE_FIT"
const BUCKET_CONVERSATION_FIT = "CONVERSATION_FIT"
const BUCKET_EXPLORER = "EXPLORER"
const BUCKET_WILDCARD = "WILDCARD"

// DailyDeck é o deck diário de um usuário. Regra central: no máximo 1 deck
// por (user_id, day) — o unique index é quem resolve a corrida entre duas
// primeiras requisições do dia (o perdedor relê o deck do vencedor).
// Depois de criado o deck nunca é regenerado nem alterado.
type DailyDeck struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index;unique_index:ux_deck_user_day" json:"user_id"`
	Day       string     `gorm:"not null;unique_index:ux_deck_user_day" json:"day"` // YYYY-MM-DD
	CreatedAt *time.Time `json:"created_at"`
}

// DeckItem é um slot do deck: candidato + score + bucket de diversidade +
// referência da explicação persistida.
type DeckItem struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	DeckID         int64      `gorm:"not null;index" json:"deck_id"`
	Position       int        `gorm:"not null" json:"position"`
	CandidateID    int64      `gorm:"not null" json:"candidate_id"`
	Score          float64    `gorm:"not null" json:"score"`
	Bucket         string     `gorm:"not null" json:"bucket"`
	ExplanationRef string     `gorm:"column:explanation_ref;default:''" json:"explanation_ref"`
	CreatedAt      *time.Time `json:"created_at"`
}

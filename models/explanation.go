package models

import "time"

const EXPLANATION_SOURCE_AI = "ai"
const EXPLANATION_SOURCE_TEMPLATE = "template"

// Explanation é a justificativa persistida de um slot do deck. O DeckItem
// guarda só o Ref; o texto pode vir do gerador de IA ou do template estático
// por bucket quando o gerador falha ou está desligado.
type Explanation struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Ref         string     `gorm:"not null;unique_index" json:"ref"`
	ViewerID    int64      `gorm:"not null;index" json:"viewer_id"`
	CandidateID int64      `gorm:"not null" json:"candidate_id"`
	Bucket      string     `gorm:"not null" json:"bucket"`
	Body        string     `gorm:"type:text" json:"body"`
	Source      string     `gorm:"not null;default:'template'" json:"source"`
	CreatedAt   *time.Time `json:"created_at"`
}

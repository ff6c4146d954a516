package models

import "time"

/************************************************
/**** MARK: INTEREST STATUS ****/
/************************************************/
const INTEREST_STATUS_PENDING = "pending"
const INTEREST_STATUS_ACCEPTED = "accepted"
const INTEREST_STATUS_DECLINED = "declined"

// Interest representa um "salvei esse perfil" direcionado (from -> to).
// Regra: no máximo 1 interesse por par (unique(from, to)).
// Interesses pendentes e respostas positivas recentes viram boost de entrega
// para quem foi salvo.
type Interest struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	FromUserID  int64      `gorm:"not null;index;unique_index:ux_interest_pair" json:"from_user_id"`
	ToUserID    int64      `gorm:"not null;index;unique_index:ux_interest_pair" json:"to_user_id"`
	Status      string     `gorm:"not null;default:'pending';index" json:"status"`
	RespondedAt *time.Time `json:"responded_at"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

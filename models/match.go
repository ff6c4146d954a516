package models

import "time"

/************************************************
/**** MARK: MATCH STATUS ****/
/************************************************/
const MATCH_STATUS_ACTIVE = "active"
const MATCH_STATUS_CLOSED = "closed"

/************************************************
/**** MARK: MATCH CLOSE REASONS ****/
/************************************************/
const MATCH_REASON_MUTUAL = "mutual"     // encerrado de comum acordo
const MATCH_REASON_EXPIRED = "expired"   // expirou sem conversa
const MATCH_REASON_GHOSTING = "ghosting" // desengajamento leve
const MATCH_REASON_REPORTED = "reported" // desfecho negativo forte

// Match representa um match mútuo entre dois usuários. Matches ativos tiram
// o par do pool um do outro; matches encerrados alimentam as penalidades de
// boost conforme o motivo e a janela de lookback.
type Match struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserAID      int64      `gorm:"column:user_a_id;not null;index" json:"user_a_id"`
	UserBID      int64      `gorm:"column:user_b_id;not null;index" json:"user_b_id"`
	Status       string     `gorm:"not null;default:'active';index" json:"status"`
	ClosedReason string     `gorm:"default:''" json:"closed_reason"`
	ClosedAt     *time.Time `json:"closed_at"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// Involves diz se o match envolve o usuário.
func (m Match) Involves(userID int64) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// OtherSide devolve o parceiro do usuário no match (0 se não participa).
func (m Match) OtherSide(userID int64) int64 {
	if m.UserAID == userID {
		return m.UserBID
	}
	if m.UserBID == userID {
		return m.UserAID
	}
	return 0
}

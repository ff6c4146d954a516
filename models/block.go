package models

import "time"

// Block representa um bloqueio direcionado (blocker -> blocked).
// O filtro de candidatos trata bloqueio nas duas direções.
type Block struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	BlockerID int64      `gorm:"not null;index;unique_index:ux_block_pair" json:"blocker_id"`
	BlockedID int64      `gorm:"not null;index;unique_index:ux_block_pair" json:"blocked_id"`
	CreatedAt *time.Time `json:"created_at"`
}

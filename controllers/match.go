package controllers

import (
	"net/http"
	"time"

	dbpkg "amora/db"
	"amora/models"

	"github.com/gin-gonic/gin"
)

type createMatchRequest struct {
	UserAID int64 `json:"user_a_id" form:"user_a_id"`
	UserBID int64 `json:"user_b_id" form:"user_b_id"`
}

// POST /api/matches
// Matches ativos tiram o par do pool um do outro até serem encerrados.
func CreateMatch(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in createMatchRequest
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if in.UserAID <= 0 || in.UserBID <= 0 || in.UserAID == in.UserBID {
		RespondError(c, "par de usuários inválido", http.StatusBadRequest)
		return
	}

	var existing models.Match
	if err := db.
		Where("status = ?", models.MATCH_STATUS_ACTIVE).
		Where("(user_a_id = ? AND user_b_id = ?) OR (user_a_id = ? AND user_b_id = ?)",
			in.UserAID, in.UserBID, in.UserBID, in.UserAID).
		First(&existing).Error; err == nil {
		RespondError(c, "match ativo já existe", http.StatusBadRequest)
		return
	}

	match := models.Match{
		UserAID: in.UserAID,
		UserBID: in.UserBID,
		Status:  models.MATCH_STATUS_ACTIVE,
	}
	if err := db.Create(&match).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"match": match})
}

type closeMatchRequest struct {
	Reason string `json:"reason" form:"reason"`
}

// POST /api/matches/:id/close
// O motivo importa: ghosting e reported alimentam as penalidades de boost
// em janelas diferentes.
func CloseMatch(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in closeMatchRequest
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	switch in.Reason {
	case models.MATCH_REASON_MUTUAL, models.MATCH_REASON_EXPIRED,
		models.MATCH_REASON_GHOSTING, models.MATCH_REASON_REPORTED:
	default:
		RespondError(c, "reason inválido", http.StatusBadRequest)
		return
	}

	var match models.Match
	if err := db.First(&match, id).Error; err != nil {
		RespondError(c, "match não encontrado", http.StatusNotFound)
		return
	}
	if match.Status != models.MATCH_STATUS_ACTIVE {
		RespondError(c, "match já encerrado", http.StatusBadRequest)
		return
	}

	now := time.Now()
	if err := db.Model(&match).Updates(map[string]any{
		"status":        models.MATCH_STATUS_CLOSED,
		"closed_reason": in.Reason,
		"closed_at":     &now,
	}).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	match.Status = models.MATCH_STATUS_CLOSED
	match.ClosedReason = in.Reason
	match.ClosedAt = &now
	RespondSuccess(c, gin.H{"match": match})
}

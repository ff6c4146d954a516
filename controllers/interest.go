package controllers

import (
	"net/http"
	"time"

	dbpkg "amora/db"
	"amora/models"

	"github.com/gin-gonic/gin"
)

type createInterestRequest struct {
	FromUserID int64 `json:"from_user_id" form:"from_user_id"`
	ToUserID   int64 `json:"to_user_id" form:"to_user_id"`
}

// POST /api/interests
// "Salvei esse perfil". Fica pendente até a outra pessoa responder; enquanto
// pendente vira boost de entrega pra quem foi salvo.
func CreateInterest(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in createInterestRequest
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if in.FromUserID <= 0 || in.ToUserID <= 0 || in.FromUserID == in.ToUserID {
		RespondError(c, "par de usuários inválido", http.StatusBadRequest)
		return
	}

	var existing models.Interest
	if err := db.
		Where("from_user_id = ? AND to_user_id = ?", in.FromUserID, in.ToUserID).
		First(&existing).Error; err == nil {
		RespondError(c, "interesse já registrado", http.StatusBadRequest)
		return
	}

	interest := models.Interest{
		FromUserID: in.FromUserID,
		ToUserID:   in.ToUserID,
		Status:     models.INTEREST_STATUS_PENDING,
	}
	if err := db.Create(&interest).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"interest": interest})
}

type respondInterestRequest struct {
	Accept bool `json:"accept" form:"accept"`
}

// POST /api/interests/:id/respond
func RespondInterest(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in respondInterestRequest
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var interest models.Interest
	if err := db.First(&interest, id).Error; err != nil {
		RespondError(c, "interesse não encontrado", http.StatusNotFound)
		return
	}
	if interest.Status != models.INTEREST_STATUS_PENDING {
		RespondError(c, "interesse já respondido", http.StatusBadRequest)
		return
	}

	status := models.INTEREST_STATUS_DECLINED
	if in.Accept {
		status = models.INTEREST_STATUS_ACCEPTED
	}

	now := time.Now()
	if err := db.Model(&interest).Updates(map[string]any{
		"status":       status,
		"responded_at": &now,
	}).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	interest.Status = status
	interest.RespondedAt = &now
	RespondSuccess(c, gin.H{"interest": interest})
}

package controllers

import (
	"net/http"

	dbpkg "amora/db"
	"amora/models"

	"github.com/gin-gonic/gin"
)

type createBlockRequest struct {
	TargetID int64 `json:"target_id" form:"target_id"`
}

// POST /api/users/:userId/blocks
func CreateBlock(c *gin.Context) {
	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in createBlockRequest
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if in.TargetID <= 0 || in.TargetID == userID {
		RespondError(c, "target_id inválido", http.StatusBadRequest)
		return
	}

	var existing models.Block
	if err := db.
		Where("blocker_id = ? AND blocked_id = ?", userID, in.TargetID).
		First(&existing).Error; err == nil {
		RespondSuccess(c, gin.H{"block": existing})
		return
	}

	block := models.Block{BlockerID: userID, BlockedID: in.TargetID}
	if err := db.Create(&block).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"block": block})
}

// DELETE /api/users/:userId/blocks/:targetId
func DeleteBlock(c *gin.Context) {
	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}
	targetID, ok := ParamID(c, "targetId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.
		Where("blocker_id = ? AND blocked_id = ?", userID, targetID).
		Delete(&models.Block{}).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"deleted": true})
}

package controllers

import (
	"net/http"

	dbpkg "amora/db"
	"amora/models"

	"github.com/gin-gonic/gin"
)

// GET /api/users/:userId/exposures?date=YYYY-MM-DD
// Consulta "o que esse viewer já viu nesse dia" direto do log append-only,
// pra quem precisa da resposta sem rederivar nada.
func GetExposures(c *gin.Context) {
	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}

	day, ok := QueryDay(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var rows []models.CandidateExposure
	if err := db.
		Where("viewer_id = ? AND day = ?", userID, day).
		Order("id asc").
		Find(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"day": day, "exposures": rows})
}

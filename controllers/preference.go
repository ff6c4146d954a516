package controllers

import (
	"net/http"

	dbpkg "amora/db"
	"amora/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// PUT /api/users/:userId/preference
// Upsert: 1 linha de preferência por usuário (unique user_id).
func UpsertPreference(c *gin.Context) {
	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in models.Preference
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if in.AgeMin < 0 || in.AgeMax < 0 || (in.AgeMax > 0 && in.AgeMin > in.AgeMax) {
		RespondError(c, "faixa de idade inválida", http.StatusBadRequest)
		return
	}

	var pref models.Preference
	err := db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if gorm.IsRecordNotFoundError(err) {
		in.ID = 0
		in.UserID = userID
		if err := db.Create(&in).Error; err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		RespondSuccess(c, gin.H{"preference": in})
		return
	}

	pref.InterestedIn = in.InterestedIn
	pref.AgeMin = in.AgeMin
	pref.AgeMax = in.AgeMax
	pref.MaxDistanceKm = in.MaxDistanceKm
	pref.Structure = in.Structure
	if err := db.Save(&pref).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"preference": pref})
}

// GET /api/users/:userId/preference
func GetPreference(c *gin.Context) {
	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var pref models.Preference
	if err := db.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		RespondError(c, "preferência não encontrada", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"preference": pref})
}

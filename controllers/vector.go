package controllers

import (
	"net/http"

	dbpkg "amora/db"
	"amora/matchmaking"
	"amora/models"

	"github.com/gin-gonic/gin"
)

type vectorPayload struct {
	IntentJSON    string `json:"intent_json" form:"intent_json"`
	PillarsJSON   string `json:"pillars_json" form:"pillars_json"`
	LifestyleJSON string `json:"lifestyle_json" form:"lifestyle_json"`
	PulseJSON     string `json:"pulse_json" form:"pulse_json"`
}

// PUT /api/users/:userId/vector
// Ingestão vinda do serviço de extração de features: cada PUT cria uma NOVA
// versão (snapshot imutável); o scoring sempre usa a mais recente.
func PutUserVector(c *gin.Context) {
	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}

	var in vectorPayload
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	version := 1
	if latest, err := matchmaking.LatestVector(db, userID); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	} else if latest != nil {
		version = latest.Version + 1
	}

	vec := models.UserVector{
		UserID:        userID,
		Version:       version,
		IntentJSON:    in.IntentJSON,
		PillarsJSON:   in.PillarsJSON,
		LifestyleJSON: in.LifestyleJSON,
		PulseJSON:     in.PulseJSON,
	}
	if err := db.Create(&vec).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"vector": vec})
}

type pulsePayload struct {
	PulseJSON string `json:"pulse_json" form:"pulse_json"`
}

// PATCH /api/users/:userId/vector/pulse
// O pulse é a exceção de imutabilidade: muda in-place na versão corrente,
// com frequência bem maior que o resto do vetor.
func PatchUserPulse(c *gin.Context) {
	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in pulsePayload
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	latest, err := matchmaking.LatestVector(db, userID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if latest == nil {
		RespondError(c, "usuário ainda não tem vetor", http.StatusNotFound)
		return
	}

	if err := db.Model(&models.UserVector{}).
		Where("id = ?", latest.ID).
		Update("pulse_json", in.PulseJSON).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	latest.PulseJSON = in.PulseJSON
	RespondSuccess(c, gin.H{"vector": latest})
}

// GET /api/users/:userId/vector
func GetUserVector(c *gin.Context) {
	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	latest, err := matchmaking.LatestVector(db, userID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if latest == nil {
		RespondError(c, "vetor não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"vector": latest})
}

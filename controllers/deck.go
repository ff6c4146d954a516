package controllers

import (
	"net/http"
	"time"

	"amora/config"
	dbpkg "amora/db"
	"amora/matchmaking"
	"amora/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependências do orquestrador, configuradas uma vez no boot (mesmo padrão
// do db.SetConfigurations).
var (
	deckCfg            = config.DefaultMatchmaking()
	deckExplainer      matchmaking.ExplanationGenerator
	deckExplainTimeout time.Duration
	deckLog            = zap.NewNop()
)

func SetDeckDependencies(cfg config.Matchmaking, explainer matchmaking.ExplanationGenerator, explainTimeout time.Duration, log *zap.Logger) {
	deckCfg = cfg
	deckExplainer = explainer
	deckExplainTimeout = explainTimeout
	if log != nil {
		deckLog = log
	}
}

// GET /api/users/:userId/deck?date=YYYY-MM-DD
// O único entry point que a camada de apresentação precisa. Os únicos
// desfechos visíveis são "deck com N>=0 itens" e "sem deck" — nunca um fault
// das classes de erro recuperáveis.
func GetDeck(c *gin.Context) {
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

	orch := matchmaking.NewOrchestrator(db, deckCfg, deckExplainer, deckLog)
	orch.ExplainTimeout = deckExplainTimeout

	result, err := orch.GetOrCreateDeck(userID, day)
	if err != nil {
		deckLog.Error("deck: falha na geração", zap.Int64("user_id", userID), zap.Error(err))
		RespondError(c, "falha ao gerar o deck", http.StatusInternalServerError)
		return
	}

	items := result.Items
	if items == nil {
		items = []models.DeckItem{}
	}

	RespondSuccess(c, gin.H{
		"day":               day,
		"items":             items,
		"freshly_generated": result.Fresh,
	})
}

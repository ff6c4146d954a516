package workers

import (
	"time"

	"amora/config"
	"amora/matchmaking"
	"amora/models"
	"amora/tools"

	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

// StartDeckPrecompute sobe o loop que pré-gera os decks do dia para usuários
// ativos, a partir da hora configurada. O orquestrador é idempotente por
// (user, day), então não tem conflito com requests chegando pela API ao
// mesmo tempo: quem perder a corrida do unique index relê o deck do vencedor.
func StartDeckPrecompute(db *gorm.DB, cfg config.Configuration, log *zap.Logger) {
	if !cfg.Worker.PrecomputeEnabled {
		log.Info("deck precompute worker desligado")
		return
	}

	tick := time.Duration(cfg.Worker.TickSeconds) * time.Second
	if tick <= 0 {
		tick = time.Minute
	}

	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		for range ticker.C {
			precomputeDueDecks(db, cfg, log)
		}
	}()
}

func precomputeDueDecks(db *gorm.DB, cfg config.Configuration, log *zap.Logger) {
	now := time.Now()
	if now.Hour() < cfg.Worker.PrecomputeHour {
		return
	}
	day := tools.DayKey(now)

	batch := cfg.Worker.PrecomputeBatch
	if batch <= 0 {
		batch = 100
	}

	// Usuários disponíveis que ainda não têm deck hoje. O join com
	// user_vectors corta quem nunca recebeu vetor (não teria deck mesmo).
	var users []models.User
	if err := db.
		Table("users").
		Select("users.*").
		Joins("JOIN user_vectors ON user_vectors.user_id = users.id").
		Joins("LEFT JOIN daily_decks ON daily_decks.user_id = users.id AND daily_decks.day = ?", day).
		Where("users.status = ? AND daily_decks.id IS NULL", models.USER_STATUS_AVAILABLE).
		Group("users.id").
		Limit(batch).
		Find(&users).Error; err != nil {
		log.Error("deck precompute: query error", zap.Error(err))
		return
	}

	if len(users) == 0 {
		return
	}

	// Sem explainer no worker: o deck pré-gerado sai com template estático,
	// que já é o fallback aceito do produto.
	orch := matchmaking.NewOrchestrator(db, cfg.Matchmaking, nil, log)

	for _, u := range users {
		result, err := orch.GetOrCreateDeck(u.ID, day)
		if err != nil {
			log.Warn("deck precompute: falha pra usuário",
				zap.Int64("user_id", u.ID), zap.Error(err))
			continue
		}
		if result.Fresh {
			log.Debug("deck precompute: deck gerado",
				zap.Int64("user_id", u.ID),
				zap.Int("items", len(result.Items)))
		}
	}
}

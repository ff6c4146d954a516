package main

import (
	"flag"
	"log"
	"time"

	"amora/config"
	"amora/controllers"
	"amora/db"
	"amora/logger"
	"amora/matchmaking"
	"amora/router"
	"amora/tools"
	"amora/workers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "caminho do arquivo de configuração (json)")
	flag.Parse()

	cfg := config.Get(*configPath)

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	db.SetConfigurations(cfg)
	database, err := db.Connect()
	if err != nil {
		zlog.Fatal("db connect", zap.Error(err))
	}
	defer database.Close()

	// Gerador de explicação: só liga com api key; sem ela o deck sai com os
	// templates estáticos por bucket.
	var explainer matchmaking.ExplanationGenerator
	if cfg.Explainer.ApiKey != "" {
		explainer = tools.NewExplainer(cfg.Explainer.ApiKey, cfg.Explainer.Model)
	}
	explainTimeout := time.Duration(cfg.Explainer.TimeoutSeconds) * time.Second
	controllers.SetDeckDependencies(cfg.Matchmaking, explainer, explainTimeout, zlog)

	workers.StartDeckPrecompute(database, cfg, zlog)

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r, cfg, zlog)

	zlog.Info("amora listening", zap.String("port", cfg.ApiPort))
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		zlog.Fatal("server", zap.Error(err))
	}
}

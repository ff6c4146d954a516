package router

import (
	"amora/config"
	"amora/controllers"
	"amora/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Initialize amarra rotas e middlewares. Autenticação/sessão ficam no
// gateway na frente desse serviço; aqui as rotas são explícitas por userId.
func Initialize(r *gin.Engine, cfg config.Configuration, log *zap.Logger) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(Logger(log))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Perfis
	api.POST("/users", controllers.CreateUser)
	api.GET("/users/:userId", controllers.GetUserByID)

	// Preferências de matching
	api.PUT("/users/:userId/preference", controllers.UpsertPreference)
	api.GET("/users/:userId/preference", controllers.GetPreference)

	// Vetores de features (ingestão vinda do serviço de extração)
	api.PUT("/users/:userId/vector", controllers.PutUserVector)
	api.PATCH("/users/:userId/vector/pulse", controllers.PatchUserPulse)
	api.GET("/users/:userId/vector", controllers.GetUserVector)

	// Deck diário (o entry point do produto) + log de exposição
	api.GET("/users/:userId/deck", controllers.GetDeck)
	api.GET("/users/:userId/exposures", controllers.GetExposures)

	// Bloqueios
	api.POST("/users/:userId/blocks", controllers.CreateBlock)
	api.DELETE("/users/:userId/blocks/:targetId", controllers.DeleteBlock)

	// Interesses ("salvei esse perfil")
	api.POST("/interests", controllers.CreateInterest)
	api.POST("/interests/:id/respond", controllers.RespondInterest)

	// Matches
	api.POST("/matches", controllers.CreateMatch)
	api.POST("/matches/:id/close", controllers.CloseMatch)

	// Dashboard (ops)
	api.GET("/dashboard/decks-per-day", controllers.GetDecksPerDay)
	api.GET("/dashboard/exposures-per-day", controllers.GetExposuresPerDay)

	log.Info("routes initialized")
}

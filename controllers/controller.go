package controllers

import "github.com/gin-gonic/gin"

// Envelope único de resposta dos controllers: erro sai como {"error": msg},
// sucesso devolve o payload direto. O handler de deck depende disso pra
// garantir que "sem deck" nunca vira um fault pro cliente.

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

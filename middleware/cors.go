package middleware

import "github.com/gin-gonic/gin"

// CORSMiddleware libera CORS básico para o app e o dashboard de ops
// baterem direto na API em dev. Em produção o gateway na frente é quem
// controla origem; endurecer aqui só quando o serviço ficar exposto.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Application-Version")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

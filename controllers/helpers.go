package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"amora/tools"

	"github.com/gin-gonic/gin"
)

func ParamID(c *gin.Context, name string) (int64, bool) {
	v := c.Param(name)
	if v == "" {
		RespondError(c, name+" é obrigatório", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, name+" inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// QueryDay lê ?date=YYYY-MM-DD; ausente vira o dia de hoje (fuso local).
func QueryDay(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return tools.DayKey(time.Now()), true
	}
	if _, ok := tools.ParseDay(raw); !ok {
		RespondError(c, "date inválido (use YYYY-MM-DD)", http.StatusBadRequest)
		return "", false
	}
	return raw, true
}

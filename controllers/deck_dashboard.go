package controllers

import (
	"net/http"
	"strings"
	"time"

	dbpkg "amora/db"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// Dashboard - Stats
// ------------------------------

type decksPerDayRow struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// GET /api/dashboard/decks-per-day
// Query params:
// - from=YYYY-MM-DD (optional, default: hoje-6)
// - to=YYYY-MM-DD   (optional, default: hoje)
// Retorna uma série diária de decks gerados (inclui dias com 0).
func GetDecksPerDay(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	fromKey := from.Format("2006-01-02")
	toKey := to.Format("2006-01-02")

	// daily_decks.day já é a chave YYYY-MM-DD, sem conversão de timezone.
	var rows []decksPerDayRow
	if err := db.Table("daily_decks").
		Select("day, count(*) as count").
		Where("day >= ? AND day <= ?", fromKey, toKey).
		Group("day").
		Order("day asc").
		Scan(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	series := fillDailySeries(from, to, rows)
	RespondSuccess(c, gin.H{
		"from":   fromKey,
		"to":     toKey,
		"series": series,
	})
}

// GET /api/dashboard/exposures-per-day
// Mesma série, mas contando linhas de exposição (volume de slots entregues).
func GetExposuresPerDay(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	fromKey := from.Format("2006-01-02")
	toKey := to.Format("2006-01-02")

	var rows []decksPerDayRow
	if err := db.Table("candidate_exposures").
		Select("day, count(*) as count").
		Where("day >= ? AND day <= ?", fromKey, toKey).
		Group("day").
		Order("day asc").
		Scan(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	series := fillDailySeries(from, to, rows)
	RespondSuccess(c, gin.H{
		"from":   fromKey,
		"to":     toKey,
		"series": series,
	})
}

// ------------------------------
// Helpers
// ------------------------------

func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	// defaults: últimos 7 dias
	now := time.Now()
	defTo := now
	defFrom := now.AddDate(0, 0, -6)

	fromStr := strings.TrimSpace(c.Query("from"))
	toStr := strings.TrimSpace(c.Query("to"))

	from := defFrom
	to := defTo
	var err error

	if fromStr != "" {
		from, err = time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			RespondError(c, "from inválido (use YYYY-MM-DD)", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
	}
	if toStr != "" {
		to, err = time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			RespondError(c, "to inválido (use YYYY-MM-DD)", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
	}
	if from.After(to) {
		RespondError(c, "from não pode ser maior que to", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func fillDailySeries(from time.Time, to time.Time, rows []decksPerDayRow) []decksPerDayRow {
	// mapa day->count
	m := map[string]int64{}
	for _, r := range rows {
		if r.Day == "" {
			continue
		}
		m[r.Day] = r.Count
	}

	var out []decksPerDayRow
	// itera por dia (inclusive)
	cur := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.Local)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.Local)
	for !cur.After(end) {
		key := cur.Format("2006-01-02")
		out = append(out, decksPerDayRow{Day: key, Count: m[key]})
		cur = cur.AddDate(0, 0, 1)
	}
	return out
}

package matchmaking

import (
	"encoding/json"
	"testing"
	"time"

	dbpkg "amora/db"
	"amora/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// testDB abre um sqlite em memória já migrado. MaxOpenConns(1) porque cada
// conexão nova do driver ganharia um ":memory:" próprio.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("sqlite em memória: %v", err)
	}
	db.LogMode(false)
	db.DB().SetMaxOpenConns(1)
	dbpkg.AutoMigrate(db)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, gender, birthdate string, lat, lng *float64) models.User {
	t.Helper()
	u := models.User{
		Name:      name,
		Email:     name + "@example.com",
		Gender:    gender,
		Birthdate: birthdate,
		Latitude:  lat,
		Longitude: lng,
		Status:    models.USER_STATUS_AVAILABLE,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func seedPreference(t *testing.T, db *gorm.DB, userID int64, interestedIn string, ageMin, ageMax int, maxKm float64, structure string) models.Preference {
	t.Helper()
	p := models.Preference{
		UserID:        userID,
		InterestedIn:  interestedIn,
		AgeMin:        ageMin,
		AgeMax:        ageMax,
		MaxDistanceKm: maxKm,
		Structure:     structure,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed preference user=%d: %v", userID, err)
	}
	return p
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func seedVector(t *testing.T, db *gorm.DB, userID int64, intent models.IntentMeta, pillars models.PillarSet, lifestyle models.LifestyleMap, pulse models.PulseMap) models.UserVector {
	t.Helper()
	v := models.UserVector{
		UserID:        userID,
		Version:       1,
		IntentJSON:    mustJSON(t, intent),
		PillarsJSON:   mustJSON(t, pillars),
		LifestyleJSON: mustJSON(t, lifestyle),
		PulseJSON:     mustJSON(t, pulse),
	}
	var prev models.UserVector
	if err := db.Where("user_id = ?", userID).Order("version desc").First(&prev).Error; err == nil {
		v.Version = prev.Version + 1
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed vector user=%d: %v", userID, err)
	}
	return v
}

// vetor "ok pra matching": pilares com sinal, intent mediano.
func seedDefaultVector(t *testing.T, db *gorm.DB, userID int64) models.UserVector {
	return seedVector(t, db, userID,
		models.IntentMeta{SchemaVersion: 1, Seriousness: 0.7, Commitment: 0.6, Tags: []string{"longo_prazo"}},
		models.PillarSet{SchemaVersion: 1, Values: []float64{0.9, 0.1, 0.8, 0.2, 0.7, 0.3, 0.9, 0.1}},
		models.LifestyleMap{SchemaVersion: 1, Attributes: map[string]string{"smoking": "never", "diet": "vegetarian"}},
		models.PulseMap{SchemaVersion: 1, Features: map[string]float64{"social_capacity": 0.6, "initiative": 0.5}},
	)
}

func seedExposure(t *testing.T, db *gorm.DB, viewerID, candidateID int64, day, surface string) {
	t.Helper()
	e := models.CandidateExposure{
		ViewerID:    viewerID,
		CandidateID: candidateID,
		Day:         day,
		Surface:     surface,
	}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed exposure %d->%d %s: %v", viewerID, candidateID, day, err)
	}
}

func seedClosedMatch(t *testing.T, db *gorm.DB, a, b int64, reason string, closedDaysAgo int) {
	t.Helper()
	closedAt := time.Now().AddDate(0, 0, -closedDaysAgo)
	m := models.Match{
		UserAID:      a,
		UserBID:      b,
		Status:       models.MATCH_STATUS_CLOSED,
		ClosedReason: reason,
		ClosedAt:     &closedAt,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed closed match %d-%d: %v", a, b, err)
	}
}

// birthdateYearsAgo devolve um YYYY-MM-DD que dá exatamente `years` anos.
func birthdateYearsAgo(years int) string {
	return time.Now().AddDate(-years, 0, 0).Format("2006-01-02")
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func floatPtr(v float64) *float64 { return &v }

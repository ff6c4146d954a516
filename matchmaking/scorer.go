package matchmaking

import (
	"math"

	"amora/config"
	"amora/models"

	"github.com/jinzhu/gorm"
)

// CandidateScore é o resultado efêmero do scoring de um candidato para um
// viewer. Nada disso é persistido: recalculamos a cada geração de deck.
type CandidateScore struct {
	CandidateID  int64   `json:"candidate_id"`
	Intent       float64 `json:"intent"`
	Foundational float64 `json:"foundational"`
	Lifestyle    float64 `json:"lifestyle"`
	Pulse        float64 `json:"pulse"`
	Total        float64 `json:"total"`
}

const neutralScore = 50.0

// ScoreCandidates computa os quatro sub-scores e o total ponderado para cada
// candidato. Viewer sem vetor devolve lista vazia (o caller trata como "sem
// deck"). Candidato sem vetor é pulado: sem features não há o que ranquear.
func ScoreCandidates(db *gorm.DB, cfg config.Matchmaking, viewerID int64, candidateIDs []int64) ([]CandidateScore, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}

	viewerVec, err := LatestVector(db, viewerID)
	if err != nil {
		return nil, err
	}
	if viewerVec == nil {
		return nil, nil
	}

	vectors, err := latestVectorsByUser(db, candidateIDs)
	if err != nil {
		return nil, err
	}

	vi, viOK := viewerVec.Intent()
	vp, vpOK := viewerVec.Pillars()
	vl, vlOK := viewerVec.Lifestyle()
	vpu, vpuOK := viewerVec.Pulse()

	out := make([]CandidateScore, 0, len(candidateIDs))
	for _, candID := range candidateIDs {
		candVec, ok := vectors[candID]
		if !ok {
			continue
		}

		ci, ciOK := candVec.Intent()
		cp, cpOK := candVec.Pillars()
		cl, clOK := candVec.Lifestyle()
		cpu, cpuOK := candVec.Pulse()

		s := CandidateScore{CandidateID: candID}
		s.Intent = intentScore(cfg, vi, viOK, ci, ciOK)
		s.Foundational = foundationalScore(cfg, vp, vpOK, cp, cpOK)
		s.Lifestyle = lifestyleScore(cfg, vl, vlOK, cl, clOK)
		s.Pulse = pulseScore(cfg, vpu, vpuOK, cpu, cpuOK)

		s.Total = clampScore(cfg.IntentWeight*s.Intent +
			cfg.FoundationalWeight*s.Foundational +
			cfg.LifestyleWeight*s.Lifestyle +
			cfg.PulseWeight*s.Pulse)

		out = append(out, s)
	}

	return out, nil
}

// LatestVector carrega o vetor mais recente do usuário (nil se não existe).
func LatestVector(db *gorm.DB, userID int64) (*models.UserVector, error) {
	var v models.UserVector
	if err := db.
		Where("user_id = ?", userID).
		Order("version desc").
		First(&v).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func latestVectorsByUser(db *gorm.DB, userIDs []int64) (map[int64]models.UserVector, error) {
	var rows []models.UserVector
	if err := db.
		Where("user_id IN (?)", userIDs).
		Order("version asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	// version asc + overwrite: a última versão de cada usuário vence
	out := map[int64]models.UserVector{}
	for _, v := range rows {
		out[v.UserID] = v
	}
	return out, nil
}

/************************************************
/**** MARK: SUB-SCORES ****/
/************************************************/

// intentScore: proximidade simétrica de seriedade e prontidão pra compromisso
// (100 × (1 − |Δ|) cada, blend 5:3) + bônus limitado por tags de intenção em
// comum. Blob ausente/corrompido em qualquer lado degrada pro neutro.
func intentScore(cfg config.Matchmaking, a models.IntentMeta, aOK bool, b models.IntentMeta, bOK bool) float64 {
	if !aOK || !bOK {
		return neutralScore
	}

	seriousness := 100 * (1 - math.Abs(a.Seriousness-b.Seriousness))
	commitment := 100 * (1 - math.Abs(a.Commitment-b.Commitment))
	base := (5*seriousness + 3*commitment) / 8

	bonus := tagOverlapBonus(a.Tags, b.Tags, cfg.IntentTagBonus, cfg.IntentTagBonusCap)
	return clampScore(base + bonus)
}

// foundationalScore: cosseno dos oito pilares × 100, mas amortecido pela
// força de sinal. Vetores "quase default" (variância baixa em torno de 0.5)
// pareceriam super compatíveis sem dizer nada — nesses casos curto-circuita
// pro neutro 50.
func foundationalScore(cfg config.Matchmaking, a models.PillarSet, aOK bool, b models.PillarSet, bOK bool) float64 {
	if !aOK || !bOK {
		return neutralScore
	}

	varA := pillarVariance(a.Values)
	varB := pillarVariance(b.Values)
	if varA < cfg.LowSignalVariance || varB < cfg.LowSignalVariance {
		return neutralScore
	}

	sim, ok := cosineSimilarity(a.Values, b.Values)
	if !ok {
		return neutralScore
	}

	damp := math.Min(varA, varB) / cfg.ReferenceVariance
	if damp > 1 {
		damp = 1
	}

	bonus := tagOverlapBonus(a.Tags, b.Tags, cfg.FoundationalTagBonus, cfg.FoundationalTagBonusCap)
	return clampScore(sim*100*damp + bonus)
}

// Atributos de lifestyle comparáveis entre dois perfis. Só entram na conta
// quando os DOIS lados têm valor; dado faltando pula o atributo inteiro.
var lifestyleComparable = []string{
	"children",
	"smoking",
	"diet",
	"religion",
	"drinking",
	"exercise",
	"height_pref",
	"work_field",
	"ethnicity_pref",
}

// Pares de incompatibilidade dura (simétricos). Atributo sem par definido
// aqui só soma bônus de match exato, nunca subtrai.
var lifestyleHardPairs = map[string][][2]string{
	"children": {
		{"never", "eventually"},
		{"never", "soon"},
	},
	"smoking": {
		{"never", "daily"},
	},
	"drinking": {
		{"never", "daily"},
	},
}

func lifestyleScore(cfg config.Matchmaking, a models.LifestyleMap, aOK bool, b models.LifestyleMap, bOK bool) float64 {
	score := neutralScore
	if !aOK || !bOK {
		return score
	}

	for _, attr := range lifestyleComparable {
		av, aHas := a.Attributes[attr]
		bv, bHas := b.Attributes[attr]
		if !aHas || !bHas || av == "" || bv == "" {
			continue
		}

		if av == bv {
			score += cfg.LifestyleMatchBonus
			continue
		}
		if isHardIncompatible(attr, av, bv) {
			score -= cfg.LifestyleHardPenalty
		}
	}

	return clampScore(score)
}

func isHardIncompatible(attr, a, b string) bool {
	for _, pair := range lifestyleHardPairs[attr] {
		if (a == pair[0] && b == pair[1]) || (a == pair[1] && b == pair[0]) {
			return true
		}
	}
	return false
}

// pulseScore: sinais curtos de humor/energia. Capacidade social próxima soma
// proporcional; iniciativa ganha bônus tanto por proximidade quanto por
// divergência forte (papéis mutuamente legíveis); ghost risk alto do
// candidato desconta fixo.
func pulseScore(cfg config.Matchmaking, viewer models.PulseMap, viewerOK bool, cand models.PulseMap, candOK bool) float64 {
	score := neutralScore
	if !viewerOK || !candOK {
		return score
	}

	if va, aHas := viewer.Features["social_capacity"]; aHas {
		if vb, bHas := cand.Features["social_capacity"]; bHas {
			score += cfg.SocialCapacityGain * (1 - math.Abs(va-vb))
		}
	}

	if va, aHas := viewer.Features["initiative"]; aHas {
		if vb, bHas := cand.Features["initiative"]; bHas {
			d := math.Abs(va - vb)
			if d <= cfg.InitiativeCloseMax || d >= cfg.InitiativeDivergeMin {
				score += cfg.InitiativeBonus
			}
		}
	}

	if risk, has := cand.Features["ghost_risk"]; has && risk > cfg.GhostRiskThreshold {
		score -= cfg.GhostRiskPenalty
	}

	return clampScore(score)
}

/************************************************
/**** MARK: HELPERS ****/
/************************************************/

// pillarVariance mede a força de sinal: variância dos pilares em torno do
// ponto neutro 0.5 (não da própria média).
func pillarVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - 0.5
		sum += d * d
	}
	return sum / float64(len(values))
}

func cosineSimilarity(a, b []float64) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	// só computa até o menor tamanho (defensivo)
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}

func tagOverlapBonus(a, b []string, perTag, limit float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := map[string]bool{}
	for _, t := range a {
		set[t] = true
	}
	var bonus float64
	for _, t := range b {
		if set[t] {
			bonus += perTag
			delete(set, t) // cada tag conta uma vez
		}
	}
	if bonus > limit {
		return limit
	}
	return bonus
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

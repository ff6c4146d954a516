package matchmaking

import (
	"testing"

	"amora/config"
	"amora/models"
)

func TestSelectTopNBucketQuotas(t *testing.T) {
	cfg := config.DefaultMatchmaking()

	// perfis desenhados pra cada bucket ter um vencedor claro
	scores := []CandidateScore{
		{CandidateID: 1, Intent: 90, Foundational: 90, Lifestyle: 40, Pulse: 40, Total: 75},
		{CandidateID: 2, Intent: 85, Foundational: 85, Lifestyle: 40, Pulse: 40, Total: 72},
		{CandidateID: 3, Intent: 40, Foundational: 40, Lifestyle: 95, Pulse: 40, Total: 55},
		{CandidateID: 4, Intent: 40, Foundational: 40, Lifestyle: 40, Pulse: 95, Total: 52},
		{CandidateID: 5, Intent: 70, Foundational: 20, Lifestyle: 70, Pulse: 70, Total: 60},
		{CandidateID: 6, Intent: 30, Foundational: 30, Lifestyle: 30, Pulse: 30, Total: 30},
	}

	slots := SelectTopN(cfg, scores, map[int64]float64{})
	if len(slots) != 5 {
		t.Fatalf("esperados 5 slots, vieram %d", len(slots))
	}

	wantBuckets := []struct {
		id     int64
		bucket string
	}{
		{1, models.BUCKET_CORE_FIT},
		{2, models.BUCKET_CORE_FIT},
		{3, models.BUCKET_LIFESTYLE_FIT},
		{4, models.BUCKET_CONVERSATION_FIT},
		{5, models.BUCKET_EXPLORER},
	}
	for i, want := range wantBuckets {
		if slots[i].CandidateID != want.id || slots[i].Bucket != want.bucket {
			t.Fatalf("slot %d: esperado (%d, %s), veio (%d, %s)",
				i, want.id, want.bucket, slots[i].CandidateID, slots[i].Bucket)
		}
	}
}

func TestSelectTopNNeverDuplicates(t *testing.T) {
	cfg := config.DefaultMatchmaking()

	// um candidato dominante em TODOS os critérios só pode ocupar um slot
	scores := []CandidateScore{
		{CandidateID: 1, Intent: 99, Foundational: 99, Lifestyle: 99, Pulse: 99, Total: 99},
		{CandidateID: 2, Intent: 50, Foundational: 50, Lifestyle: 50, Pulse: 50, Total: 50},
		{CandidateID: 3, Intent: 40, Foundational: 40, Lifestyle: 40, Pulse: 40, Total: 40},
	}

	slots := SelectTopN(cfg, scores, map[int64]float64{})
	seen := map[int64]bool{}
	for _, s := range slots {
		if seen[s.CandidateID] {
			t.Fatalf("candidato %d apareceu duas vezes no deck", s.CandidateID)
		}
		seen[s.CandidateID] = true
	}
	if len(slots) != 3 {
		t.Fatalf("pool de 3 gera deck de 3, vieram %d", len(slots))
	}
}

func TestSelectTopNSmallPoolNoPadding(t *testing.T) {
	cfg := config.DefaultMatchmaking()

	scores := []CandidateScore{
		{CandidateID: 7, Intent: 60, Foundational: 60, Lifestyle: 60, Pulse: 60, Total: 60},
	}

	slots := SelectTopN(cfg, scores, map[int64]float64{})
	if len(slots) != 1 {
		t.Fatalf("pool de 1 gera deck de 1, vieram %d", len(slots))
	}
	if slots[0].CandidateID != 7 {
		t.Fatalf("candidato errado no slot: %+v", slots[0])
	}
}

func TestSelectTopNEmptyInput(t *testing.T) {
	cfg := config.DefaultMatchmaking()
	if slots := SelectTopN(cfg, nil, nil); len(slots) != 0 {
		t.Fatalf("sem scores não há deck, vieram %d slots", len(slots))
	}
}

func TestSelectTopNTieBreaksByAscendingID(t *testing.T) {
	cfg := config.DefaultMatchmaking()

	// todos idênticos: a ordem final é puramente por id
	var scores []CandidateScore
	for id := int64(10); id >= 1; id-- {
		scores = append(scores, CandidateScore{
			CandidateID: id, Intent: 60, Foundational: 60, Lifestyle: 60, Pulse: 60, Total: 60,
		})
	}

	slots := SelectTopN(cfg, scores, map[int64]float64{})
	if len(slots) != 5 {
		t.Fatalf("esperados 5 slots, vieram %d", len(slots))
	}
	for i, s := range slots {
		if s.CandidateID != int64(i+1) {
			t.Fatalf("empate deveria quebrar por id crescente: slot %d veio %d", i, s.CandidateID)
		}
	}

	// determinismo: mesma entrada, mesmo deck
	again := SelectTopN(cfg, scores, map[int64]float64{})
	for i := range slots {
		if slots[i] != again[i] {
			t.Fatalf("mesma entrada deveria produzir o mesmo deck")
		}
	}
}

func TestSelectTopNBoostReordersWithinBucket(t *testing.T) {
	cfg := config.DefaultMatchmaking()

	scores := []CandidateScore{
		{CandidateID: 1, Intent: 80, Foundational: 80, Lifestyle: 50, Pulse: 50, Total: 70},
		{CandidateID: 2, Intent: 75, Foundational: 75, Lifestyle: 50, Pulse: 50, Total: 66},
	}
	// boost vira o jogo no critério do CORE_FIT (150 vs 160+12)
	boosts := map[int64]float64{2: 12}

	slots := SelectTopN(cfg, scores, boosts)
	if slots[0].CandidateID != 2 {
		t.Fatalf("boost deveria reordenar o bucket: primeiro veio %d", slots[0].CandidateID)
	}
	// o Score persistido continua sendo o Total SEM boost
	if slots[0].Score != 66 {
		t.Fatalf("Score do slot é o Total sem boost, veio %.2f", slots[0].Score)
	}
}

func TestFallbackBucketThresholds(t *testing.T) {
	cfg := config.DefaultMatchmaking()

	cases := []struct {
		name  string
		score CandidateScore
		want  string
	}{
		{"core", CandidateScore{Intent: 70, Foundational: 65}, models.BUCKET_CORE_FIT},
		{"lifestyle", CandidateScore{Intent: 69, Foundational: 65, Lifestyle: 70}, models.BUCKET_LIFESTYLE_FIT},
		{"conversation", CandidateScore{Pulse: 70}, models.BUCKET_CONVERSATION_FIT},
		{"explorer", CandidateScore{Total: 60}, models.BUCKET_EXPLORER},
		{"wildcard", CandidateScore{Intent: 50, Foundational: 50, Lifestyle: 50, Pulse: 50, Total: 50}, models.BUCKET_WILDCARD},
	}
	for _, c := range cases {
		if got := fallbackBucket(cfg, c.score); got != c.want {
			t.Fatalf("%s: esperado %s, veio %s", c.name, c.want, got)
		}
	}
}

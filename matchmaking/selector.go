package matchmaking

import (
	"sort"

	"amora/config"
	"amora/models"
)

// DeckSlot é a saída ordenada do selector: candidato + bucket de diversidade.
// Score carrega o Total de compatibilidade (o boost é efêmero e não aparece
// no deck persistido).
type DeckSlot struct {
	CandidateID int64
	Bucket      string
	Score       float64
}

// SelectTopN monta o deck com cota gulosa por bucket, cada passo excluindo
// quem já entrou:
//
//  1. top 2 por (intent + foundational + boost)      -> CORE_FIT
//  2. top 1 por (lifestyle + 0.5×boost)              -> LIFESTYLE_FIT
//  3. top 1 por (pulse + 0.5×boost)                  -> CONVERSATION_FIT
//  4. top 1 por (total − 0.3×foundational + 0.5×boost) -> EXPLORER
//     (o desconto no foundational é proposital: o slot existe pra trazer
//     alguém DIFERENTE com fit geral alto)
//  5. sobrou vaga (pool pequeno): preenche por (total + boost) com bucket
//     por threshold estático, inclusive WILDCARD.
//
// Empate quebra por id crescente em todos os passos — zero aleatoriedade,
// mesmo input produz sempre o mesmo deck. Pool menor que o alvo devolve o
// que tem, sem duplicar nem preencher com vazio.
func SelectTopN(cfg config.Matchmaking, scores []CandidateScore, boosts map[int64]float64) []DeckSlot {
	if len(scores) == 0 {
		return nil
	}

	target := cfg.DeckSize
	if target <= 0 {
		target = 5
	}

	chosen := map[int64]bool{}
	var out []DeckSlot

	take := func(n int, bucket string, key func(CandidateScore) float64) {
		picked := pickTop(scores, chosen, n, key)
		for _, s := range picked {
			chosen[s.CandidateID] = true
			out = append(out, DeckSlot{CandidateID: s.CandidateID, Bucket: bucket, Score: s.Total})
		}
	}

	boost := func(id int64) float64 { return boosts[id] }

	take(2, models.BUCKET_CORE_FIT, func(s CandidateScore) float64 {
		return s.Intent + s.Foundational + boost(s.CandidateID)
	})
	take(1, models.BUCKET_LIFESTYLE_FIT, func(s CandidateScore) float64 {
		return s.Lifestyle + 0.5*boost(s.CandidateID)
	})
	take(1, models.BUCKET_CONVERSATION_FIT, func(s CandidateScore) float64 {
		return s.Pulse + 0.5*boost(s.CandidateID)
	})
	take(1, models.BUCKET_EXPLORER, func(s CandidateScore) float64 {
		return s.Total - 0.3*s.Foundational + 0.5*boost(s.CandidateID)
	})

	// fallback: pool pequeno demais pra cota cheia
	if len(out) < target {
		rest := pickTop(scores, chosen, target-len(out), func(s CandidateScore) float64 {
			return s.Total + boost(s.CandidateID)
		})
		for _, s := range rest {
			chosen[s.CandidateID] = true
			out = append(out, DeckSlot{
				CandidateID: s.CandidateID,
				Bucket:      fallbackBucket(cfg, s),
				Score:       s.Total,
			})
		}
	}

	if len(out) > target {
		out = out[:target]
	}
	return out
}

// pickTop devolve até n scores ainda não escolhidos, ordenados por key desc
// com desempate por id crescente.
func pickTop(scores []CandidateScore, chosen map[int64]bool, n int, key func(CandidateScore) float64) []CandidateScore {
	var pool []CandidateScore
	for _, s := range scores {
		if !chosen[s.CandidateID] {
			pool = append(pool, s)
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		ki, kj := key(pool[i]), key(pool[j])
		if ki != kj {
			return ki > kj
		}
		return pool[i].CandidateID < pool[j].CandidateID
	})

	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

// fallbackBucket rotula slots de preenchimento por threshold estático.
func fallbackBucket(cfg config.Matchmaking, s CandidateScore) string {
	switch {
	case s.Intent >= cfg.CoreIntentMin && s.Foundational >= cfg.CoreFoundationalMin:
		return models.BUCKET_CORE_FIT
	case s.Lifestyle >= cfg.LifestyleFitMin:
		return models.BUCKET_LIFESTYLE_FIT
	case s.Pulse >= cfg.ConversationFitMin:
		return models.BUCKET_CONVERSATION_FIT
	case s.Total >= cfg.ExplorerTotalMin:
		return models.BUCKET_EXPLORER
	default:
		return models.BUCKET_WILDCARD
	}
}

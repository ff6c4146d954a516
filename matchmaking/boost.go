package matchmaking

import (
	"time"

	"amora/config"
	"amora/models"
	"amora/tools"

	"github.com/jinzhu/gorm"
)

// GetBoostMap computa o delta de entrega (com sinal, sem clamp) por candidato
// a partir do histórico recente de interação:
//
//   - reciprocidade: candidato que VIU o viewer na janela, que salvou o
//     viewer como interesse pendente, ou que respondeu positivamente;
//   - fadiga: quantas vezes o viewer já viu o candidato na janela
//     (2-3 repete = penalidade média, 4+ = pesada);
//   - desfechos passados: matches encerrados entre os dois, com janela curta
//     pra ghosting e longa pra desfecho negativo forte.
//
// Tudo é aditivo; o resultado entra em cima do Total na seleção. O mapa sai
// inicializado com 0 pra todo candidato de entrada.
func GetBoostMap(db *gorm.DB, cfg config.Matchmaking, viewerID int64, candidateIDs []int64, day string) (map[int64]float64, error) {
	boosts := make(map[int64]float64, len(candidateIDs))
	for _, id := range candidateIDs {
		boosts[id] = 0
	}
	if len(candidateIDs) == 0 {
		return boosts, nil
	}

	windowStart := tools.ShiftDay(day, -cfg.BoostLookbackDays)
	dayTime, ok := tools.ParseDay(day)
	if !ok {
		dayTime = time.Now()
	}
	windowStartTime := dayTime.AddDate(0, 0, -cfg.BoostLookbackDays)

	// Reciprocidade de visibilidade: o candidato teve o viewer no deck dele
	// dentro da janela.
	var reverse []models.CandidateExposure
	if err := db.
		Where("viewer_id IN (?) AND candidate_id = ?", candidateIDs, viewerID).
		Where("day >= ? AND day <= ?", windowStart, day).
		Find(&reverse).Error; err != nil {
		return nil, err
	}
	shownMe := map[int64]bool{}
	for _, e := range reverse {
		shownMe[e.ViewerID] = true
	}
	for id := range shownMe {
		boosts[id] += cfg.ShownMeDelta
	}

	// Interesse pendente: o candidato salvou o viewer e ainda espera resposta.
	var inbound []models.Interest
	if err := db.
		Where("from_user_id IN (?) AND to_user_id = ?", candidateIDs, viewerID).
		Where("status = ?", models.INTEREST_STATUS_PENDING).
		Find(&inbound).Error; err != nil {
		return nil, err
	}
	for _, it := range inbound {
		if it.CreatedAt != nil && !it.CreatedAt.Before(windowStartTime) {
			boosts[it.FromUserID] += cfg.PendingInterestDelta
		}
	}

	// Resposta positiva: interesse que o VIEWER enviou e o candidato aceitou
	// na janela. A direção importa: quem responde é o destinatário.
	var outbound []models.Interest
	if err := db.
		Where("from_user_id = ? AND to_user_id IN (?)", viewerID, candidateIDs).
		Where("status = ?", models.INTEREST_STATUS_ACCEPTED).
		Find(&outbound).Error; err != nil {
		return nil, err
	}
	for _, it := range outbound {
		if it.RespondedAt != nil && !it.RespondedAt.Before(windowStartTime) {
			boosts[it.ToUserID] += cfg.PositiveResponseDelta
		}
	}

	// Fadiga: repetições do candidato no deck do viewer dentro da janela.
	repeats, err := exposureCounts(db, viewerID, candidateIDs, windowStart, day)
	if err != nil {
		return nil, err
	}
	for id, n := range repeats {
		switch {
		case n >= 4:
			boosts[id] -= cfg.RepeatPenaltyHeavy
		case n >= 2:
			boosts[id] -= cfg.RepeatPenaltyMedium
		}
	}

	// Desfechos de matches encerrados. Cada match conta uma vez, dentro da
	// janela do SEU motivo: ghosting usa a curta, reported a longa.
	ghostingCutoff := dayTime.AddDate(0, 0, -cfg.GhostingWindowDays)
	hardCutoff := dayTime.AddDate(0, 0, -cfg.HardNegativeWindowDays)

	var closed []models.Match
	if err := db.
		Where("status = ?", models.MATCH_STATUS_CLOSED).
		Where("(user_a_id = ? AND user_b_id IN (?)) OR (user_b_id = ? AND user_a_id IN (?))",
			viewerID, candidateIDs, viewerID, candidateIDs).
		Find(&closed).Error; err != nil {
		return nil, err
	}
	for _, m := range closed {
		other := m.OtherSide(viewerID)
		if other == 0 || m.ClosedAt == nil {
			continue
		}
		switch m.ClosedReason {
		case models.MATCH_REASON_GHOSTING:
			if !m.ClosedAt.Before(ghostingCutoff) {
				boosts[other] -= cfg.GhostingPenalty
			}
		case models.MATCH_REASON_REPORTED:
			if !m.ClosedAt.Before(hardCutoff) {
				boosts[other] -= cfg.HardNegativePenalty
			}
		}
	}

	return boosts, nil
}

type exposureCountRow struct {
	CandidateID int64 `gorm:"column:candidate_id"`
	Count       int64 `gorm:"column:count"`
}

func exposureCounts(db *gorm.DB, viewerID int64, candidateIDs []int64, fromDay, toDay string) (map[int64]int64, error) {
	var rows []exposureCountRow
	if err := db.
		Table("candidate_exposures").
		Select("candidate_id, count(*) as count").
		Where("viewer_id = ? AND candidate_id IN (?)", viewerID, candidateIDs).
		Where("day >= ? AND day <= ?", fromDay, toDay).
		Group("candidate_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := map[int64]int64{}
	for _, r := range rows {
		out[r.CandidateID] = r.Count
	}
	return out, nil
}

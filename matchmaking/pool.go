package matchmaking

import (
	"sort"
	"time"

	"amora/models"

	"github.com/jinzhu/gorm"
)

// GetEligibleCandidates devolve os ids estruturalmente elegíveis para o
// viewer receber no deck do dia. Cada etapa só estreita o conjunto anterior:
// self, bloqueios (nas duas direções), matches ativos, já-vistos hoje,
// preferência do viewer sobre o candidato, reciprocidade do candidato sobre
// o viewer, distância (quando ambos têm coordenadas) e compatibilidade de
// estrutura de relacionamento.
//
// Política de falha: viewer sem perfil ou sem preferências NÃO é erro — é
// pool vazio ("não elegível pra receber deck"). A ordem do retorno não
// carrega significado; quem ordena é o selector.
func GetEligibleCandidates(db *gorm.DB, viewerID int64, day string) ([]int64, error) {
	var viewer models.User
	if err := db.First(&viewer, viewerID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	var viewerPref models.Preference
	if err := db.Where("user_id = ?", viewerID).First(&viewerPref).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	now := time.Now()
	viewerAge, ok := viewer.Age(now)
	if !ok {
		// birthdate ausente/corrompido conta como perfil incompleto
		return nil, nil
	}

	// (a) exclui self; só usuários disponíveis entram no pool
	var candidates []models.User
	if err := db.
		Where("id <> ? AND status = ?", viewerID, models.USER_STATUS_AVAILABLE).
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// (b) bloqueios, nas duas direções
	blocked, err := blockedSet(db, viewerID)
	if err != nil {
		return nil, err
	}

	// (c) matches ativos
	matched, err := activeMatchSet(db, viewerID)
	if err != nil {
		return nil, err
	}

	// (d) já exposto hoje, em qualquer superfície
	seen, err := exposedTodaySet(db, viewerID, day)
	if err != nil {
		return nil, err
	}

	// preferências dos candidatos, em um load só
	ids := make([]int64, 0, len(candidates))
	for _, cand := range candidates {
		ids = append(ids, cand.ID)
	}
	prefs, err := preferencesByUser(db, ids)
	if err != nil {
		return nil, err
	}

	var out []int64
	for _, cand := range candidates {
		if blocked[cand.ID] || matched[cand.ID] || seen[cand.ID] {
			continue
		}

		candAge, ok := cand.Age(now)
		if !ok {
			continue
		}

		// (e) lado do viewer: gênero e idade do candidato dentro do que o
		// viewer declarou querer
		if !viewerPref.AcceptsGender(cand.Gender) || !viewerPref.AcceptsAge(candAge) {
			continue
		}

		// (f) reciprocidade: o viewer precisa caber no que o candidato
		// declarou. Candidato sem linha de preferência aceita qualquer um.
		candPref, hasPref := prefs[cand.ID]
		if hasPref {
			if !candPref.AcceptsAge(viewerAge) {
				continue
			}
			if !candPref.AcceptsGender(viewer.Gender) {
				continue
			}
		}

		// (g) distância: só vale quando os dois lados têm coordenadas
		if viewer.HasCoordinates() && cand.HasCoordinates() {
			d := HaversineKm(*viewer.Latitude, *viewer.Longitude, *cand.Latitude, *cand.Longitude)
			if viewerPref.MaxDistanceKm > 0 && d > viewerPref.MaxDistanceKm {
				continue
			}
			if hasPref && candPref.MaxDistanceKm > 0 && d > candPref.MaxDistanceKm {
				continue
			}
		}

		// (h) estrutura de relacionamento (regra simétrica de exclusão)
		candStructure := models.STRUCTURE_ANY
		if hasPref {
			candStructure = candPref.Structure
		}
		if !models.StructuresCompatible(viewerPref.Structure, candStructure) {
			continue
		}

		out = append(out, cand.ID)
	}

	// ordena por id só pra ser determinístico em teste/log
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func blockedSet(db *gorm.DB, viewerID int64) (map[int64]bool, error) {
	var rows []models.Block
	if err := db.
		Where("blocker_id = ? OR blocked_id = ?", viewerID, viewerID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	set := map[int64]bool{}
	for _, b := range rows {
		if b.BlockerID == viewerID {
			set[b.BlockedID] = true
		} else {
			set[b.BlockerID] = true
		}
	}
	return set, nil
}

func activeMatchSet(db *gorm.DB, viewerID int64) (map[int64]bool, error) {
	var rows []models.Match
	if err := db.
		Where("status = ?", models.MATCH_STATUS_ACTIVE).
		Where("user_a_id = ? OR user_b_id = ?", viewerID, viewerID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	set := map[int64]bool{}
	for _, m := range rows {
		if other := m.OtherSide(viewerID); other != 0 {
			set[other] = true
		}
	}
	return set, nil
}

func exposedTodaySet(db *gorm.DB, viewerID int64, day string) (map[int64]bool, error) {
	var rows []models.CandidateExposure
	if err := db.
		Where("viewer_id = ? AND day = ?", viewerID, day).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	set := map[int64]bool{}
	for _, e := range rows {
		set[e.CandidateID] = true
	}
	return set, nil
}

func preferencesByUser(db *gorm.DB, userIDs []int64) (map[int64]models.Preference, error) {
	out := map[int64]models.Preference{}
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []models.Preference
	if err := db.Where("user_id IN (?)", userIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.UserID] = p
	}
	return out, nil
}

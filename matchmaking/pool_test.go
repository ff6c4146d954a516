package matchmaking

import (
	"testing"

	"amora/models"
	"amora/tools"
)

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestPoolViewerSidePreferenceFilters(t *testing.T) {
	db := testDB(t)

	viewer := seedUser(t, db, "viewer", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, viewer.ID, models.USER_GENDER_MALE, 25, 35, 0, "")

	ok := seedUser(t, db, "na_faixa", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	tooOld := seedUser(t, db, "velho_demais", models.USER_GENDER_MALE, birthdateYearsAgo(40), nil, nil)
	wrongGender := seedUser(t, db, "genero_fora", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)

	pool, err := GetEligibleCandidates(db, viewer.ID, today())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !containsID(pool, ok.ID) {
		t.Fatalf("candidato dentro da preferência deveria entrar: %v", pool)
	}
	if containsID(pool, tooOld.ID) || containsID(pool, wrongGender.ID) {
		t.Fatalf("idade/gênero fora da preferência deveriam sair: %v", pool)
	}
}

func TestPoolReciprocity(t *testing.T) {
	db := testDB(t)

	viewer := seedUser(t, db, "viewer", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, viewer.ID, models.USER_GENDER_MALE, 0, 0, 0, "")

	// candidato cuja preferência NÃO inclui o viewer
	rejects := seedUser(t, db, "nao_quer", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, rejects.ID, models.USER_GENDER_MALE, 0, 0, 0, "")

	// candidato cuja faixa etária exclui o viewer
	tooPicky := seedUser(t, db, "faixa_estreita", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, tooPicky.ID, models.USER_GENDER_FEMALE, 40, 50, 0, "")

	// candidato SEM linha de preferência aceita qualquer um
	openMinded := seedUser(t, db, "sem_pref", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)

	pool, err := GetEligibleCandidates(db, viewer.ID, today())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if containsID(pool, rejects.ID) {
		t.Fatalf("candidato que não aceita o gênero do viewer deveria sair: %v", pool)
	}
	if containsID(pool, tooPicky.ID) {
		t.Fatalf("candidato cuja faixa etária exclui o viewer deveria sair: %v", pool)
	}
	if !containsID(pool, openMinded.ID) {
		t.Fatalf("candidato sem preferência declarada aceita qualquer um: %v", pool)
	}
}

func TestPoolExcludesSelfAndUnavailable(t *testing.T) {
	db := testDB(t)

	viewer := seedUser(t, db, "viewer", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, viewer.ID, "", 0, 0, 0, "")

	pending := seedUser(t, db, "pendente", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	if err := db.Model(&pending).Update("status", models.USER_STATUS_PENDING).Error; err != nil {
		t.Fatalf("update status: %v", err)
	}

	pool, err := GetEligibleCandidates(db, viewer.ID, today())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if containsID(pool, viewer.ID) {
		t.Fatalf("viewer nunca entra no próprio pool: %v", pool)
	}
	if containsID(pool, pending.ID) {
		t.Fatalf("usuário não disponível deveria sair: %v", pool)
	}
}

func TestPoolBlocksBothDirections(t *testing.T) {
	db := testDB(t)

	viewer := seedUser(t, db, "viewer", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, viewer.ID, "", 0, 0, 0, "")

	iBlocked := seedUser(t, db, "bloqueado_por_mim", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	blockedMe := seedUser(t, db, "me_bloqueou", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	clean := seedUser(t, db, "sem_bloqueio", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)

	if err := db.Create(&models.Block{BlockerID: viewer.ID, BlockedID: iBlocked.ID}).Error; err != nil {
		t.Fatalf("seed block: %v", err)
	}
	if err := db.Create(&models.Block{BlockerID: blockedMe.ID, BlockedID: viewer.ID}).Error; err != nil {
		t.Fatalf("seed block reverso: %v", err)
	}

	pool, err := GetEligibleCandidates(db, viewer.ID, today())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if containsID(pool, iBlocked.ID) || containsID(pool, blockedMe.ID) {
		t.Fatalf("bloqueio em qualquer direção exclui: %v", pool)
	}
	if !containsID(pool, clean.ID) {
		t.Fatalf("candidato sem bloqueio deveria entrar: %v", pool)
	}
}

func TestPoolExcludesActiveMatchButNotClosed(t *testing.T) {
	db := testDB(t)

	viewer := seedUser(t, db, "viewer", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, viewer.ID, "", 0, 0, 0, "")

	active := seedUser(t, db, "match_ativo", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	closed := seedUser(t, db, "match_encerrado", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)

	if err := db.Create(&models.Match{
		UserAID: viewer.ID, UserBID: active.ID, Status: models.MATCH_STATUS_ACTIVE,
	}).Error; err != nil {
		t.Fatalf("seed match ativo: %v", err)
	}
	seedClosedMatch(t, db, viewer.ID, closed.ID, models.MATCH_REASON_MUTUAL, 10)

	pool, err := GetEligibleCandidates(db, viewer.ID, today())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if containsID(pool, active.ID) {
		t.Fatalf("par de match ativo deveria sair do pool: %v", pool)
	}
	if !containsID(pool, closed.ID) {
		t.Fatalf("match encerrado não exclui do pool: %v", pool)
	}
}

func TestPoolExcludesSameDayExposureAnySurface(t *testing.T) {
	db := testDB(t)

	viewer := seedUser(t, db, "viewer", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, viewer.ID, "", 0, 0, 0, "")

	seenToday := seedUser(t, db, "visto_hoje", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	seenYesterday := seedUser(t, db, "visto_ontem", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)

	day := today()
	seedExposure(t, db, viewer.ID, seenToday.ID, day, "search")
	seedExposure(t, db, viewer.ID, seenYesterday.ID, tools.ShiftDay(day, -1), "deck")

	pool, err := GetEligibleCandidates(db, viewer.ID, day)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if containsID(pool, seenToday.ID) {
		t.Fatalf("exposição no mesmo dia, em qualquer superfície, exclui: %v", pool)
	}
	if !containsID(pool, seenYesterday.ID) {
		t.Fatalf("exposição de dias anteriores não exclui do pool: %v", pool)
	}
}

func TestPoolDistanceOnlyWhenBothHaveCoordinates(t *testing.T) {
	db := testDB(t)

	// viewer em São Paulo com limite de 50km
	viewer := seedUser(t, db, "viewer", models.USER_GENDER_FEMALE, birthdateYearsAgo(30),
		floatPtr(-23.5505), floatPtr(-46.6333))
	seedPreference(t, db, viewer.ID, "", 0, 0, 50, "")

	nearby := seedUser(t, db, "perto", models.USER_GENDER_MALE, birthdateYearsAgo(30),
		floatPtr(-23.56), floatPtr(-46.64))
	farAway := seedUser(t, db, "no_rio", models.USER_GENDER_MALE, birthdateYearsAgo(30),
		floatPtr(-22.9068), floatPtr(-43.1729))
	noCoords := seedUser(t, db, "sem_coordenada", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)

	// candidato perto, mas cujo PRÓPRIO limite exclui o viewer
	strict := seedUser(t, db, "limite_proprio", models.USER_GENDER_MALE, birthdateYearsAgo(30),
		floatPtr(-23.70), floatPtr(-46.80))
	seedPreference(t, db, strict.ID, "", 0, 0, 5, "")

	pool, err := GetEligibleCandidates(db, viewer.ID, today())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !containsID(pool, nearby.ID) {
		t.Fatalf("candidato dentro do raio deveria entrar: %v", pool)
	}
	if containsID(pool, farAway.ID) {
		t.Fatalf("candidato fora do raio do viewer deveria sair: %v", pool)
	}
	if !containsID(pool, noCoords.ID) {
		t.Fatalf("sem coordenadas dos dois lados o filtro não se aplica: %v", pool)
	}
	if containsID(pool, strict.ID) {
		t.Fatalf("limite de distância do candidato também vale: %v", pool)
	}
}

func TestPoolStructureCompatibility(t *testing.T) {
	db := testDB(t)

	viewer := seedUser(t, db, "viewer", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, viewer.ID, "", 0, 0, 0, models.STRUCTURE_EXCLUSIVE)

	nonExclusive := seedUser(t, db, "nao_exclusivo", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, nonExclusive.ID, "", 0, 0, 0, models.STRUCTURE_NON_EXCLUSIVE)

	open := seedUser(t, db, "aberto", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, open.ID, "", 0, 0, 0, models.STRUCTURE_OPEN)

	undeclared := seedUser(t, db, "nao_declarado", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)

	pool, err := GetEligibleCandidates(db, viewer.ID, today())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if containsID(pool, nonExclusive.ID) {
		t.Fatalf("exclusivo × não exclusivo é incompatível: %v", pool)
	}
	if !containsID(pool, open.ID) {
		t.Fatalf("open é compatível com qualquer estrutura: %v", pool)
	}
	if !containsID(pool, undeclared.ID) {
		t.Fatalf("estrutura não declarada é compatível com qualquer: %v", pool)
	}
}

func TestPoolMissingViewerDataYieldsEmpty(t *testing.T) {
	db := testDB(t)

	seedUser(t, db, "alguem", models.USER_GENDER_MALE, birthdateYearsAgo(30), nil, nil)

	// viewer inexistente
	pool, err := GetEligibleCandidates(db, 999, today())
	if err != nil || len(pool) != 0 {
		t.Fatalf("viewer inexistente: pool vazio sem erro, veio %v / %v", pool, err)
	}

	// viewer sem preferências
	noPref := seedUser(t, db, "sem_pref", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)
	pool, err = GetEligibleCandidates(db, noPref.ID, today())
	if err != nil || len(pool) != 0 {
		t.Fatalf("viewer sem preferências: pool vazio sem erro, veio %v / %v", pool, err)
	}

	// viewer sem birthdate válido
	noBirth := seedUser(t, db, "sem_nascimento", models.USER_GENDER_FEMALE, "", nil, nil)
	seedPreference(t, db, noBirth.ID, "", 0, 0, 0, "")
	pool, err = GetEligibleCandidates(db, noBirth.ID, today())
	if err != nil || len(pool) != 0 {
		t.Fatalf("viewer sem birthdate: pool vazio sem erro, veio %v / %v", pool, err)
	}
}

func TestPoolReturnsSortedIDs(t *testing.T) {
	db := testDB(t)

	viewer := seedUser(t, db, "viewer", models.USER_GENDER_FEMALE, birthdateYearsAgo(30), nil, nil)
	seedPreference(t, db, viewer.ID, "", 0, 0, 0, "")

	for i := 0; i < 6; i++ {
		seedUser(t, db, "cand_"+string(rune('a'+i)), models.USER_GENDER_MALE, birthdateYearsAgo(25+i), nil, nil)
	}

	pool, err := GetEligibleCandidates(db, viewer.ID, today())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(pool) != 6 {
		t.Fatalf("esperados 6 candidatos, vieram %d", len(pool))
	}
	for i := 1; i < len(pool); i++ {
		if pool[i-1] >= pool[i] {
			t.Fatalf("pool deveria sair ordenado por id: %v", pool)
		}
	}
}

package matchmaking

import (
	"context"
	"fmt"
	"time"

	"amora/config"
	"amora/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

// ExplanationGenerator é o colaborador externo que escreve a justificativa
// de um slot. A implementação real fica em tools (OpenAI); nos testes entra
// um stub. nil = desligado, só templates.
type ExplanationGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DeckResult é o retorno único do orquestrador: os itens do deck e a flag de
// "foi gerado agora" (false = cache hit do dia).
type DeckResult struct {
	Deck  *models.DailyDeck
	Items []models.DeckItem
	Fresh bool
}

// Orchestrator amarra o pipeline Pool -> Scorer -> Boost -> Selector e é o
// único componente com efeito de escrita além de leitura.
type Orchestrator struct {
	DB        *gorm.DB
	Cfg       config.Matchmaking
	Explainer ExplanationGenerator
	// Timeout por chamada de explicação; zero vira 10s.
	ExplainTimeout time.Duration
	Log            *zap.Logger
}

func NewOrchestrator(db *gorm.DB, cfg config.Matchmaking, explainer ExplanationGenerator, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{DB: db, Cfg: cfg, Explainer: explainer, Log: log}
}

// GetOrCreateDeck é idempotente por (user, day): uma vez criado, o deck do
// dia volta inalterado não importa quantas vezes seja chamado. No cache miss
// roda o pipeline, persiste deck + exposures e devolve o resultado. Pool
// vazio ou scoring vazio não persiste nada e devolve deck vazio "fresh"
// (distinguível de cache hit pela flag).
func (o *Orchestrator) GetOrCreateDeck(userID int64, day string) (DeckResult, error) {
	if deck, items, err := o.loadDeck(userID, day); err != nil {
		return DeckResult{}, err
	} else if deck != nil {
		return DeckResult{Deck: deck, Items: items, Fresh: false}, nil
	}

	pool, err := GetEligibleCandidates(o.DB, userID, day)
	if err != nil {
		return DeckResult{}, err
	}
	if len(pool) == 0 {
		return DeckResult{Fresh: true}, nil
	}

	scores, err := ScoreCandidates(o.DB, o.Cfg, userID, pool)
	if err != nil {
		return DeckResult{}, err
	}
	if len(scores) == 0 {
		return DeckResult{Fresh: true}, nil
	}

	boosts, err := GetBoostMap(o.DB, o.Cfg, userID, pool, day)
	if err != nil {
		return DeckResult{}, err
	}

	slots := SelectTopN(o.Cfg, scores, boosts)
	if len(slots) == 0 {
		return DeckResult{Fresh: true}, nil
	}

	// Explicações fora da transação: são linhas independentes referenciadas
	// por ref, e a falha de uma nunca derruba o deck.
	refs := make([]string, len(slots))
	for i, slot := range slots {
		refs[i] = o.explainSlot(userID, slot, day)
	}

	deck, items, err := o.persistDeck(userID, day, slots, refs)
	if err != nil {
		return DeckResult{}, err
	}

	o.recordExposures(userID, day, items)

	return DeckResult{Deck: deck, Items: items, Fresh: true}, nil
}

func (o *Orchestrator) loadDeck(userID int64, day string) (*models.DailyDeck, []models.DeckItem, error) {
	var deck models.DailyDeck
	if err := o.DB.Where("user_id = ? AND day = ?", userID, day).First(&deck).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var items []models.DeckItem
	if err := o.DB.
		Where("deck_id = ?", deck.ID).
		Order("position asc").
		Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &deck, items, nil
}

// persistDeck grava o deck e os itens em uma transação. Se outra requisição
// ganhou a corrida do dia (violação do unique (user_id, day)), descartamos o
// nosso e relemos o deck vencedor.
func (o *Orchestrator) persistDeck(userID int64, day string, slots []DeckSlot, refs []string) (*models.DailyDeck, []models.DeckItem, error) {
	tx := o.DB.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	deck := models.DailyDeck{UserID: userID, Day: day}
	if err := tx.Create(&deck).Error; err != nil {
		tx.Rollback()
		return o.reloadAfterConflict(userID, day, refs, err)
	}

	items := make([]models.DeckItem, 0, len(slots))
	for i, slot := range slots {
		item := models.DeckItem{
			DeckID:         deck.ID,
			Position:       i + 1,
			CandidateID:    slot.CandidateID,
			Score:          slot.Score,
			Bucket:         slot.Bucket,
			ExplanationRef: refs[i],
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, nil, err
		}
		items = append(items, item)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return o.reloadAfterConflict(userID, day, refs, err)
	}

	return &deck, items, nil
}

// reloadAfterConflict relê o deck vencedor e descarta as explicações já
// persistidas do lado perdedor — nenhum DeckItem vai referenciá-las.
func (o *Orchestrator) reloadAfterConflict(userID int64, day string, refs []string, cause error) (*models.DailyDeck, []models.DeckItem, error) {
	deck, items, err := o.loadDeck(userID, day)
	if err != nil {
		return nil, nil, err
	}
	if deck == nil {
		// não era corrida de unique index, é erro de verdade
		return nil, nil, cause
	}
	o.dropOrphanExplanations(refs)
	o.Log.Info("deck: corrida de geração resolvida pelo unique index, usando o vencedor",
		zap.Int64("user_id", userID), zap.String("day", day))
	return deck, items, nil
}

func (o *Orchestrator) dropOrphanExplanations(refs []string) {
	valid := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref != "" {
			valid = append(valid, ref)
		}
	}
	if len(valid) == 0 {
		return
	}
	if err := o.DB.Where("ref IN (?)", valid).Delete(&models.Explanation{}).Error; err != nil {
		o.Log.Warn("deck: falha ao descartar explicações órfãs", zap.Error(err))
	}
}

/************************************************
/**** MARK: EXPLANATIONS ****/
/************************************************/

// Templates estáticos por bucket: o fallback quando o gerador está off,
// estoura timeout ou erra. O candidato nunca sai do deck por falta de texto.
var bucketTemplates = map[string]string{
	models.BUCKET_CORE_FIT:         "Vocês combinam no que mais importa: intenção e jeito de viver.",
	models.BUCKET_LIFESTYLE_FIT:    "O dia a dia de vocês dois tem muito em comum.",
	models.BUCKET_CONVERSATION_FIT: "A energia de vocês hoje combina — boa hora pra puxar conversa.",
	models.BUCKET_EXPLORER:         "Alguém diferente do seu padrão, com potencial de surpreender.",
	models.BUCKET_WILDCARD:         "Uma aposta do dia: vale um oi.",
}

// explainSlot obtém (IA ou template) e persiste a explicação, devolvendo o
// ref. Falha de insert é logada e devolve ref vazio — nunca erro.
func (o *Orchestrator) explainSlot(viewerID int64, slot DeckSlot, day string) string {
	body := bucketTemplates[slot.Bucket]
	source := models.EXPLANATION_SOURCE_TEMPLATE

	if o.Explainer != nil {
		timeout := o.ExplainTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		prompt := fmt.Sprintf(
			"Slot do deck de %s: candidato %d, bucket %s, compatibilidade %.0f/100.",
			day, slot.CandidateID, slot.Bucket, slot.Score,
		)
		text, err := o.Explainer.Generate(ctx, prompt)
		cancel()
		if err != nil {
			o.Log.Warn("deck: gerador de explicação falhou, usando template",
				zap.Int64("viewer_id", viewerID),
				zap.Int64("candidate_id", slot.CandidateID),
				zap.Error(err))
		} else {
			body = text
			source = models.EXPLANATION_SOURCE_AI
		}
	}

	exp := models.Explanation{
		Ref:         uuid.NewString(),
		ViewerID:    viewerID,
		CandidateID: slot.CandidateID,
		Bucket:      slot.Bucket,
		Body:        body,
		Source:      source,
	}
	if err := o.DB.Create(&exp).Error; err != nil {
		o.Log.Warn("deck: falha ao persistir explicação",
			zap.Int64("viewer_id", viewerID),
			zap.Int64("candidate_id", slot.CandidateID),
			zap.Error(err))
		return ""
	}
	return exp.Ref
}

/************************************************
/**** MARK: EXPOSURES ****/
/************************************************/

// recordExposures registra uma linha de exposição por item do deck.
// Insert idempotente: se o candidato já foi exposto hoje nessa superfície
// (invocação duplicada), pula. Falha aqui é logada e engolida — exposição
// não registrada jamais pode impedir a entrega de um deck válido.
func (o *Orchestrator) recordExposures(viewerID int64, day string, items []models.DeckItem) {
	for _, item := range items {
		var existing models.CandidateExposure
		err := o.DB.
			Where("viewer_id = ? AND candidate_id = ? AND day = ? AND surface = ?",
				viewerID, item.CandidateID, day, models.EXPOSURE_SURFACE_DECK).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !gorm.IsRecordNotFoundError(err) {
			o.Log.Warn("deck: falha ao consultar exposição", zap.Error(err))
			continue
		}

		exposure := models.CandidateExposure{
			ViewerID:    viewerID,
			CandidateID: item.CandidateID,
			Day:         day,
			Surface:     models.EXPOSURE_SURFACE_DECK,
		}
		if err := o.DB.Create(&exposure).Error; err != nil {
			// unique index segura corrida de duplicata; só registra e segue
			o.Log.Warn("deck: falha ao registrar exposição",
				zap.Int64("viewer_id", viewerID),
				zap.Int64("candidate_id", item.CandidateID),
				zap.Error(err))
		}
	}
}

package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Configuration struct {
	ApiPort  string `mapstructure:"api_port"`
	LogJSON  bool   `mapstructure:"log_json"`
	LogDebug bool   `mapstructure:"log_debug"`

	Database string `mapstructure:"database"` // "sqlite3" ou "postgres"
	DbHost   string `mapstructure:"db_host"`
	DbPort   string `mapstructure:"db_port"`
	DbUser   string `mapstructure:"db_user"`
	DbName   string `mapstructure:"db_name"`
	DbPass   string `mapstructure:"db_pass"`

	Matchmaking Matchmaking `mapstructure:"matchmaking"`

	Explainer Explainer `mapstructure:"explainer"`

	Worker Worker `mapstructure:"worker"`
}

// Matchmaking concentra todos os valores de tuning do pipeline de deck.
// Os números são valores de produto, não de arquitetura: o que importa é o
// papel relativo de cada um (recompensar reciprocidade, punir repetição,
// amortecer similaridade de baixo sinal). Por isso ficam em config e não
// hardcoded no código.
type Matchmaking struct {
	DeckSize int `mapstructure:"deck_size"`

	// Pesos dos quatro sub-scores (devem somar ~1.0).
	IntentWeight       float64 `mapstructure:"intent_weight"`
	FoundationalWeight float64 `mapstructure:"foundational_weight"`
	LifestyleWeight    float64 `mapstructure:"lifestyle_weight"`
	PulseWeight        float64 `mapstructure:"pulse_weight"`

	// Intent
	IntentTagBonus    float64 `mapstructure:"intent_tag_bonus"`
	IntentTagBonusCap float64 `mapstructure:"intent_tag_bonus_cap"`

	// Foundational (pilares)
	LowSignalVariance       float64 `mapstructure:"low_signal_variance"`
	ReferenceVariance       float64 `mapstructure:"reference_variance"`
	FoundationalTagBonus    float64 `mapstructure:"foundational_tag_bonus"`
	FoundationalTagBonusCap float64 `mapstructure:"foundational_tag_bonus_cap"`

	// Lifestyle
	LifestyleMatchBonus  float64 `mapstructure:"lifestyle_match_bonus"`
	LifestyleHardPenalty float64 `mapstructure:"lifestyle_hard_penalty"`

	// Pulse
	SocialCapacityGain   float64 `mapstructure:"social_capacity_gain"`
	InitiativeBonus      float64 `mapstructure:"initiative_bonus"`
	InitiativeCloseMax   float64 `mapstructure:"initiative_close_max"`
	InitiativeDivergeMin float64 `mapstructure:"initiative_diverge_min"`
	GhostRiskThreshold   float64 `mapstructure:"ghost_risk_threshold"`
	GhostRiskPenalty     float64 `mapstructure:"ghost_risk_penalty"`

	// Boost (janela curta de interação)
	BoostLookbackDays      int     `mapstructure:"boost_lookback_days"`
	ShownMeDelta           float64 `mapstructure:"shown_me_delta"`
	PendingInterestDelta   float64 `mapstructure:"pending_interest_delta"`
	PositiveResponseDelta  float64 `mapstructure:"positive_response_delta"`
	RepeatPenaltyMedium    float64 `mapstructure:"repeat_penalty_medium"` // 2-3 exposições
	RepeatPenaltyHeavy     float64 `mapstructure:"repeat_penalty_heavy"`  // 4+
	GhostingWindowDays     int     `mapstructure:"ghosting_window_days"`
	GhostingPenalty        float64 `mapstructure:"ghosting_penalty"`
	HardNegativeWindowDays int     `mapstructure:"hard_negative_window_days"`
	HardNegativePenalty    float64 `mapstructure:"hard_negative_penalty"`

	// Thresholds do preenchimento por bucket quando o pool é pequeno.
	CoreIntentMin       float64 `mapstructure:"core_intent_min"`
	CoreFoundationalMin float64 `mapstructure:"core_foundational_min"`
	LifestyleFitMin     float64 `mapstructure:"lifestyle_fit_min"`
	ConversationFitMin  float64 `mapstructure:"conversation_fit_min"`
	ExplorerTotalMin    float64 `mapstructure:"explorer_total_min"`
}

type Explainer struct {
	// Se vazio, o gerador de explicação fica desligado e usamos só templates.
	ApiKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Worker struct {
	PrecomputeEnabled bool `mapstructure:"precompute_enabled"`
	// Hora local a partir da qual o worker passa a pré-gerar os decks do dia.
	PrecomputeHour  int `mapstructure:"precompute_hour"`
	PrecomputeBatch int `mapstructure:"precompute_batch"`
	TickSeconds     int `mapstructure:"tick_seconds"`
}

// DefaultMatchmaking devolve os valores de tuning observados em produção.
func DefaultMatchmaking() Matchmaking {
	return Matchmaking{
		DeckSize: 5,

		IntentWeight:       0.35,
		FoundationalWeight: 0.30,
		LifestyleWeight:    0.20,
		PulseWeight:        0.15,

		IntentTagBonus:    5,
		IntentTagBonusCap: 20,

		LowSignalVariance:       0.01,
		ReferenceVariance:       0.05,
		FoundationalTagBonus:    5,
		FoundationalTagBonusCap: 20,

		LifestyleMatchBonus:  8,
		LifestyleHardPenalty: 20,

		SocialCapacityGain:   20,
		InitiativeBonus:      15,
		InitiativeCloseMax:   0.2,
		InitiativeDivergeMin: 0.6,
		GhostRiskThreshold:   0.7,
		GhostRiskPenalty:     15,

		BoostLookbackDays:      7,
		ShownMeDelta:           12,
		PendingInterestDelta:   8,
		PositiveResponseDelta:  6,
		RepeatPenaltyMedium:    6,
		RepeatPenaltyHeavy:     14,
		GhostingWindowDays:     30,
		GhostingPenalty:        10,
		HardNegativeWindowDays: 90,
		HardNegativePenalty:    20,

		CoreIntentMin:       70,
		CoreFoundationalMin: 65,
		LifestyleFitMin:     70,
		ConversationFitMin:  70,
		ExplorerTotalMin:    60,
	}
}

// Get carrega a configuração via viper: arquivo JSON (se existir) + overrides
// por env (prefixo AMORA_, ex: AMORA_DB_HOST).
func Get(path string) Configuration {
	v := viper.New()
	v.SetEnvPrefix("amora")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("config: não consegui ler %s (%v), seguindo com defaults/env", path, err)
		}
	}

	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("config: unmarshal: %v", err)
	}
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_port", "8080")
	v.SetDefault("log_json", false)
	v.SetDefault("log_debug", false)
	v.SetDefault("database", "sqlite3")

	mm := DefaultMatchmaking()
	v.SetDefault("matchmaking.deck_size", mm.DeckSize)
	v.SetDefault("matchmaking.intent_weight", mm.IntentWeight)
	v.SetDefault("matchmaking.foundational_weight", mm.FoundationalWeight)
	v.SetDefault("matchmaking.lifestyle_weight", mm.LifestyleWeight)
	v.SetDefault("matchmaking.pulse_weight", mm.PulseWeight)
	v.SetDefault("matchmaking.intent_tag_bonus", mm.IntentTagBonus)
	v.SetDefault("matchmaking.intent_tag_bonus_cap", mm.IntentTagBonusCap)
	v.SetDefault("matchmaking.low_signal_variance", mm.LowSignalVariance)
	v.SetDefault("matchmaking.reference_variance", mm.ReferenceVariance)
	v.SetDefault("matchmaking.foundational_tag_bonus", mm.FoundationalTagBonus)
	v.SetDefault("matchmaking.foundational_tag_bonus_cap", mm.FoundationalTagBonusCap)
	v.SetDefault("matchmaking.lifestyle_match_bonus", mm.LifestyleMatchBonus)
	v.SetDefault("matchmaking.lifestyle_hard_penalty", mm.LifestyleHardPenalty)
	v.SetDefault("matchmaking.social_capacity_gain", mm.SocialCapacityGain)
	v.SetDefault("matchmaking.initiative_bonus", mm.InitiativeBonus)
	v.SetDefault("matchmaking.initiative_close_max", mm.InitiativeCloseMax)
	v.SetDefault("matchmaking.initiative_diverge_min", mm.InitiativeDivergeMin)
	v.SetDefault("matchmaking.ghost_risk_threshold", mm.GhostRiskThreshold)
	v.SetDefault("matchmaking.ghost_risk_penalty", mm.GhostRiskPenalty)
	v.SetDefault("matchmaking.boost_lookback_days", mm.BoostLookbackDays)
	v.SetDefault("matchmaking.shown_me_delta", mm.ShownMeDelta)
	v.SetDefault("matchmaking.pending_interest_delta", mm.PendingInterestDelta)
	v.SetDefault("matchmaking.positive_response_delta", mm.PositiveResponseDelta)
	v.SetDefault("matchmaking.repeat_penalty_medium", mm.RepeatPenaltyMedium)
	v.SetDefault("matchmaking.repeat_penalty_heavy", mm.RepeatPenaltyHeavy)
	v.SetDefault("matchmaking.ghosting_window_days", mm.GhostingWindowDays)
	v.SetDefault("matchmaking.ghosting_penalty", mm.GhostingPenalty)
	v.SetDefault("matchmaking.hard_negative_window_days", mm.HardNegativeWindowDays)
	v.SetDefault("matchmaking.hard_negative_penalty", mm.HardNegativePenalty)
	v.SetDefault("matchmaking.core_intent_min", mm.CoreIntentMin)
	v.SetDefault("matchmaking.core_foundational_min", mm.CoreFoundationalMin)
	v.SetDefault("matchmaking.lifestyle_fit_min", mm.LifestyleFitMin)
	v.SetDefault("matchmaking.conversation_fit_min", mm.ConversationFitMin)
	v.SetDefault("matchmaking.explorer_total_min", mm.ExplorerTotalMin)

	v.SetDefault("explainer.model", "gpt-4.1-mini")
	v.SetDefault("explainer.timeout_seconds", 10)

	v.SetDefault("worker.precompute_enabled", false)
	v.SetDefault("worker.precompute_hour", 6)
	v.SetDefault("worker.precompute_batch", 100)
	v.SetDefault("worker.tick_seconds", 60)
}

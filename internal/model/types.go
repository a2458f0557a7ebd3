package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Condition kinds understood by the codec.
const (
	ConditionKindTernary  = "ternary"
	ConditionKindInterval = "interval"
)

// SymbolRecord is one ternary predicate: either a wildcard or an exact value.
type SymbolRecord struct {
	Wildcard bool    `json:"wildcard,omitempty"`
	Value    float64 `json:"value,omitempty"`
}

// IntervalRecord is one ordered-bound predicate over a real feature.
type IntervalRecord struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ConditionRecord is the serialized form of a rule condition. Exactly one of
// Symbols or Intervals is populated, selected by Kind.
type ConditionRecord struct {
	Kind      string           `json:"kind"`
	Symbols   []SymbolRecord   `json:"symbols,omitempty"`
	Intervals []IntervalRecord `json:"intervals,omitempty"`
}

// ClassifierRecord is the canonical persisted schema for one classifier.
type ClassifierRecord struct {
	Condition     ConditionRecord `json:"condition"`
	Action        int             `json:"action"`
	Prediction    float64         `json:"prediction"`
	Error         float64         `json:"error"`
	Fitness       float64         `json:"fitness"`
	ActionSetSize float64         `json:"action_set_size"`
	Numerosity    int             `json:"numerosity"`
	Experience    int             `json:"experience"`
	Timestamp     int             `json:"timestamp"`
}

// PopulationSnapshot is a point-in-time dump of the whole rule population.
type PopulationSnapshot struct {
	VersionedRecord
	ID          string             `json:"id"`
	Scape       string             `json:"scape"`
	Episode     int                `json:"episode"`
	MaxSize     int                `json:"max_size"`
	Classifiers []ClassifierRecord `json:"classifiers"`
}

// RunRecord summarizes one training run.
type RunRecord struct {
	VersionedRecord
	ID               string  `json:"id"`
	CreatedAtUTC     string  `json:"created_at_utc"`
	Scape            string  `json:"scape"`
	Seed             int64   `json:"seed"`
	Episodes         int     `json:"episodes"`
	PopulationID     string  `json:"population_id"`
	FinalAccuracy    float64 `json:"final_accuracy"`
	MeanReward       float64 `json:"mean_reward"`
	MacroClassifiers int     `json:"macro_classifiers"`
	MicroClassifiers int     `json:"micro_classifiers"`
}

// EpisodeDiagnostics records per-episode training telemetry.
type EpisodeDiagnostics struct {
	Episode          int     `json:"episode"`
	Explore          bool    `json:"explore"`
	Steps            int     `json:"steps"`
	Reward           float64 `json:"reward"`
	WindowAccuracy   float64 `json:"window_accuracy"`
	MacroClassifiers int     `json:"macro_classifiers"`
	MicroClassifiers int     `json:"micro_classifiers"`
	MeanError        float64 `json:"mean_error"`
}

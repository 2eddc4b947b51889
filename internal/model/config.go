package model

// Config holds the full engine configuration. Values are resolved through
// the usual hierarchy: CLI flags, REFIND_* environment variables, the
// config file, then the defaults below.
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Embedding   EmbeddingConfig   `yaml:"embedding" mapstructure:"embedding"`
	Matching    MatchingConfig    `yaml:"matching" mapstructure:"matching"`
	Claims      ClaimsConfig      `yaml:"claims" mapstructure:"claims"`
	Notify      NotifyConfig      `yaml:"notify" mapstructure:"notify"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// StoreConfig configures report/claim persistence.
type StoreConfig struct {
	// Path to the SQLite database. Empty means ~/.refind/refind.db.
	Path string `yaml:"path" mapstructure:"path"`
}

// EmbeddingConfig configures the sentence-embedding provider.
type EmbeddingConfig struct {
	// Provider name: "openai", "ollama", "" (disabled).
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific).
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for OpenAI.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL for custom endpoints (e.g. Ollama, Azure OpenAI).
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout for API requests, in seconds.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// CacheTTL is how long embedded vectors stay cached, in seconds.
	// Zero disables the cache.
	CacheTTL int `yaml:"cache_ttl" mapstructure:"cache_ttl"`

	// RequestsPerSecond throttles calls to the provider. Zero disables
	// throttling.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// MatchingConfig holds the candidate ranker's tunable constants.
type MatchingConfig struct {
	// SemanticWeight multiplies the embedding cosine score.
	SemanticWeight float64 `yaml:"semantic_weight" mapstructure:"semantic_weight"`

	// LocationBonus is added when the two locations are fuzzy-similar.
	LocationBonus float64 `yaml:"location_bonus" mapstructure:"location_bonus"`

	// LocationThreshold is the token-set similarity at which two
	// locations count as the same place.
	LocationThreshold float64 `yaml:"location_threshold" mapstructure:"location_threshold"`

	// AdmissionThreshold is the minimum combined score for a candidate
	// to appear in ranked results.
	AdmissionThreshold float64 `yaml:"admission_threshold" mapstructure:"admission_threshold"`

	// Limit caps the number of ranked results.
	Limit int `yaml:"limit" mapstructure:"limit"`

	// MaskKeepTokens is how many leading tokens survive privacy masking.
	MaskKeepTokens int `yaml:"mask_keep_tokens" mapstructure:"mask_keep_tokens"`
}

// ClaimsConfig holds claim-verification constants.
type ClaimsConfig struct {
	// MultiSignalThreshold is the mean score at which the strict
	// five-signal verification admits a claim.
	MultiSignalThreshold float64 `yaml:"multi_signal_threshold" mapstructure:"multi_signal_threshold"`

	// DateWindowDays is the proximity window for the date signal.
	DateWindowDays int `yaml:"date_window_days" mapstructure:"date_window_days"`
}

// NotifyConfig configures the best-effort match notification sink.
type NotifyConfig struct {
	// Endpoint is an ntfy-style HTTP endpoint. Empty logs notifications
	// instead of delivering them.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Timeout for notification requests, in seconds.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`
}

// ConcurrencyConfig bounds background work.
type ConcurrencyConfig struct {
	// MatchWorkers is the pool size for batch re-matching.
	MatchWorkers int `yaml:"match_workers" mapstructure:"match_workers"`
}

// DefaultConfig returns the engine defaults. The matching and claims
// numbers are design constants, not derived values; they are exposed here
// so deployments can tune them without rebuilding.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "",
		},
		Embedding: EmbeddingConfig{
			Provider:          "openai",
			Model:             "",
			Timeout:           30,
			CacheTTL:          3600,
			RequestsPerSecond: 0,
		},
		Matching: MatchingConfig{
			SemanticWeight:     0.85,
			LocationBonus:      0.15,
			LocationThreshold:  0.70,
			AdmissionThreshold: 0.60,
			Limit:              5,
			MaskKeepTokens:     1,
		},
		Claims: ClaimsConfig{
			MultiSignalThreshold: 0.75,
			DateWindowDays:       2,
		},
		Notify: NotifyConfig{
			Endpoint: "",
			Timeout:  10,
		},
		Concurrency: ConcurrencyConfig{
			MatchWorkers: 4,
		},
	}
}

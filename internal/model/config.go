package model

import "time"

// Config holds the full pipeline configuration
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Match      MatchConfig      `yaml:"match"`
	Oracle     OracleConfig     `yaml:"oracle"`
	Cache      CacheConfig      `yaml:"cache"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
	Output     OutputConfig     `yaml:"output"`
}

// DataConfig locates the input datasets and the artifact directory
type DataConfig struct {
	// Dir is where all generated artifacts live (narrators.json, chains.json, ...)
	Dir string `yaml:"dir"`

	// DatasetPath is the raw chain dataset CSV (collection, number, chain list)
	DatasetPath string `yaml:"dataset"`

	// BiographyPath is the authoritative narrator biography CSV
	BiographyPath string `yaml:"biography"`

	// SecondaryPath is the independent chain encoding CSV
	SecondaryPath string `yaml:"secondary"`

	// AliasPath is the manually curated name -> narrator ID table
	AliasPath string `yaml:"aliases"`
}

// MatchConfig tunes the identity matcher
type MatchConfig struct {
	// Threshold is the minimum containment confidence for the general matcher
	Threshold float64 `yaml:"threshold"`

	// MinPrefixLen is the minimum shared length for strict prefix containment
	MinPrefixLen int `yaml:"min_prefix_len"`

	// MinAnyLen is the minimum shared length for strict match-anywhere containment
	MinAnyLen int `yaml:"min_any_len"`
}

// OracleConfig configures the chain-suggestion oracle service
type OracleConfig struct {
	// Provider name: "openai" or "" (disabled)
	Provider string `yaml:"provider"`

	Model   string `yaml:"model"`
	APIKey  string `yaml:"-"`
	BaseURL string `yaml:"base_url"`

	// Timeout per request, seconds
	Timeout int `yaml:"timeout"`

	MaxTokens int `yaml:"max_tokens"`

	// RequestDelay is the fixed inter-call delay (rate-limit discipline)
	RequestDelay time.Duration `yaml:"request_delay"`

	// MaxRetries bounds retries per call; RetryDelay is the fixed backoff
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// CacheConfig configures oracle response caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// CheckpointConfig configures resumable-run state
type CheckpointConfig struct {
	Path string `yaml:"path"`

	// SaveEvery flushes progress after this many processed items
	SaveEvery int `yaml:"save_every"`
}

// OutputConfig controls logging and artifact formatting
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`

	// Indent pretty-prints JSON artifacts
	Indent bool `yaml:"indent"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           "data",
			DatasetPath:   "datasets/sanadset.csv",
			BiographyPath: "datasets/all_rawis.csv",
			SecondaryPath: "datasets/all_hadiths_clean.csv",
			AliasPath:     "data/aliases.json",
		},
		Match: MatchConfig{
			Threshold:    0.6,
			MinPrefixLen: 8,
			MinAnyLen:    12,
		},
		Oracle: OracleConfig{
			Provider:     "", // Disabled by default
			Model:        "",
			Timeout:      30,
			MaxTokens:    1000,
			RequestDelay: 500 * time.Millisecond,
			MaxRetries:   3,
			RetryDelay:   2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".silsila-cache",
			TTL:     30 * 24 * time.Hour,
		},
		Checkpoint: CheckpointConfig{
			Path:      "data/checkpoint.json",
			SaveEvery: 50,
		},
		Output: OutputConfig{
			Verbose: false,
			Indent:  true,
		},
	}
}

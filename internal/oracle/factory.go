package oracle

import (
	"fmt"
	"strings"
)

// NewProvider creates an oracle provider based on configuration. An
// empty provider name disables the oracle; callers must handle nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown oracle provider: %s (supported: openai)", config.Provider)
	}
}

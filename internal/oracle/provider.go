// Package oracle asks a natural-language service for the correct
// narrator chain of a record. Responses are treated as unreliable:
// every suggested name must be re-validated through the identity
// matcher before it touches a chain.
package oracle

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/isnadlab/silsila/internal/model"
	"github.com/isnadlab/silsila/internal/store"
)

const maxPromptTextRunes = 400

// Provider defines the interface for oracle backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// SuggestChain asks for the corrected narrator chain of one record
	SuggestChain(ctx context.Context, req SuggestRequest) (*SuggestResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SuggestRequest identifies the record and carries both disagreeing
// chain encodings.
type SuggestRequest struct {
	Collection string
	Number     string
	Text       string

	Primary   []string
	Secondary []string

	// Model overrides the configured model for this request
	Model string

	MaxTokens int
}

// SuggestedName is one narrator in the oracle's proposed chain.
type SuggestedName struct {
	NameAr string `json:"name_ar"`
	NameEn string `json:"name_en"`
}

// SuggestResponse is the parsed oracle output.
type SuggestResponse struct {
	Chain      []SuggestedName `json:"correct_chain"`
	Confidence string          `json:"confidence"`
	Notes      string          `json:"notes"`

	Model      string `json:"-"`
	TokensUsed int    `json:"-"`
}

// ConfigFromModel converts the application oracle settings.
func ConfigFromModel(c model.OracleConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}

// Config holds oracle provider configuration
type Config struct {
	// Provider name: "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the hosted API
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt renders the correction request. The record text is
// truncated so one long narration cannot blow the token budget.
func BuildPrompt(req SuggestRequest) string {
	text := req.Text
	if utf8.RuneCountInString(text) > maxPromptTextRunes {
		runes := []rune(text)
		text = string(runes[:maxPromptTextRunes]) + "..."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Determine the correct chain of narrators (isnad) for this hadith.\n\n")
	fmt.Fprintf(&sb, "Collection: %s\n", store.CollectionTitle(req.Collection))
	fmt.Fprintf(&sb, "Hadith number: %s\n", req.Number)
	if text != "" {
		fmt.Fprintf(&sb, "Text: %s\n", text)
	}
	fmt.Fprintf(&sb, "\nTwo sources disagree on the chain:\n")
	fmt.Fprintf(&sb, "Source A: %s\n", strings.Join(req.Primary, "، "))
	fmt.Fprintf(&sb, "Source B: %s\n", strings.Join(req.Secondary, "، "))
	sb.WriteString(`
Respond with JSON only, in this exact shape:
{"correct_chain": [{"name_ar": "...", "name_en": "..."}], "confidence": "high|medium|low", "notes": "..."}

List the narrators in the order they appear in the isnad. Use the full
classical Arabic form of each name in name_ar. If you cannot determine
the chain, return an empty correct_chain with confidence "low".`)

	return sb.String()
}

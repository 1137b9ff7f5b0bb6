package ai

import "fmt"

// Config holds responder configuration
type Config struct {
	Provider ProviderType // only "keyword" is available

	// Table overrides the canned answers; nil means DefaultAnswerTable
	Table *AnswerTable
}

// NewResponder creates a Responder based on the config
func NewResponder(cfg Config) (Responder, error) {
	table := DefaultAnswerTable()
	if cfg.Table != nil {
		table = *cfg.Table
	}

	switch cfg.Provider {
	case ProviderKeyword, "":
		return NewKeywordResponder(table), nil
	default:
		return nil, fmt.Errorf("unsupported responder provider %q", cfg.Provider)
	}
}

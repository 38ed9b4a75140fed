package recipes

import (
	"pantrychef/internal/ai"
	"pantrychef/internal/config"
)

func NewCompleter(cfg *config.Config) ai.Completer {
	if cfg.Mocks.Enable {
		return mockCompleter{}
	}
	return ai.NewFromConfig(cfg.AI)
}

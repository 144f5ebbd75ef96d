package schema

import "context"

type AgentSettings struct {
	Model         string
	MaxIter       int
	Temperature   float64
	MaxTokens     int
	HistoryWindow int
}

func NewAgentSettings(model string, maxIter int, temperature float64, maxTokens int, historyWindow int) AgentSettings {
	return AgentSettings{
		Model:         model,
		MaxIter:       maxIter,
		Temperature:   temperature,
		MaxTokens:     maxTokens,
		HistoryWindow: historyWindow,
	}
}

type AgentLooper interface {
	// ProcessDirect runs one full guest turn outside the bus flow and
	// returns the assistant reply, e.g. for the CLI channel or tests.
	ProcessDirect(ctx context.Context, content, key, channel, chatId string) string
	// Run starts the main agent loop,
	// processing messages from the bus until context is cancelled.
	Run(ctx context.Context) error
}

package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/goodfoods/goodfoods/internal/bus"
	"github.com/goodfoods/goodfoods/internal/schema"
	"github.com/goodfoods/goodfoods/internal/session"
	"github.com/goodfoods/goodfoods/internal/shared/llmutils"
	"github.com/goodfoods/goodfoods/internal/tools"
)

const helpText = `GoodFoods assistant commands:
/new — Start a new conversation
/help — Show available commands

Ask me to find a branch, recommend one for your occasion, or book a table.`

// AgentLoop is the core processing engine.
//
// It reads AgentBusMessages, runs the LLM ↔ tool loop for each one, and
// publishes replies to the ChannelBus (or ConsoleBus for the CLI).
// Each inbound message is handled in its own goroutine.
type AgentLoop struct {
	agentBus   *bus.AgentBus
	channelBus *bus.ChannelBus
	consoleBus *bus.ConsoleBus
	settings   schema.AgentSettings

	promptBuilder *PromptContext
	sessions      *session.Manager
	toolDefs      []map[string]any

	runner LoopRunner
}

// NewAgentLoop wires the loop to its buses, provider, and tool set.
func NewAgentLoop(
	agentBus *bus.AgentBus,
	channelBus *bus.ChannelBus,
	consoleBus *bus.ConsoleBus,
	provider schema.LLMProvider,
	settings schema.AgentSettings,
	sessions *session.Manager,
	registry *tools.Registry,
	dispatcher *tools.Dispatcher,
	promptBuilder *PromptContext,
) *AgentLoop {
	return &AgentLoop{
		agentBus:      agentBus,
		channelBus:    channelBus,
		consoleBus:    consoleBus,
		settings:      settings,
		promptBuilder: promptBuilder,
		sessions:      sessions,
		toolDefs:      registry.AllTools().Definitions(),
		runner:        newLoopRunner(provider, dispatcher, settings),
	}
}

// Run reads from the agent bus and processes each message in a goroutine.
// Blocks until ctx is cancelled.
func (loop *AgentLoop) Run(ctx context.Context) error {
	slog.Info("Agent loop started")

	for {
		select {
		case msg := <-loop.agentBus.Subscribe():
			go loop.handleMessage(ctx, msg)
		case <-ctx.Done():
			slog.Info("Agent loop stopping")
			return ctx.Err()
		}
	}
}

// ProcessDirect handles a message outside the bus (CLI one-shot, tests).
// Returns the final text response.
func (loop *AgentLoop) ProcessDirect(ctx context.Context, content, sessKey, channel, chatId string) string {
	msg := bus.NewAgentBusMessage(bus.Channel(channel), bus.SenderIdCLI, chatId, content, sessKey)
	resp := loop.processMessage(ctx, msg, sessKey)
	if resp == nil {
		return ""
	}

	return resp.Content()
}

func (loop *AgentLoop) handleMessage(ctx context.Context, msg bus.AgentBusMessage) {
	resp := loop.processMessage(ctx, msg, "")
	if resp == nil {
		return
	}

	loop.publish(*resp)
}

// publish routes a reply to the console bus for CLI sessions and to the
// channel bus for everything else.
func (loop *AgentLoop) publish(msg bus.ChannelMessage) {
	switch msg.Channel() {
	case bus.ChannelCLI:
		loop.consoleBus.Publish(msg)
	case bus.ChannelSystem, bus.ChannelReminder:
		// No front-end to deliver to; the text was already logged.
	default:
		loop.channelBus.Publish(msg)
	}
}

// processMessage runs the full pipeline for one guest turn: session lookup,
// slash commands, prompt assembly, the LLM loop, and persistence.
// sessionKeyOverride is non-empty only when called from ProcessDirect.
func (loop *AgentLoop) processMessage(ctx context.Context, msg bus.AgentBusMessage, sessionKeyOverride string) *bus.ChannelMessage {
	slog.Info(
		"Processing message",
		"sender", msg.SenderId(),
		"channel", msg.Channel(),
		"content", msg.Preview(),
	)

	key := llmutils.StringOrDefault(sessionKeyOverride, msg.RoutingKey())
	ses := loop.sessions.GetOrCreate(key)

	if resp := loop.handleSlashCommand(msg, ses, key); resp != nil {
		return resp
	}

	conversation := loop.promptBuilder.BuildMessages(
		ses.History(loop.settings.HistoryWindow),
		msg.Content(),
		string(msg.Channel()),
		msg.ChatId(),
	)

	final := loop.runner.run(ctx, conversation, loop.toolDefs, loop.makeProgressCallback(msg))
	if final == "" {
		final = "I've completed processing but have no response to give."
	}

	slog.Info("Response", "channel", msg.Channel(), "sender", msg.SenderId(), "length", len(final))

	ses.AddUser(msg.Content())
	ses.AddAssistant(final)
	if err := loop.sessions.Save(ses); err != nil {
		slog.Warn("Failed to save session", "key", key, "err", err)
	}

	out := bus.NewChannelMessageBuilder(msg.Channel(), msg.ChatId(), final).
		Metadata(msg.Metadata()).
		Build()
	return &out
}

// handleSlashCommand checks msg.Content for a known slash command and handles
// it. Returns non-nil if the command was handled (caller should return early).
func (loop *AgentLoop) handleSlashCommand(msg bus.AgentBusMessage, ses *session.Session, key string) *bus.ChannelMessage {
	cmd := strings.TrimSpace(strings.ToLower(msg.Content()))
	switch cmd {
	case "/new":
		return loop.handleCmdNew(msg, ses, key)
	case "/help":
		return loop.handleCmdHelp(msg)
	}
	return nil
}

// handleCmdNew clears the current session and replies with a confirmation.
func (loop *AgentLoop) handleCmdNew(msg bus.AgentBusMessage, ses *session.Session, key string) *bus.ChannelMessage {
	ses.Clear()
	if err := loop.sessions.Save(ses); err != nil {
		slog.Warn("Failed to save cleared session", "key", key, "err", err)
	}
	loop.sessions.Invalidate(key)

	out := bus.NewChannelMessageBuilder(msg.Channel(), msg.ChatId(), "New conversation started.").
		Metadata(msg.Metadata()).
		Build()
	return &out
}

// handleCmdHelp returns the help text listing available slash commands.
func (loop *AgentLoop) handleCmdHelp(msg bus.AgentBusMessage) *bus.ChannelMessage {
	out := bus.NewChannelMessageBuilder(msg.Channel(), msg.ChatId(), helpText).
		Metadata(msg.Metadata()).
		Build()
	return &out
}

// makeProgressCallback returns a function that pushes intermediate output
// (partial text, tool hints) so clients can show what the agent is doing.
// CLI sessions skip progress to keep the REPL output clean.
func (loop *AgentLoop) makeProgressCallback(msg bus.AgentBusMessage) func(string) {
	if msg.Channel() == bus.ChannelCLI || msg.Channel() == bus.ChannelSystem || msg.Channel() == bus.ChannelReminder {
		return nil
	}
	return func(content string) {
		meta := map[string]any{"_progress": true}
		for k, v := range msg.Metadata() {
			meta[k] = v
		}
		out := bus.NewChannelMessageBuilder(msg.Channel(), msg.ChatId(), content).
			Metadata(meta).
			Build()
		loop.channelBus.Publish(out)
	}
}

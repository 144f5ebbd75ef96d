package agent

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/goodfoods/goodfoods/internal/schema"
	"github.com/goodfoods/goodfoods/internal/shared/llmutils"
	"github.com/goodfoods/goodfoods/internal/tools"
)

// LoopRunner executes the LLM ↔ tool iteration loop.
type LoopRunner struct {
	provider   schema.LLMProvider
	dispatcher *tools.Dispatcher
	settings   schema.AgentSettings
}

func newLoopRunner(provider schema.LLMProvider, dispatcher *tools.Dispatcher, settings schema.AgentSettings) LoopRunner {
	return LoopRunner{provider: provider, dispatcher: dispatcher, settings: settings}
}

// run drives the conversation until the model produces a terminal text
// response or MaxIter rounds elapse. Tool failures are fed back to the
// model as tool results so it can recover or explain.
func (r *LoopRunner) run(ctx context.Context, conversation schema.Messages, toolDefs []map[string]any, onProgress func(string)) string {
	for i := 0; i < r.settings.MaxIter; i++ {
		resp, err := r.provider.Chat(ctx,
			conversation,
			toolDefs,
			schema.NewChatOptions(r.settings.Model, r.settings.MaxTokens, r.settings.Temperature),
		)

		if err != nil {
			slog.Error("LLM error", "err", err)
			return "Sorry, I encountered an error calling the LLM."
		}

		if len(resp.ToolCalls) == 0 {
			// Terminal response.
			content := ""
			if resp.Content != nil {
				content = *resp.Content
			}
			return llmutils.StripThink(content)
		}

		// Progress: emit partial text + tool hint.
		if onProgress != nil {
			if resp.Content != nil {
				if clean := llmutils.StripThink(*resp.Content); clean != "" {
					onProgress(clean)
				}
			}
			onProgress(llmutils.ToolHint(resp.ToolCalls))
		}

		// Append assistant turn with tool calls.
		var toolCalls []schema.ToolCall
		for _, tc := range resp.ToolCalls {
			toolCalls = append(toolCalls, schema.ToolCall{ID: tc.Id, Name: tc.Name, Arguments: tc.Arguments})
		}

		conversation.AddAssistant(resp.Content, toolCalls)

		// Execute each tool.
		for _, tc := range resp.ToolCalls {
			argsJSON, _ := json.Marshal(tc.Arguments)
			slog.Info("Tool call", "name", tc.Name, "args", llmutils.Truncate(string(argsJSON), 200))

			result := r.dispatcher.Invoke(ctx, tc.Name, tc.Arguments)
			if result.IsError {
				slog.Warn("Tool error", "name", tc.Name, "result", llmutils.Truncate(result.Content, 200))
			}

			conversation.AddToolResult(tc.Id, tc.Name, result.Content)
		}
	}

	return "I've reached the maximum number of tool iterations without a final answer."
}

package agent

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/goodfoods/goodfoods/internal/bus"
	"github.com/goodfoods/goodfoods/internal/directory"
	"github.com/goodfoods/goodfoods/internal/ledger"
	"github.com/goodfoods/goodfoods/internal/schema"
	"github.com/goodfoods/goodfoods/internal/session"
	"github.com/goodfoods/goodfoods/internal/tools"
)

// scriptedProvider returns canned responses in order, recording each request.
type scriptedProvider struct {
	responses []schema.LLMResponse
	err       error

	calls []schema.Messages
}

func (p *scriptedProvider) Chat(_ context.Context, messages schema.Messages, _ []map[string]any, _ schema.ChatOptions) (schema.LLMResponse, error) {
	p.calls = append(p.calls, messages.Clone())
	if p.err != nil {
		return schema.LLMResponse{}, p.err
	}
	idx := len(p.calls) - 1
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	return p.responses[idx], nil
}

func (p *scriptedProvider) DefaultModel() string { return "llama-3.1-8b-instant" }

func textResponse(s string) schema.LLMResponse {
	return schema.LLMResponse{Content: &s, FinishReason: "stop"}
}

func toolCallResponse(id, name string, args map[string]any) schema.LLMResponse {
	return schema.LLMResponse{
		ToolCalls:    []schema.ToolCallResponse{{Id: id, Name: name, Arguments: args}},
		FinishReason: "tool_calls",
	}
}

func openSchedule() map[string][]string {
	slots := []string{"10:00", "10:30", "11:00", "19:00", "19:30"}
	sched := map[string][]string{}
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		sched[day] = slots
	}
	return sched
}

func testDirectory() *directory.Directory {
	return directory.New([]directory.Branch{
		{
			ID: 1, BranchName: "GoodFoods - Koramangala", City: "Bangalore",
			Locality: "Koramangala", FullAddress: "GoodFoods, Koramangala, Bangalore",
			Cuisines: []string{"Italian"}, PriceRange: "₹₹₹",
			Rating: 4.5, Capacity: 120,
			Features:       []string{"Valet Parking"},
			WeeklySchedule: openSchedule(), BranchType: "metro",
		},
	})
}

func testSettings() schema.AgentSettings {
	return schema.NewAgentSettings("llama-3.1-8b-instant", 5, 0.7, 4096, 50)
}

func newTestRunner(t *testing.T, provider schema.LLMProvider) (LoopRunner, []map[string]any) {
	t.Helper()
	registry, err := tools.NewDefaultRegistry(testDirectory(), ledger.New(filepath.Join(t.TempDir(), "reservations.json")))
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	dispatcher, err := tools.NewDispatcher(registry)
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return newLoopRunner(provider, dispatcher, testSettings()), registry.AllTools().Definitions()
}

func newTestLoop(t *testing.T, provider schema.LLMProvider) (*AgentLoop, *bus.AgentBus, *bus.ChannelBus, *bus.ConsoleBus) {
	t.Helper()

	registry, err := tools.NewDefaultRegistry(testDirectory(), ledger.New(filepath.Join(t.TempDir(), "reservations.json")))
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	dispatcher, err := tools.NewDispatcher(registry)
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	sessions, err := session.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	agentBus := bus.NewAgentBus(8)
	channelBus := bus.NewChannelBus(8)
	consoleBus := bus.NewConsoleBus(8)

	loop := NewAgentLoop(
		agentBus, channelBus, consoleBus,
		provider, testSettings(), sessions,
		registry, dispatcher,
		NewPromptContext(testDirectory(), ""),
	)
	return loop, agentBus, channelBus, consoleBus
}

func receiveOrFail(t *testing.T, ch <-chan bus.ChannelMessage) bus.ChannelMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a bus message")
		return bus.ChannelMessage{}
	}
}

package channels

import (
	"strings"
	"testing"

	"github.com/goodfoods/goodfoods/internal/bus"
)

func TestIsAllowed(t *testing.T) {
	inbound := bus.NewAgentBus(1)

	open := NewBase(bus.ChannelTelegram, inbound, nil)
	if !open.IsAllowed("anyone") {
		t.Error("empty allowlist should allow all")
	}

	restricted := NewBase(bus.ChannelTelegram, inbound, []string{"42", "priya"})
	if !restricted.IsAllowed("42") {
		t.Error("listed id rejected")
	}
	if !restricted.IsAllowed("42|priya") {
		t.Error("id|username with listed id rejected")
	}
	if !restricted.IsAllowed("99|priya") {
		t.Error("id|username with listed username rejected")
	}
	if restricted.IsAllowed("99|someone") {
		t.Error("unlisted sender allowed")
	}
}

func TestHandleMessage_PublishesToAgentBus(t *testing.T) {
	inbound := bus.NewAgentBus(1)
	b := NewBase(bus.ChannelWeb, inbound, nil)

	b.HandleMessage("guest", "sess-1", "table for two", map[string]any{"k": "v"})

	select {
	case msg := <-inbound.Subscribe():
		if msg.Channel() != bus.ChannelWeb || msg.ChatId() != "sess-1" {
			t.Errorf("routing = %s:%s", msg.Channel(), msg.ChatId())
		}
		if msg.Content() != "table for two" {
			t.Errorf("content = %q", msg.Content())
		}
		if msg.Metadata()["k"] != "v" {
			t.Errorf("metadata = %v", msg.Metadata())
		}
	default:
		t.Fatal("nothing published")
	}
}

func TestHandleMessage_DeniedSenderDropped(t *testing.T) {
	inbound := bus.NewAgentBus(1)
	b := NewBase(bus.ChannelTelegram, inbound, []string{"42"})

	b.HandleMessage("99", "chat", "hi", nil)

	select {
	case <-inbound.Subscribe():
		t.Fatal("denied sender reached the bus")
	default:
	}
}

func TestSplitMessage(t *testing.T) {
	if got := splitMessage("short", 100); len(got) != 1 || got[0] != "short" {
		t.Errorf("got %v", got)
	}

	long := strings.Repeat("word ", 100) // 500 chars
	chunks := splitMessage(long, 120)
	if len(chunks) < 4 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	for _, c := range chunks {
		if len(c) > 120 {
			t.Errorf("chunk too long: %d", len(c))
		}
	}
	// Prefer newline breaks.
	chunks = splitMessage("line one\nline two", 10)
	if chunks[0] != "line one" {
		t.Errorf("first chunk = %q", chunks[0])
	}
}

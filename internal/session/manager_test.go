package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goodfoods/goodfoods/internal/schema"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestGetOrCreate_NewSessionIsEmpty(t *testing.T) {
	m := newTestManager(t)

	s := m.GetOrCreate("cli:direct")
	if s.Len() != 0 {
		t.Errorf("new session has %d messages", s.Len())
	}
	if s.Key != "cli:direct" {
		t.Errorf("key = %q", s.Key)
	}
}

func TestGetOrCreate_ReturnsCachedInstance(t *testing.T) {
	m := newTestManager(t)

	a := m.GetOrCreate("telegram:42")
	a.AddUser("Table for two in Indiranagar")

	b := m.GetOrCreate("telegram:42")
	if a != b {
		t.Fatal("expected same cached *Session")
	}
	if b.Len() != 1 {
		t.Errorf("cached session lost messages: len=%d", b.Len())
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	s := m.GetOrCreate("web:abc")
	s.AddUser("Any branch near Koramangala?")
	s.AddAssistant("There are two branches nearby.")
	if err := m.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Fresh manager, same directory: must load from disk.
	m2, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	loaded := m2.GetOrCreate("web:abc")
	if loaded.Len() != 2 {
		t.Fatalf("reloaded session has %d messages, want 2", loaded.Len())
	}

	msgs := loaded.History(0).Messages
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Errorf("roles = %q, %q", msgs[0].Role, msgs[1].Role)
	}
	if got, _ := msgs[0].Content.(string); got != "Any branch near Koramangala?" {
		t.Errorf("user content = %q", got)
	}
	if got, _ := msgs[1].Content.(string); got != "There are two branches nearby." {
		t.Errorf("assistant content = %q", got)
	}
}

func TestSaveRoundTripsToolCalls(t *testing.T) {
	dir := t.TempDir()
	m, _ := NewManager(dir)

	s := m.GetOrCreate("cli:direct")
	s.Messages.AddAssistant(nil, []schema.ToolCall{
		{ID: "call_1", Name: "search_branches", Arguments: map[string]any{"city": "Mumbai"}},
	})
	s.Messages.AddToolResult("call_1", "search_branches", "Found 3 GoodFoods branches:")
	if err := m.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m2, _ := NewManager(dir)
	loaded := m2.GetOrCreate("cli:direct")
	msgs := loaded.History(0).Messages
	if len(msgs) != 2 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if len(msgs[0].ToolCalls) != 1 {
		t.Fatalf("tool calls not restored: %+v", msgs[0])
	}
	tc := msgs[0].ToolCalls[0]
	if tc.ID != "call_1" || tc.Name != "search_branches" {
		t.Errorf("tool call = %+v", tc)
	}
	if city, _ := tc.Arguments["city"].(string); city != "Mumbai" {
		t.Errorf("arguments = %v", tc.Arguments)
	}
	if msgs[1].ToolCallID != "call_1" || msgs[1].ToolName != "search_branches" {
		t.Errorf("tool result = %+v", msgs[1])
	}
}

func TestHistoryWindow(t *testing.T) {
	m := newTestManager(t)
	s := m.GetOrCreate("cli:direct")
	for i := 0; i < 10; i++ {
		s.AddUser("message")
	}

	if got := len(s.History(4).Messages); got != 4 {
		t.Errorf("History(4) returned %d messages", got)
	}
	if got := len(s.History(0).Messages); got != 10 {
		t.Errorf("History(0) returned %d messages", got)
	}
}

func TestInvalidate_DropsCache(t *testing.T) {
	m := newTestManager(t)

	a := m.GetOrCreate("slack:C1")
	a.AddUser("hello")
	m.Invalidate("slack:C1")

	b := m.GetOrCreate("slack:C1")
	if a == b {
		t.Error("expected a fresh session after Invalidate")
	}
	if b.Len() != 0 {
		t.Errorf("fresh session has %d messages", b.Len())
	}
}

func TestSessionPathSanitisesKey(t *testing.T) {
	m := newTestManager(t)

	s := m.GetOrCreate("telegram:user/42")
	s.AddUser("hi")
	if err := m.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, _ := os.ReadDir(m.sessionsDir)
	if len(entries) != 1 {
		t.Fatalf("expected 1 session file, got %d", len(entries))
	}
	name := entries[0].Name()
	if strings.ContainsAny(name, `<>:"/\|?*`) {
		t.Errorf("unsafe characters in filename %q", name)
	}
}

func TestListSessions_NewestFirst(t *testing.T) {
	m := newTestManager(t)

	for _, key := range []string{"cli:direct", "web:abc"} {
		s := m.GetOrCreate(key)
		s.AddUser("hi")
		if err := m.Save(s); err != nil {
			t.Fatalf("Save %s: %v", key, err)
		}
	}

	list := m.ListSessions()
	if len(list) != 2 {
		t.Fatalf("got %d sessions", len(list))
	}
	for _, entry := range list {
		if _, ok := entry["key"].(string); !ok {
			t.Errorf("missing key in %v", entry)
		}
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	m, _ := NewManager(dir)

	s := m.GetOrCreate("cli:direct")
	s.AddUser("hello")
	if err := m.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(m.sessionsDir, "cli_direct.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	f.WriteString("{not json\n")
	f.Close()

	m2, _ := NewManager(dir)
	loaded := m2.GetOrCreate("cli:direct")
	if loaded.Len() != 1 {
		t.Errorf("expected malformed line skipped, len=%d", loaded.Len())
	}
}

package channels

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"github.com/goodfoods/goodfoods/internal/bus"
	"github.com/goodfoods/goodfoods/internal/config"
)

// WebChannel serves a minimal browser chat page and a WebSocket endpoint.
// Each socket is one conversation; the connection id doubles as the chat id.
type WebChannel struct {
	Base
	cfg *config.GatewayConfig

	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*websocket.Conn // chatId → socket
}

func NewWebChannel(cfg *config.GatewayConfig, inbound *bus.AgentBus) *WebChannel {
	return &WebChannel{
		Base:     NewBase(bus.ChannelWeb, inbound, nil),
		cfg:      cfg,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		conns:    make(map[string]*websocket.Conn),
	}
}

func (w *WebChannel) Name() string { return string(bus.ChannelWeb) }

// Start runs the HTTP server until ctx is cancelled.
func (w *WebChannel) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", w.handleIndex)
	mux.HandleFunc("/ws", w.handleWS)

	addr := fmt.Sprintf("%s:%d", w.cfg.Host, w.cfg.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web: chat server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("web: server: %w", err)
	}
}

func (w *WebChannel) handleIndex(rw http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(rw, r)
		return
	}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = rw.Write([]byte(chatPage))
}

// wsInbound is the JSON frame the page sends.
type wsInbound struct {
	Content string `json:"content"`
}

// wsOutbound is the JSON frame sent back to the page.
type wsOutbound struct {
	Type    string `json:"type"` // "reply" | "progress"
	Content string `json:"content"`
}

func (w *WebChannel) handleWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := w.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		slog.Warn("web: upgrade failed", "err", err)
		return
	}

	chatId := ulid.Make().String()
	w.mu.Lock()
	w.conns[chatId] = conn
	w.mu.Unlock()

	slog.Info("web: client connected", "chat_id", chatId)

	defer func() {
		w.mu.Lock()
		delete(w.conns, chatId)
		w.mu.Unlock()
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var in wsInbound
		if err := json.Unmarshal(raw, &in); err != nil || in.Content == "" {
			continue
		}
		w.HandleMessage(chatId, chatId, in.Content, nil)
	}
}

func (w *WebChannel) Send(_ context.Context, msg bus.ChannelMessage) error {
	w.mu.Lock()
	conn := w.conns[msg.ChatId()]
	w.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("web: no client for chat %s", msg.ChatId())
	}

	kind := "reply"
	if prog, _ := msg.Metadata()["_progress"].(bool); prog {
		kind = "progress"
	}
	return conn.WriteJSON(wsOutbound{Type: kind, Content: msg.Content()})
}

const chatPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>GoodFoods Reservations</title>
<style>
  body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }
  #log { border: 1px solid #ccc; border-radius: 8px; padding: 1rem; height: 420px; overflow-y: auto; }
  .you { text-align: right; color: #333; margin: .4rem 0; }
  .bot { text-align: left; color: #7a1f1f; margin: .4rem 0; white-space: pre-wrap; }
  .progress { text-align: left; color: #999; font-size: .85em; margin: .2rem 0; }
  form { display: flex; gap: .5rem; margin-top: 1rem; }
  input { flex: 1; padding: .5rem; }
</style>
</head>
<body>
<h2>🍽️ GoodFoods</h2>
<div id="log"></div>
<form id="f"><input id="m" autocomplete="off" placeholder="Ask about branches or book a table…"><button>Send</button></form>
<script>
const log = document.getElementById("log");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
function add(cls, text) {
  const d = document.createElement("div");
  d.className = cls;
  d.textContent = text;
  log.appendChild(d);
  log.scrollTop = log.scrollHeight;
}
ws.onmessage = (e) => {
  const msg = JSON.parse(e.data);
  add(msg.type === "progress" ? "progress" : "bot", msg.content);
};
document.getElementById("f").onsubmit = (e) => {
  e.preventDefault();
  const input = document.getElementById("m");
  if (!input.value) return;
  add("you", input.value);
  ws.send(JSON.stringify({content: input.value}));
  input.value = "";
};
</script>
</body>
</html>
`

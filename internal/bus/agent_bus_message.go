// Package bus defines the message types that flow between channels and the agent.
package bus

import "time"

type SenderId string

const SenderIdCLI string = "user"
const SenderIdReminder string = "reminder"

// AgentBusMessage is a message received from a chat channel.
type AgentBusMessage struct {
	channel    Channel        // "telegram", "slack", "web", "cli", "system"
	chatId     string         // chat / channel / DM identifier
	senderId   string         // user identifier within the channel
	routingKey string         // optional override; empty means derive from channel:chatId
	content    string         // message text
	timestamp  time.Time      // when the message was received
	metadata   map[string]any // channel-specific extra data (message_id, username, …)
}

// NewAgentBusMessage creates an AgentBusMessage with Timestamp set to now.
// routingKey overrides the default "channel:chatId" session key; pass "" to use the default.
// Use SetMetadata to attach optional fields.
func NewAgentBusMessage(channel Channel, senderId, chatId, content, routingKey string) AgentBusMessage {
	return AgentBusMessage{
		channel:    channel,
		senderId:   senderId,
		chatId:     chatId,
		content:    content,
		routingKey: routingKey,
		timestamp:  time.Now(),
	}
}

func (m AgentBusMessage) ChatId() string                 { return m.chatId }
func (m AgentBusMessage) SenderId() string               { return m.senderId }
func (m AgentBusMessage) Content() string                { return m.content }
func (m AgentBusMessage) Channel() Channel               { return m.channel }
func (m AgentBusMessage) Timestamp() time.Time           { return m.timestamp }
func (m AgentBusMessage) Metadata() map[string]any       { return m.metadata }
func (m *AgentBusMessage) SetMetadata(md map[string]any) { m.metadata = md }

// RoutingKey returns the unique key used to look up the conversation session.
// If an explicit key was set at construction, it is returned;
// otherwise falls back to "channel:chat_id".
func (m AgentBusMessage) RoutingKey() string {
	if m.routingKey != "" {
		return m.routingKey
	}

	return RoutingKey(m.channel, m.chatId)
}

// Preview returns a short snippet of the message content for logging.
func (m AgentBusMessage) Preview() string {
	preview := m.content
	if len(preview) > 80 {
		preview = preview[:80] + "..."
	}
	return preview
}

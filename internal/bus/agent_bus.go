package bus

// AgentBus carries messages from channels → agent.
// Channel adapters call Publish; the agent loop reads via Subscribe.
type AgentBus struct {
	ch chan AgentBusMessage
}

func NewAgentBus(bufSize int) *AgentBus {
	return &AgentBus{ch: make(chan AgentBusMessage, bufSize)}
}

// Publish delivers a message to the agent bus.
func (b *AgentBus) Publish(msg AgentBusMessage) {
	b.ch <- msg
}

// Subscribe returns a receive-only view of the inbound channel.
func (b *AgentBus) Subscribe() <-chan AgentBusMessage {
	return b.ch
}

package bus

// ConsoleBus carries assistant replies bound for the terminal REPL.
// CLI replies bypass the ChannelBus entirely; if they shared it, the
// channel manager's outbound dispatcher would race the REPL for them
// and a `goodfoods chat` turn could lose its answer to the gateway.
type ConsoleBus struct {
	ch chan ChannelMessage
}

func NewConsoleBus(bufSize int) *ConsoleBus {
	return &ConsoleBus{ch: make(chan ChannelMessage, bufSize)}
}

// Publish hands a reply to whichever REPL is listening.
func (b *ConsoleBus) Publish(msg ChannelMessage) {
	b.ch <- msg
}

// Subscribe returns a receive-only view of pending console replies.
func (b *ConsoleBus) Subscribe() <-chan ChannelMessage {
	return b.ch
}

package bus

import "strings"

// RoutingKey derives the session key a conversation is filed under,
// "channel:chatId". A message with no chat identifier keys on the
// channel alone.
func RoutingKey(channel Channel, chatId string) string {
	if chatId == "" {
		return string(channel)
	}

	return string(channel) + ":" + chatId
}

// ParseRoutingKey splits a session key back into its channel and chat ID.
func ParseRoutingKey(key string) (channel Channel, chatId string) {
	if i := strings.Index(key, ":"); i >= 0 {
		return Channel(key[:i]), key[i+1:]
	}

	return Channel(key), ""
}

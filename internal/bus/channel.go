package bus

type Channel string

const (
	ChannelTelegram Channel = "telegram"
	ChannelSlack    Channel = "slack"
	ChannelWeb      Channel = "web"
	ChannelCLI      Channel = "cli"
	ChannelReminder Channel = "reminder"
	ChannelSystem   Channel = "system"
)

type ChatId string

const (
	ChatIdDirect ChatId = "direct"
)

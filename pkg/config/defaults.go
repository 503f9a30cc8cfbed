package config

// Platform type labels. These are the variant names the event builder
// dispatches on; the alias table below maps user-facing platform ids onto them.
const (
	TypeOneBot     = "onebot"
	TypeQQOfficial = "qq_official"
	TypeTelegram   = "telegram"
	TypeDiscord    = "discord"
	TypeSlack      = "slack"
	TypeLark       = "lark"
	TypeDingTalk   = "dingtalk"
	TypeWebChat    = "webchat"
)

// DefaultPlatformAliases returns the built-in platform-id alias table.
// Keys are identifiers users commonly assign to platform instances; values
// are the canonical type labels. Ids not present here resolve to themselves.
func DefaultPlatformAliases() map[string]string {
	return map[string]string{
		"onebot":      TypeOneBot,
		"aiocqhttp":   TypeOneBot,
		"qq_official": TypeQQOfficial,
		"qqofficial":  TypeQQOfficial,
		"telegram":    TypeTelegram,
		"discord":     TypeDiscord,
		"slack":       TypeSlack,
		"lark":        TypeLark,
		"feishu":      TypeLark,
		"dingtalk":    TypeDingTalk,
		"webchat":     TypeWebChat,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Trigger: TriggerConfig{
			Keywords:  FlexibleStringSlice{},
			GroupOnly: true,
		},
		Platform: PlatformConfig{
			Aliases: DefaultPlatformAliases(),
		},
		Gateway: GatewayConfig{
			QueueSize: 100,
		},
		Channels: ChannelsConfig{
			WebChat: WebChatConfig{Enabled: true},
		},
	}
}

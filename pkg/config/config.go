package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// FlexibleStringSlice is a []string that also accepts JSON numbers,
// so keywords, allow_from and admins can contain both "123" and 123.
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	// Try []string first
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*f = ss
		return nil
	}

	// Try []interface{} to handle mixed types
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	result := make([]string, 0, len(raw))
	for _, v := range raw {
		switch val := v.(type) {
		case string:
			result = append(result, val)
		case float64:
			result = append(result, fmt.Sprintf("%.0f", val))
		default:
			result = append(result, fmt.Sprintf("%v", val))
		}
	}
	*f = result
	return nil
}

type Config struct {
	Trigger  TriggerConfig  `json:"trigger"`
	Channels ChannelsConfig `json:"channels"`
	Platform PlatformConfig `json:"platform"`
	Gateway  GatewayConfig  `json:"gateway"`
}

// TriggerConfig configures the keyword matcher.
type TriggerConfig struct {
	Keywords  FlexibleStringSlice `env:"PICOTRIGGER_TRIGGER_KEYWORDS"   json:"keywords"`
	GroupOnly bool                `env:"PICOTRIGGER_TRIGGER_GROUP_ONLY" json:"group_only"`
}

// PlatformConfig holds the platform-id alias table. This is the single
// source for the fixed platform identifiers; nothing else hardcodes the set.
type PlatformConfig struct {
	Aliases map[string]string `json:"aliases"`
}

type GatewayConfig struct {
	QueueSize int                 `env:"PICOTRIGGER_GATEWAY_QUEUE_SIZE" json:"queue_size"`
	Admins    FlexibleStringSlice `env:"PICOTRIGGER_GATEWAY_ADMINS"     json:"admins"`
}

type ChannelsConfig struct {
	OneBot   OneBotConfig   `json:"onebot"`
	QQ       QQConfig       `json:"qq"`
	Telegram TelegramConfig `json:"telegram"`
	Discord  DiscordConfig  `json:"discord"`
	Slack    SlackConfig    `json:"slack"`
	Lark     LarkConfig     `json:"lark"`
	DingTalk DingTalkConfig `json:"dingtalk"`
	WebChat  WebChatConfig  `json:"webchat"`
}

type OneBotConfig struct {
	Enabled     bool                `env:"PICOTRIGGER_CHANNELS_ONEBOT_ENABLED"      json:"enabled"`
	WSUrl       string              `env:"PICOTRIGGER_CHANNELS_ONEBOT_WS_URL"       json:"ws_url"`
	AccessToken string              `env:"PICOTRIGGER_CHANNELS_ONEBOT_ACCESS_TOKEN" json:"access_token"`
	AllowFrom   FlexibleStringSlice `env:"PICOTRIGGER_CHANNELS_ONEBOT_ALLOW_FROM"   json:"allow_from"`
}

type QQConfig struct {
	Enabled   bool                `env:"PICOTRIGGER_CHANNELS_QQ_ENABLED"    json:"enabled"`
	AppID     string              `env:"PICOTRIGGER_CHANNELS_QQ_APP_ID"     json:"app_id"`
	AppSecret string              `env:"PICOTRIGGER_CHANNELS_QQ_APP_SECRET" json:"app_secret"`
	AllowFrom FlexibleStringSlice `env:"PICOTRIGGER_CHANNELS_QQ_ALLOW_FROM" json:"allow_from"`
}

type TelegramConfig struct {
	Enabled   bool                `env:"PICOTRIGGER_CHANNELS_TELEGRAM_ENABLED"    json:"enabled"`
	Token     string              `env:"PICOTRIGGER_CHANNELS_TELEGRAM_TOKEN"      json:"token"`
	AllowFrom FlexibleStringSlice `env:"PICOTRIGGER_CHANNELS_TELEGRAM_ALLOW_FROM" json:"allow_from"`
}

type DiscordConfig struct {
	Enabled   bool                `env:"PICOTRIGGER_CHANNELS_DISCORD_ENABLED"    json:"enabled"`
	Token     string              `env:"PICOTRIGGER_CHANNELS_DISCORD_TOKEN"      json:"token"`
	AllowFrom FlexibleStringSlice `env:"PICOTRIGGER_CHANNELS_DISCORD_ALLOW_FROM" json:"allow_from"`
}

type SlackConfig struct {
	Enabled   bool                `env:"PICOTRIGGER_CHANNELS_SLACK_ENABLED"    json:"enabled"`
	BotToken  string              `env:"PICOTRIGGER_CHANNELS_SLACK_BOT_TOKEN"  json:"bot_token"`
	AppToken  string              `env:"PICOTRIGGER_CHANNELS_SLACK_APP_TOKEN"  json:"app_token"`
	AllowFrom FlexibleStringSlice `env:"PICOTRIGGER_CHANNELS_SLACK_ALLOW_FROM" json:"allow_from"`
}

type LarkConfig struct {
	Enabled   bool                `env:"PICOTRIGGER_CHANNELS_LARK_ENABLED"    json:"enabled"`
	AppID     string              `env:"PICOTRIGGER_CHANNELS_LARK_APP_ID"     json:"app_id"`
	AppSecret string              `env:"PICOTRIGGER_CHANNELS_LARK_APP_SECRET" json:"app_secret"`
	AllowFrom FlexibleStringSlice `env:"PICOTRIGGER_CHANNELS_LARK_ALLOW_FROM" json:"allow_from"`
}

type DingTalkConfig struct {
	Enabled      bool                `env:"PICOTRIGGER_CHANNELS_DINGTALK_ENABLED"       json:"enabled"`
	ClientID     string              `env:"PICOTRIGGER_CHANNELS_DINGTALK_CLIENT_ID"     json:"client_id"`
	ClientSecret string              `env:"PICOTRIGGER_CHANNELS_DINGTALK_CLIENT_SECRET" json:"client_secret"`
	AllowFrom    FlexibleStringSlice `env:"PICOTRIGGER_CHANNELS_DINGTALK_ALLOW_FROM"    json:"allow_from"`
}

type WebChatConfig struct {
	Enabled   bool                `env:"PICOTRIGGER_CHANNELS_WEBCHAT_ENABLED"    json:"enabled"`
	AllowFrom FlexibleStringSlice `env:"PICOTRIGGER_CHANNELS_WEBCHAT_ALLOW_FROM" json:"allow_from"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Still honor env overrides when no file exists.
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// A user-supplied alias table replaces the built-in one; an absent or
	// empty table falls back to the defaults so type resolution keeps working.
	if len(cfg.Platform.Aliases) == 0 {
		cfg.Platform.Aliases = DefaultPlatformAliases()
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

package platform

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	lark "github.com/larksuite/oapi-sdk-go/v3"
	"github.com/mymmrac/telego"
	dtclient "github.com/open-dingtalk/dingtalk-stream-sdk-go/client"
	"github.com/slack-go/slack"
	"github.com/tencent-connect/botgo"
	"github.com/tencent-connect/botgo/token"
	"golang.org/x/oauth2"

	"github.com/tinyland-inc/picotrigger/pkg/config"
	"github.com/tinyland-inc/picotrigger/pkg/onebot"
)

// NewOneBot creates a context holding a OneBot forward-WS client.
// The client is not connected yet; the host dials it on startup.
func NewOneBot(name string, cfg config.OneBotConfig) *Instance {
	bot := onebot.NewClient(cfg.WSUrl, cfg.AccessToken)
	return newInstance(name, config.TypeOneBot, map[string]any{
		CapabilityBot: bot,
	})
}

// NewQQOfficial creates a context for the QQ open-platform bot API.
func NewQQOfficial(name string, cfg config.QQConfig) *Instance {
	credentials := &token.QQBotCredentials{
		AppID:     cfg.AppID,
		AppSecret: cfg.AppSecret,
	}
	var src oauth2.TokenSource = token.NewQQBotTokenSource(credentials)
	api := botgo.NewOpenAPI(cfg.AppID, src).WithTimeout(5 * time.Second)
	return newInstance(name, config.TypeQQOfficial, map[string]any{
		CapabilityClient: api,
	})
}

func NewTelegram(name string, cfg config.TelegramConfig) (*Instance, error) {
	bot, err := telego.NewBot(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return newInstance(name, config.TypeTelegram, map[string]any{
		CapabilityClient: bot,
	}), nil
}

func NewDiscord(name string, cfg config.DiscordConfig) (*Instance, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return newInstance(name, config.TypeDiscord, map[string]any{
		CapabilityClient: session,
	}), nil
}

func NewSlack(name string, cfg config.SlackConfig) *Instance {
	client := slack.New(cfg.BotToken, slack.OptionAppLevelToken(cfg.AppToken))
	return newInstance(name, config.TypeSlack, map[string]any{
		CapabilityWebClient: client,
	})
}

func NewLark(name string, cfg config.LarkConfig) *Instance {
	client := lark.NewClient(cfg.AppID, cfg.AppSecret)
	return newInstance(name, config.TypeLark, map[string]any{
		CapabilityBot: client,
	})
}

func NewDingTalk(name string, cfg config.DingTalkConfig) *Instance {
	client := dtclient.NewStreamClient(
		dtclient.WithAppCredential(dtclient.NewAppCredentialConfig(cfg.ClientID, cfg.ClientSecret)),
	)
	return newInstance(name, config.TypeDingTalk, map[string]any{
		CapabilityClient: client,
	})
}

// NewWebChat creates the no-connection context: webchat events are built
// without any client handle.
func NewWebChat(name string) *Instance {
	return newInstance(name, config.TypeWebChat, nil)
}

// BuildRegistry constructs contexts for every enabled channel and registers
// them under their canonical platform ids. Construction failures are logged
// and skipped; the trigger degrades to generic events for those platforms.
func BuildRegistry(cfg *config.Config) *Registry {
	reg := NewRegistry(cfg.Platform.Aliases)
	ch := cfg.Channels

	if ch.OneBot.Enabled {
		reg.Register(NewOneBot(config.TypeOneBot, ch.OneBot))
	}
	if ch.QQ.Enabled {
		reg.Register(NewQQOfficial(config.TypeQQOfficial, ch.QQ))
	}
	if ch.Telegram.Enabled {
		if inst, err := NewTelegram(config.TypeTelegram, ch.Telegram); err != nil {
			slog.Error("skipping telegram platform", "error", err)
		} else {
			reg.Register(inst)
		}
	}
	if ch.Discord.Enabled {
		if inst, err := NewDiscord(config.TypeDiscord, ch.Discord); err != nil {
			slog.Error("skipping discord platform", "error", err)
		} else {
			reg.Register(inst)
		}
	}
	if ch.Slack.Enabled {
		reg.Register(NewSlack(config.TypeSlack, ch.Slack))
	}
	if ch.Lark.Enabled {
		reg.Register(NewLark(config.TypeLark, ch.Lark))
	}
	if ch.DingTalk.Enabled {
		reg.Register(NewDingTalk(config.TypeDingTalk, ch.DingTalk))
	}
	if ch.WebChat.Enabled {
		reg.Register(NewWebChat(config.TypeWebChat))
	}

	return reg
}

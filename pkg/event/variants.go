package event

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	lark "github.com/larksuite/oapi-sdk-go/v3"
	"github.com/mymmrac/telego"
	dtclient "github.com/open-dingtalk/dingtalk-stream-sdk-go/client"
	"github.com/slack-go/slack"
	"github.com/tencent-connect/botgo/openapi"

	"github.com/tinyland-inc/picotrigger/pkg/config"
	"github.com/tinyland-inc/picotrigger/pkg/onebot"
	"github.com/tinyland-inc/picotrigger/pkg/platform"
)

// OneBot is a synthesized event for OneBot v11 style platforms.
type OneBot struct {
	Base
	Bot *onebot.Client
}

// QQOfficial is a synthesized event for the QQ open platform.
type QQOfficial struct {
	Base
	API openapi.OpenAPI
}

type Telegram struct {
	Base
	Client *telego.Bot
}

type Discord struct {
	Base
	Client *discordgo.Session
}

type Slack struct {
	Base
	WebClient *slack.Client
}

type Lark struct {
	Base
	Bot *lark.Client
}

type DingTalk struct {
	Base
	Client *dtclient.StreamClient
}

// WebChat is the no-connection variant: it needs no live platform instance.
type WebChat struct {
	Base
}

// variantSpec describes how to construct one platform-specific variant.
// capability names the client-handle attribute the variant requires from
// the live platform context; empty means none.
type variantSpec struct {
	capability string
	build      func(base Base, handle any) (Event, error)
}

// variants is the static dispatch table, replacing runtime reflective class
// lookup. Platform types not present here fall through to the generic event.
var variants = map[string]variantSpec{
	config.TypeOneBot: {
		capability: platform.CapabilityBot,
		build: func(base Base, handle any) (Event, error) {
			bot, err := handleAs[*onebot.Client](config.TypeOneBot, handle)
			if err != nil {
				return nil, err
			}
			return &OneBot{Base: base, Bot: bot}, nil
		},
	},
	config.TypeQQOfficial: {
		capability: platform.CapabilityClient,
		build: func(base Base, handle any) (Event, error) {
			api, err := handleAs[openapi.OpenAPI](config.TypeQQOfficial, handle)
			if err != nil {
				return nil, err
			}
			return &QQOfficial{Base: base, API: api}, nil
		},
	},
	config.TypeTelegram: {
		capability: platform.CapabilityClient,
		build: func(base Base, handle any) (Event, error) {
			bot, err := handleAs[*telego.Bot](config.TypeTelegram, handle)
			if err != nil {
				return nil, err
			}
			return &Telegram{Base: base, Client: bot}, nil
		},
	},
	config.TypeDiscord: {
		capability: platform.CapabilityClient,
		build: func(base Base, handle any) (Event, error) {
			session, err := handleAs[*discordgo.Session](config.TypeDiscord, handle)
			if err != nil {
				return nil, err
			}
			return &Discord{Base: base, Client: session}, nil
		},
	},
	config.TypeSlack: {
		capability: platform.CapabilityWebClient,
		build: func(base Base, handle any) (Event, error) {
			client, err := handleAs[*slack.Client](config.TypeSlack, handle)
			if err != nil {
				return nil, err
			}
			return &Slack{Base: base, WebClient: client}, nil
		},
	},
	config.TypeLark: {
		capability: platform.CapabilityBot,
		build: func(base Base, handle any) (Event, error) {
			client, err := handleAs[*lark.Client](config.TypeLark, handle)
			if err != nil {
				return nil, err
			}
			return &Lark{Base: base, Bot: client}, nil
		},
	},
	config.TypeDingTalk: {
		capability: platform.CapabilityClient,
		build: func(base Base, handle any) (Event, error) {
			client, err := handleAs[*dtclient.StreamClient](config.TypeDingTalk, handle)
			if err != nil {
				return nil, err
			}
			return &DingTalk{Base: base, Client: client}, nil
		},
	},
	config.TypeWebChat: {
		build: func(base Base, _ any) (Event, error) {
			return &WebChat{Base: base}, nil
		},
	},
}

func handleAs[T any](platformType string, handle any) (T, error) {
	typed, ok := handle.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s client handle is %T, want %T", platformType, handle, zero)
	}
	return typed, nil
}

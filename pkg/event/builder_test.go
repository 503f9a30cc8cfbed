package event

import (
	"errors"
	"testing"

	"github.com/tinyland-inc/picotrigger/pkg/config"
	"github.com/tinyland-inc/picotrigger/pkg/message"
	"github.com/tinyland-inc/picotrigger/pkg/origin"
	"github.com/tinyland-inc/picotrigger/pkg/platform"
)

func testEnvelope(t *testing.T, token string) *message.Envelope {
	t.Helper()
	return message.Build("/work", origin.Parse(token), "42", "alice", nil, nil)
}

var testIdentity = Identity{SenderID: "42", SenderName: "alice", Privileged: true}

func TestBuildSpecificVariant(t *testing.T) {
	pctx, err := platform.NewDiscord("discord", config.DiscordConfig{Token: "test-token"})
	if err != nil {
		t.Fatalf("NewDiscord: %v", err)
	}

	env := testEnvelope(t, "discord:FriendMessage:chan-1")
	ev := Build(config.TypeDiscord, env, pctx, testIdentity)

	discord, ok := ev.(*Discord)
	if !ok {
		t.Fatalf("got %T, want *Discord", ev)
	}
	if discord.Client == nil {
		t.Error("client handle not injected")
	}
	if ev.SenderID() != "42" || ev.SenderName() != "alice" || !ev.IsPrivileged() {
		t.Errorf("identity: id=%q name=%q privileged=%v", ev.SenderID(), ev.SenderName(), ev.IsPrivileged())
	}
}

func TestBuildMissingContextFallsBack(t *testing.T) {
	env := testEnvelope(t, "discord:FriendMessage:chan-1")
	ev := Build(config.TypeDiscord, env, nil, testIdentity)

	generic, ok := ev.(*Generic)
	if !ok {
		t.Fatalf("got %T, want *Generic", ev)
	}
	if !generic.IsAwake() {
		t.Error("generic event should carry the forced awake flag")
	}
	if ev.SenderID() != "42" || ev.SenderName() != "alice" {
		t.Errorf("fallback lost identity: %q/%q", ev.SenderID(), ev.SenderName())
	}
	if ev.OriginToken() != "discord:FriendMessage:chan-1" {
		t.Errorf("origin token: got %q", ev.OriginToken())
	}
}

func TestBuildMissingCapabilityFallsBack(t *testing.T) {
	// A webchat context has no client capability at all.
	pctx := platform.NewWebChat("discord")
	env := testEnvelope(t, "discord:GroupMessage:g1_u1")

	ev := Build(config.TypeDiscord, env, pctx, testIdentity)
	if _, ok := ev.(*Generic); !ok {
		t.Fatalf("got %T, want *Generic", ev)
	}
	if ev.Envelope().GroupID != "g1" {
		t.Errorf("fallback lost routing: group id %q", ev.Envelope().GroupID)
	}
}

// brokenContext reports a capability whose dynamic type no variant accepts.
type brokenContext struct{}

func (brokenContext) Name() string   { return "onebot" }
func (brokenContext) Type() string   { return config.TypeOneBot }
func (brokenContext) SelfID() string { return "" }
func (brokenContext) Capability(name string) (any, bool) {
	if name == platform.CapabilityBot {
		return "not a client", true
	}
	return nil, false
}

func TestBuildWrongHandleTypeFallsBack(t *testing.T) {
	env := testEnvelope(t, "onebot:GroupMessage:12345")
	ev := Build(config.TypeOneBot, env, brokenContext{}, testIdentity)

	if _, ok := ev.(*Generic); !ok {
		t.Fatalf("got %T, want *Generic", ev)
	}
	if ev.SenderID() != "42" {
		t.Errorf("sender id: got %q", ev.SenderID())
	}
}

// panicContext panics when its capability is projected.
type panicContext struct{ brokenContext }

func (panicContext) Capability(string) (any, bool) { panic("boom") }

func TestBuildConstructionPanicIsCaught(t *testing.T) {
	env := testEnvelope(t, "onebot:GroupMessage:12345")

	var ev Event
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("panic escaped Build: %v", r)
			}
		}()
		ev = Build(config.TypeOneBot, env, panicContext{}, testIdentity)
	}()

	if _, ok := ev.(*Generic); !ok {
		t.Fatalf("got %T, want *Generic", ev)
	}
}

func TestBuildUnknownPlatformType(t *testing.T) {
	env := testEnvelope(t, "matrix:FriendMessage:room-1")
	ev := Build("matrix", env, nil, testIdentity)

	if _, ok := ev.(*Generic); !ok {
		t.Fatalf("got %T, want *Generic", ev)
	}
	if ev.PlatformType() != "matrix" {
		t.Errorf("platform type: got %q", ev.PlatformType())
	}
}

func TestBuildWebChatNeedsNoContext(t *testing.T) {
	env := testEnvelope(t, "webchat:FriendMessage:console")
	ev := Build(config.TypeWebChat, env, nil, testIdentity)

	if _, ok := ev.(*WebChat); !ok {
		t.Fatalf("got %T, want *WebChat", ev)
	}
}

func TestIdentityOverrideIsAuthoritative(t *testing.T) {
	env := message.Build("/menu", origin.Parse("webchat:FriendMessage:console"),
		"envelope-sender", "envelope-name", nil, nil)

	ev := Build(config.TypeWebChat, env, nil, Identity{
		SenderID:   "real-sender",
		SenderName: "real-name",
		Privileged: false,
	})

	if ev.SenderID() != "real-sender" || ev.SenderName() != "real-name" {
		t.Errorf("override not applied: %q/%q", ev.SenderID(), ev.SenderName())
	}
	if ev.IsPrivileged() {
		t.Error("privilege flag should follow the supplied identity")
	}
	// The envelope itself is untouched.
	if ev.Envelope().SenderID != "envelope-sender" {
		t.Errorf("envelope mutated: %q", ev.Envelope().SenderID)
	}
}

func TestStopPropagation(t *testing.T) {
	env := testEnvelope(t, "webchat:FriendMessage:console")
	ev := Build(config.TypeWebChat, env, nil, testIdentity)

	if ev.IsStopped() {
		t.Error("new event should not be stopped")
	}
	ev.StopPropagation()
	if !ev.IsStopped() {
		t.Error("StopPropagation should mark the event stopped")
	}
}

func TestErrNoLiveInstance(t *testing.T) {
	spec := variants[config.TypeTelegram]
	_, err := tryVariant(spec, Base{}, nil)
	if !errors.Is(err, errNoLiveInstance) {
		t.Errorf("got %v, want errNoLiveInstance", err)
	}
}

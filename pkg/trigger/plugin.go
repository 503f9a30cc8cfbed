package trigger

import (
	"log/slog"
	"strings"

	"github.com/tinyland-inc/picotrigger/pkg/event"
	"github.com/tinyland-inc/picotrigger/pkg/message"
	"github.com/tinyland-inc/picotrigger/pkg/origin"
	"github.com/tinyland-inc/picotrigger/pkg/platform"
)

// seenCap bounds the triggered-id record (see seenSet).
const seenCap = 1024

// Inbound is the read surface the plugin needs from one inbound message.
// Synthesized events satisfy it too, which is how the loop guard gets to
// see them when the host feeds them back through.
type Inbound interface {
	MessageStr() string
	MessageID() string
	GroupID() string
	SenderID() string
	SenderName() string
	IsPrivileged() bool
	OriginToken() string
	StopPropagation()
	Segments() []message.Segment
}

// Sink is the host-owned queue synthesized events are handed to.
type Sink interface {
	Enqueue(ev event.Event) error
}

// Config configures one plugin instance.
type Config struct {
	Keywords  []string
	GroupOnly bool
}

// Plugin is the keyword-trigger orchestrator: loop guard, matcher, origin
// parsing, platform resolution, envelope and event construction, dispatch.
// One long-lived instance is constructed at startup; the host may call
// OnMessage concurrently for distinct inbound messages.
type Plugin struct {
	matcher   *Matcher
	groupOnly bool
	registry  *platform.Registry
	sink      Sink
	seen      *seenSet
}

func New(cfg Config, registry *platform.Registry, sink Sink) *Plugin {
	p := &Plugin{
		matcher:   NewMatcher(cfg.Keywords),
		groupOnly: cfg.GroupOnly,
		registry:  registry,
		sink:      sink,
		seen:      newSeenSet(seenCap),
	}
	slog.Info("keyword trigger loaded", "keywords", p.matcher.Len(), "group_only", cfg.GroupOnly)
	return p
}

// OnMessage inspects one inbound message and, on a keyword match,
// synthesizes a command event into the sink and stops the original
// message's propagation. Every failure path either skips the message or
// degrades to a generic event; nothing escapes to the caller.
func (p *Plugin) OnMessage(msg Inbound) {
	// Loop guard comes first, before any other inspection.
	id := msg.MessageID()
	if message.IsSyntheticID(id) {
		slog.Debug("skipping synthesized message", "message_id", id)
		return
	}

	text := plainText(msg)
	if text == "" {
		return
	}

	if p.groupOnly && msg.GroupID() == "" {
		return
	}

	match, ok := p.matcher.Match(text)
	if !ok {
		return
	}

	// At most one resynthesis per inbound message id.
	if id != "" && !p.seen.add(id) {
		slog.Debug("message already triggered", "message_id", id)
		return
	}

	command := match.Command()
	slog.Info("keyword matched", "keyword", match.Keyword, "command", command)

	desc := origin.Parse(msg.OriginToken())
	pctx, _ := p.registry.Resolve(desc.Platform)
	platformType := p.registry.TypeOf(desc.Platform)

	env := message.Build(command, desc, msg.SenderID(), msg.SenderName(), pctx, message.NonText(msg.Segments()))

	ev := event.Build(platformType, env, pctx, event.Identity{
		SenderID:   msg.SenderID(),
		SenderName: msg.SenderName(),
		Privileged: msg.IsPrivileged(),
	})

	if err := p.sink.Enqueue(ev); err != nil {
		slog.Error("failed to enqueue synthesized event", "command", command, "error", err)
	}

	// Propagation stops whenever a match occurred, even when the enqueue
	// failed: the message was addressed to the trigger either way.
	msg.StopPropagation()
}

// plainText extracts the message text, preferring the first text segment and
// falling back to the flattened message string.
func plainText(msg Inbound) string {
	if text := strings.TrimSpace(message.FirstText(msg.Segments())); text != "" {
		return text
	}
	return strings.TrimSpace(msg.MessageStr())
}

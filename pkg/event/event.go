// Package event builds platform-typed message events from envelopes. The
// builder is a fallback chain: a platform-specific variant when the live
// instance exposes the client handle it needs, a generic event otherwise.
package event

import (
	"sync/atomic"

	"github.com/tinyland-inc/picotrigger/pkg/message"
	"github.com/tinyland-inc/picotrigger/pkg/origin"
	"github.com/tinyland-inc/picotrigger/pkg/platform"
)

// Identity is the authoritative sender identity for a synthesized event.
// It describes the original human sender, not the platform connection, and
// overrides anything a variant constructor derives.
type Identity struct {
	SenderID   string
	SenderName string
	Privileged bool
}

// Event is the minimal capability set every synthesized event exposes.
// Ownership transfers to the host once the event is enqueued.
type Event interface {
	PlatformType() string
	SenderID() string
	SenderName() string
	IsPrivileged() bool
	OriginToken() string
	StopPropagation()
	IsStopped() bool
	Envelope() *message.Envelope
}

// Base carries the event state shared by every variant. It also exposes the
// inbound read surface (MessageStr, MessageID, GroupID, Segments) so a
// synthesized event can re-enter the trigger pipeline, where the loop guard
// catches it.
type Base struct {
	env          *message.Envelope
	platformType string
	senderID     string
	senderName   string
	privileged   bool
	originToken  string
	awake        bool
	stopped      *atomic.Bool
	pctx         platform.Context
}

func newBase(platformType string, env *message.Envelope, pctx platform.Context) Base {
	token := origin.Descriptor{
		Platform: platformType,
		Kind:     env.Conversation.Kind,
		Session:  env.Conversation.Session,
	}.Token()

	return Base{
		env:          env,
		platformType: platformType,
		senderID:     env.SenderID,
		senderName:   env.SenderName,
		originToken:  token,
		stopped:      new(atomic.Bool),
		pctx:         pctx,
	}
}

func (b *Base) PlatformType() string { return b.platformType }
func (b *Base) SenderID() string     { return b.senderID }
func (b *Base) SenderName() string   { return b.senderName }
func (b *Base) IsPrivileged() bool   { return b.privileged }
func (b *Base) OriginToken() string  { return b.originToken }
func (b *Base) StopPropagation()     { b.stopped.Store(true) }
func (b *Base) IsStopped() bool      { return b.stopped.Load() }

func (b *Base) Envelope() *message.Envelope { return b.env }

// IsAwake reports whether the event carries the forced triggered flag.
// Set on generic fallback events so the host pipeline treats them as
// already addressed to the bot.
func (b *Base) IsAwake() bool { return b.awake }

// Platform returns the best-effort back-reference to the live platform
// context, which may be nil.
func (b *Base) Platform() platform.Context { return b.pctx }

// Inbound read surface, mirrored from the envelope.

func (b *Base) MessageStr() string { return b.env.Text }
func (b *Base) MessageID() string  { return b.env.MessageID }
func (b *Base) GroupID() string    { return b.env.GroupID }

func (b *Base) Segments() []message.Segment { return b.env.Segments }

// setIdentity applies the authoritative caller-supplied identity.
func (b *Base) setIdentity(id Identity) {
	b.senderID = id.SenderID
	b.senderName = id.SenderName
	b.privileged = id.Privileged
}

type identitySetter interface {
	setIdentity(Identity)
}

// Generic is the fallback event used when no platform-specific variant can
// be constructed. It still carries full conversation routing and sender
// identity, plus the forced awake flag.
type Generic struct {
	Base
}

func newGeneric(base Base) *Generic {
	base.awake = true
	return &Generic{Base: base}
}

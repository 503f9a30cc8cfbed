// Package platform resolves live platform connection handles for the event
// builder. A Context is an ownership-free view of one connected platform
// instance: the trigger core never mutates it and only reads a small
// capability surface.
package platform

// Capability names. Each event variant declares which one it needs; the
// projection is a fixed enumerated set, never an open-ended attribute walk.
const (
	CapabilityBot       = "bot"
	CapabilityClient    = "client"
	CapabilityWebClient = "web_client"
)

// Context is the read surface the trigger core sees for one platform
// instance. Name is the user-assigned platform id, Type the canonical
// platform type label. SelfID returns the bot's own identifier on that
// platform, or "" when it is not determinable, never a guessed value.
type Context interface {
	Name() string
	Type() string
	SelfID() string
	Capability(name string) (any, bool)
}

// Instance is the standard Context implementation. Constructors in this
// package build one per configured platform, attaching the SDK client
// handle under its capability name.
type Instance struct {
	name   string
	typ    string
	selfID string
	caps   map[string]any
}

func newInstance(name, typ string, caps map[string]any) *Instance {
	return &Instance{name: name, typ: typ, caps: caps}
}

func (i *Instance) Name() string   { return i.name }
func (i *Instance) Type() string   { return i.typ }
func (i *Instance) SelfID() string { return i.selfID }

// SetSelfID records the bot's own platform identifier once the host learns
// it (usually after the connection handshake).
func (i *Instance) SetSelfID(id string) { i.selfID = id }

func (i *Instance) Capability(name string) (any, bool) {
	v, ok := i.caps[name]
	return v, ok
}

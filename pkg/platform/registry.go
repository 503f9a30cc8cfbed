package platform

import (
	"log/slog"
	"sync"
)

// Registry maps user-assigned platform ids to live contexts. The host owns
// registration; the trigger core only resolves. Lookups never fail hard:
// a missing instance is reported as absent so callers can degrade to the
// generic event path.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]Context
	aliases   map[string]string
}

// NewRegistry creates a registry using the given platform-id alias table
// for type resolution when no live context is registered.
func NewRegistry(aliases map[string]string) *Registry {
	return &Registry{
		instances: make(map[string]Context),
		aliases:   aliases,
	}
}

// Register adds or replaces the context for its platform id.
func (r *Registry) Register(ctx Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[ctx.Name()] = ctx
}

// Resolve looks up the live context for a platform id.
func (r *Registry) Resolve(platformID string) (Context, bool) {
	r.mu.RLock()
	ctx, ok := r.instances[platformID]
	r.mu.RUnlock()
	if !ok {
		slog.Debug("platform instance not registered", "platform_id", platformID)
	}
	return ctx, ok
}

// TypeOf returns the platform type for an id: the live context's declared
// type when one is registered, otherwise the alias table entry, otherwise
// the id itself as a best-effort label.
func (r *Registry) TypeOf(platformID string) string {
	if ctx, ok := r.Resolve(platformID); ok && ctx.Type() != "" {
		return ctx.Type()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if typ, ok := r.aliases[platformID]; ok {
		return typ
	}
	return platformID
}

// Names returns the registered platform ids. For status output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	return names
}

// SelfID returns the context's self identifier, tolerating an absent context.
func SelfID(ctx Context) string {
	if ctx == nil {
		return ""
	}
	return ctx.SelfID()
}

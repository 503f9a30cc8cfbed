package event

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tinyland-inc/picotrigger/pkg/message"
	"github.com/tinyland-inc/picotrigger/pkg/platform"
)

var errNoLiveInstance = errors.New("no live platform instance")

// Build produces the event for a platform type. The chain:
//
//  1. A known variant whose required capability the live context exposes
//     with the right dynamic type is constructed with that handle injected.
//  2. Any failure there is logged and control falls through.
//  3. Otherwise the generic fallback event is constructed.
//
// Afterwards the caller-supplied identity unconditionally overrides the
// event's sender id, display name and privilege flag. Build never returns
// nil and never propagates a construction error.
func Build(platformType string, env *message.Envelope, pctx platform.Context, id Identity) Event {
	base := newBase(platformType, env, pctx)

	var ev Event
	if spec, ok := variants[platformType]; ok {
		built, err := tryVariant(spec, base, pctx)
		if err != nil {
			slog.Warn("platform event construction failed, falling back to generic",
				"platform_type", platformType, "error", err)
		} else {
			ev = built
		}
	}
	if ev == nil {
		ev = newGeneric(base)
	}

	ev.(identitySetter).setIdentity(id)
	return ev
}

// tryVariant runs one variant construction attempt. Panics inside a build
// function count as construction failures, not crashes.
func tryVariant(spec variantSpec, base Base, pctx platform.Context) (ev Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			ev = nil
			err = fmt.Errorf("variant construction panic: %v", r)
		}
	}()

	var handle any
	if spec.capability != "" {
		if pctx == nil {
			return nil, errNoLiveInstance
		}
		h, ok := pctx.Capability(spec.capability)
		if !ok {
			return nil, fmt.Errorf("platform instance lacks %q capability", spec.capability)
		}
		handle = h
	}

	return spec.build(base, handle)
}

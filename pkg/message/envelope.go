package message

import (
	"time"

	"github.com/tinyland-inc/picotrigger/pkg/origin"
	"github.com/tinyland-inc/picotrigger/pkg/platform"
)

// DefaultSenderName stands in when the platform gave us no display name.
const DefaultSenderName = "用户"

// Envelope is the normalized internal representation of one synthesized
// inbound message, created fresh per triggering message and discarded after
// the event built from it is enqueued.
type Envelope struct {
	Text         string
	Conversation origin.Descriptor
	SenderID     string
	SenderName   string
	SelfID       string
	MessageID    string
	GroupID      string
	Segments     []Segment
	RawMirror    map[string]any
	Timestamp    time.Time
}

// Build assembles an envelope for the rewritten command text. The segment
// sequence always starts with the command text, followed by the passed
// through non-text segments in their original relative order. The raw mirror
// shadows the shape of a native payload because some downstream consumers
// inspect it instead of the typed envelope.
//
// Deterministic given its inputs except for the synthetic message id.
func Build(
	command string,
	conv origin.Descriptor,
	senderID, senderName string,
	pctx platform.Context,
	extra []Segment,
) *Envelope {
	if senderName == "" {
		senderName = DefaultSenderName
	}

	segments := make([]Segment, 0, 1+len(extra))
	segments = append(segments, TextSegment{Text: command})
	segments = append(segments, extra...)

	env := &Envelope{
		Text:         command,
		Conversation: conv,
		SenderID:     senderID,
		SenderName:   senderName,
		SelfID:       platform.SelfID(pctx),
		MessageID:    NewSyntheticID(),
		GroupID:      conv.GroupID(),
		Segments:     segments,
		Timestamp:    time.Now(),
	}

	messageType := "private"
	if conv.Kind == origin.Group {
		messageType = "group"
	}
	raw := map[string]any{
		"message":      command,
		"message_type": messageType,
		"sender": map[string]any{
			"user_id":  senderID,
			"nickname": senderName,
		},
		"self_id": env.SelfID,
	}
	if env.GroupID != "" {
		raw["group_id"] = env.GroupID
	}
	env.RawMirror = raw

	return env
}

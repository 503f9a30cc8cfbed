// Package origin parses the compact origin token that identifies one
// conversation: "platform_id:kind_marker:session_id". The session id may
// itself contain colons; only the first two colons are structural.
package origin

import "strings"

// Unknown is the sentinel value used when a token field cannot be resolved.
const Unknown = "unknown"

// sessionSeparator isolates a group id from per-user session suffixes
// inside a session id ("12345_67890" -> group "12345").
const sessionSeparator = "_"

// Kind classifies a conversation.
type Kind int

const (
	// Direct is a one-on-one conversation. Tokens without a recognizable
	// kind marker default to Direct.
	Direct Kind = iota
	// Group is a multi-member conversation.
	Group
)

func (k Kind) String() string {
	if k == Group {
		return "GroupMessage"
	}
	return "FriendMessage"
}

// Descriptor is the parsed form of an origin token.
type Descriptor struct {
	Platform string
	Kind     Kind
	Session  string
}

// Parse splits an origin token into its descriptor. It never fails: a token
// with fewer than three colon-delimited parts yields the unknown-sentinel
// descriptor so downstream code always has something to route with.
//
// Kind classification is a deliberately lenient substring check against the
// two known marker families, not a strict enum decode.
func Parse(token string) Descriptor {
	parts := strings.SplitN(token, ":", 3)
	if len(parts) < 3 {
		return Descriptor{Platform: Unknown, Kind: Direct, Session: Unknown}
	}

	kind := Direct
	marker := parts[1]
	switch {
	case strings.Contains(marker, "GroupMessage"), strings.Contains(marker, "group"):
		kind = Group
	case strings.Contains(marker, "FriendMessage"), strings.Contains(marker, "friend"):
		kind = Direct
	}

	return Descriptor{
		Platform: parts[0],
		Kind:     kind,
		Session:  parts[2],
	}
}

// Token re-forms the canonical origin token for the descriptor.
func (d Descriptor) Token() string {
	return d.Platform + ":" + d.Kind.String() + ":" + d.Session
}

// GroupID derives the group identifier for a Group conversation. Session ids
// may carry a per-user isolation suffix after the first underscore; the group
// id is everything before it. Direct conversations have no group id.
func (d Descriptor) GroupID() string {
	if d.Kind != Group {
		return ""
	}
	if idx := strings.Index(d.Session, sessionSeparator); idx > 0 {
		return d.Session[:idx]
	}
	return d.Session
}

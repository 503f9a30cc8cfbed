// Package message builds the normalized envelope for a synthesized inbound
// message: the rewritten command text, the conversation it targets, the
// original sender, and a raw mirror shaped like a native platform payload.
package message

// Segment is one element of a message content sequence.
type Segment interface {
	SegmentType() string
}

// TextSegment is plain message text.
type TextSegment struct {
	Text string
}

func (TextSegment) SegmentType() string { return "text" }

// MentionSegment is an @-mention of a user. Preserved across resynthesis so
// real mentions survive the rewrite.
type MentionSegment struct {
	UserID  string
	Display string
}

func (MentionSegment) SegmentType() string { return "mention" }

// NonText filters a segment sequence down to its non-text segments,
// preserving relative order.
func NonText(segments []Segment) []Segment {
	var out []Segment
	for _, seg := range segments {
		if _, ok := seg.(TextSegment); ok {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// FirstText returns the text of the first text segment, or "" when the
// sequence has none.
func FirstText(segments []Segment) string {
	for _, seg := range segments {
		if text, ok := seg.(TextSegment); ok {
			return text.Text
		}
	}
	return ""
}

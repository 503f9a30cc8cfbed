// Package trigger matches inbound chat messages against configured keywords
// and resynthesizes them as command events that re-enter the host pipeline.
package trigger

import "strings"

// commandPrefixes are the reserved command markers. Messages already
// starting with one are never matched, so explicit commands are not
// re-wrapped.
var commandPrefixes = []string{"/", "#"}

// Match is one successful keyword match.
type Match struct {
	Keyword string
	Suffix  string
}

// Command returns the rewritten command string: the keyword behind the
// command prefix with the unmatched remainder appended verbatim.
func (m Match) Command() string {
	return "/" + m.Keyword + m.Suffix
}

// Matcher holds the immutable keyword set. Safe for concurrent use; a
// keyword reload means constructing a new Matcher.
type Matcher struct {
	keywords map[string]struct{}
}

// NewMatcher builds a matcher from raw configured keywords. Entries are
// trimmed and empties dropped.
func NewMatcher(keywords []string) *Matcher {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		set[kw] = struct{}{}
	}
	return &Matcher{keywords: set}
}

// Len reports the number of configured keywords.
func (m *Matcher) Len() int { return len(m.keywords) }

// Match checks a message text against the keyword set. Matching is prefix
// based: the text must equal a keyword or start with one. When several
// keywords are prefixes of the text the longest wins, so "menu" cannot
// shadow "menu_full".
func (m *Matcher) Match(text string) (Match, bool) {
	if text == "" {
		return Match{}, false
	}
	for _, prefix := range commandPrefixes {
		if strings.HasPrefix(text, prefix) {
			return Match{}, false
		}
	}

	best := ""
	for kw := range m.keywords {
		if strings.HasPrefix(text, kw) && len(kw) > len(best) {
			best = kw
		}
	}
	if best == "" {
		return Match{}, false
	}

	return Match{Keyword: best, Suffix: text[len(best):]}, true
}

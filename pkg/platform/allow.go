package platform

import "strings"

// Allowed reports whether a sender id matches an allowlist. An empty list
// allows everyone. Entries and sender ids may use the compound form
// "id|username"; either side of the compound matches, and a leading "@" on
// an entry is ignored for username matching.
func Allowed(allowList []string, senderID string) bool {
	if len(allowList) == 0 {
		return true
	}

	idPart := senderID
	userPart := ""
	if idx := strings.Index(senderID, "|"); idx > 0 {
		idPart = senderID[:idx]
		userPart = senderID[idx+1:]
	}

	for _, entry := range allowList {
		trimmed := strings.TrimPrefix(entry, "@")
		entryID := trimmed
		entryUser := ""
		if idx := strings.Index(trimmed, "|"); idx > 0 {
			entryID = trimmed[:idx]
			entryUser = trimmed[idx+1:]
		}

		if senderID == entry ||
			idPart == entry ||
			senderID == trimmed ||
			idPart == trimmed ||
			idPart == entryID ||
			(entryUser != "" && senderID == entryUser) ||
			(userPart != "" && (userPart == entry || userPart == trimmed || userPart == entryUser)) {
			return true
		}
	}

	return false
}

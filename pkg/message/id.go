package message

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SyntheticIDPrefix tags message ids manufactured by this subsystem. It is
// the sole loop-prevention signal: any inbound message whose id carries it
// is skipped before matching.
const SyntheticIDPrefix = "command_trigger_"

// NewSyntheticID returns a fresh synthetic message id. The uuid fragment
// keeps ids unique within the same second; the timestamp keeps them roughly
// sortable for log correlation.
func NewSyntheticID() string {
	return SyntheticIDPrefix +
		strconv.FormatInt(time.Now().Unix(), 10) + "_" +
		uuid.NewString()[:8]
}

// IsSyntheticID reports whether a message id was manufactured here.
func IsSyntheticID(id string) bool {
	return strings.HasPrefix(id, SyntheticIDPrefix)
}

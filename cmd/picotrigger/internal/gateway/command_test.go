package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyland-inc/picotrigger/pkg/config"
	"github.com/tinyland-inc/picotrigger/pkg/message"
)

func TestNewGatewayCommand(t *testing.T) {
	cmd := NewGatewayCommand()

	require.NotNil(t, cmd)

	assert.Equal(t, "gateway", cmd.Use)
	assert.Equal(t, []string{"g"}, cmd.Aliases)

	assert.Nil(t, cmd.Run)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("debug"))
	assert.NotNil(t, cmd.Flags().Lookup("no-console"))
}

func TestConsoleMessage(t *testing.T) {
	msg := newConsoleMessage("打工now", nil)

	assert.Equal(t, "打工now", msg.MessageStr())
	assert.Equal(t, "console", msg.GroupID())
	assert.Equal(t, "console", msg.SenderID())
	assert.Equal(t, "webchat:GroupMessage:console", msg.OriginToken())
	assert.False(t, msg.IsPrivileged(), "empty admin list leaves console unprivileged")
	assert.False(t, message.IsSyntheticID(msg.MessageID()))

	seg := msg.Segments()
	require.Len(t, seg, 1)
	assert.Equal(t, message.TextSegment{Text: "打工now"}, seg[0])
}

func TestConsoleMessageAdmin(t *testing.T) {
	msg := newConsoleMessage("hi", []string{"console"})
	assert.True(t, msg.IsPrivileged())
}

func TestConsoleMessageIDsUnique(t *testing.T) {
	a := newConsoleMessage("a", nil)
	b := newConsoleMessage("b", nil)
	assert.NotEqual(t, a.MessageID(), b.MessageID())
}

func TestConsoleMessageUsesWebChatPlatform(t *testing.T) {
	msg := newConsoleMessage("hi", nil)
	assert.Contains(t, msg.OriginToken(), config.TypeWebChat)
}

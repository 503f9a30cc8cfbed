package gateway

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/chzyer/readline"

	"github.com/tinyland-inc/picotrigger/cmd/picotrigger/internal"
	"github.com/tinyland-inc/picotrigger/pkg/bus"
	"github.com/tinyland-inc/picotrigger/pkg/config"
	"github.com/tinyland-inc/picotrigger/pkg/message"
	"github.com/tinyland-inc/picotrigger/pkg/origin"
	"github.com/tinyland-inc/picotrigger/pkg/platform"
	"github.com/tinyland-inc/picotrigger/pkg/trigger"
)

func gatewayCmd(debug bool, noConsole bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
		fmt.Println("🔍 Debug mode enabled")
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	registry := platform.BuildRegistry(cfg)
	evBus := bus.NewEventBus(cfg.Gateway.QueueSize)
	plugin := trigger.New(trigger.Config{
		Keywords:  cfg.Trigger.Keywords,
		GroupOnly: cfg.Trigger.GroupOnly,
	}, registry, evBus)

	names := registry.Names()
	if len(names) > 0 {
		fmt.Printf("✓ Platforms registered: %s\n", strings.Join(names, ", "))
	} else {
		fmt.Println("⚠ Warning: no platforms registered")
	}
	fmt.Printf("✓ Gateway started (keywords: %d, queue: %d)\n", len(cfg.Trigger.Keywords), cfg.Gateway.QueueSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go dispatchLoop(ctx, evBus, plugin)

	if cfg.Channels.WebChat.Enabled && !noConsole {
		fmt.Println("Type a message to simulate inbound group chat (Ctrl+C to stop)")
		runConsole(plugin, cfg)
	} else {
		fmt.Println("Press Ctrl+C to stop")
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt)
		<-sigChan
	}

	fmt.Println("\nShutting down...")
	cancel()
	evBus.Close()
	fmt.Println("✓ Gateway stopped")

	return nil
}

// dispatchLoop consumes synthesized events from the queue. Each event is
// logged as dispatched and fed back through the plugin, where its synthetic
// message id makes the loop guard drop it.
func dispatchLoop(ctx context.Context, evBus *bus.EventBus, plugin *trigger.Plugin) {
	for {
		ev, ok := evBus.Next(ctx)
		if !ok {
			return
		}

		slog.Info("command dispatched",
			"platform", ev.PlatformType(),
			"command", ev.Envelope().Text,
			"sender", ev.SenderID(),
			"origin", ev.OriginToken(),
		)
		fmt.Printf("→ [%s] %s (from %s)\n", ev.PlatformType(), ev.Envelope().Text, ev.SenderName())

		if in, ok := ev.(trigger.Inbound); ok {
			plugin.OnMessage(in)
		}
	}
}

// consoleMessage is a webchat inbound message typed at the gateway console.
type consoleMessage struct {
	text       string
	id         string
	senderID   string
	senderName string
	privileged bool
	stopped    bool
}

var consoleSeq atomic.Uint64

func newConsoleMessage(text string, admins []string) *consoleMessage {
	senderID := "console"
	// An empty admin list means nobody is privileged, unlike channel
	// allowlists where empty means everyone.
	privileged := len(admins) > 0 && platform.Allowed(admins, senderID)
	return &consoleMessage{
		text:       text,
		id:         fmt.Sprintf("console-%d", consoleSeq.Add(1)),
		senderID:   senderID,
		senderName: "console",
		privileged: privileged,
	}
}

func (m *consoleMessage) MessageStr() string { return m.text }
func (m *consoleMessage) MessageID() string  { return m.id }
func (m *consoleMessage) GroupID() string    { return "console" }
func (m *consoleMessage) SenderID() string   { return m.senderID }
func (m *consoleMessage) SenderName() string { return m.senderName }
func (m *consoleMessage) IsPrivileged() bool { return m.privileged }
func (m *consoleMessage) StopPropagation()   { m.stopped = true }

func (m *consoleMessage) Segments() []message.Segment {
	return []message.Segment{message.TextSegment{Text: m.text}}
}

func (m *consoleMessage) OriginToken() string {
	return origin.Descriptor{
		Platform: config.TypeWebChat,
		Kind:     origin.Group,
		Session:  "console",
	}.Token()
}

func runConsole(plugin *trigger.Plugin, cfg *config.Config) {
	prompt := fmt.Sprintf("%s webchat: ", internal.Logo)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".picotrigger_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		fmt.Println("Falling back to simple input mode...")
		simpleConsole(plugin, cfg)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		if !feedConsoleLine(plugin, cfg, line) {
			return
		}
	}
}

func simpleConsole(plugin *trigger.Plugin, cfg *config.Config) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s webchat: ", internal.Logo)
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		if !feedConsoleLine(plugin, cfg, line) {
			return
		}
	}
}

func feedConsoleLine(plugin *trigger.Plugin, cfg *config.Config, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}
	if input == "exit" || input == "quit" {
		fmt.Println("Goodbye!")
		return false
	}

	msg := newConsoleMessage(input, cfg.Gateway.Admins)
	plugin.OnMessage(msg)
	if !msg.stopped {
		fmt.Println("  (no keyword matched)")
	}
	return true
}

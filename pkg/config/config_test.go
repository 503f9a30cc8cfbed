package config

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestFlexibleStringSliceMixedTypes(t *testing.T) {
	var f FlexibleStringSlice
	if err := json.Unmarshal([]byte(`["abc", 123, 4.0]`), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"abc", "123", "4"}
	if len(f) != len(want) {
		t.Fatalf("got %d entries, want %d", len(f), len(want))
	}
	for i := range want {
		if f[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, f[i], want[i])
		}
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.Trigger.GroupOnly {
		t.Error("expected group_only default true")
	}
	if cfg.Gateway.QueueSize != 100 {
		t.Errorf("queue_size: got %d, want 100", cfg.Gateway.QueueSize)
	}
	if cfg.Platform.Aliases["aiocqhttp"] != TypeOneBot {
		t.Errorf("alias aiocqhttp: got %q, want %q", cfg.Platform.Aliases["aiocqhttp"], TypeOneBot)
	}
}

func TestLoadConfigRoundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trigger.Keywords = FlexibleStringSlice{"打工", "menu"}
	cfg.Trigger.GroupOnly = false
	cfg.Channels.Telegram.Enabled = true
	cfg.Channels.Telegram.Token = "123:abc"

	path := filepath.Join(t.TempDir(), "config.json")
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(loaded.Trigger.Keywords) != 2 || loaded.Trigger.Keywords[0] != "打工" {
		t.Errorf("keywords: got %v", loaded.Trigger.Keywords)
	}
	if loaded.Trigger.GroupOnly {
		t.Error("group_only should load as false")
	}
	if !loaded.Channels.Telegram.Enabled || loaded.Channels.Telegram.Token != "123:abc" {
		t.Errorf("telegram channel: got %+v", loaded.Channels.Telegram)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PICOTRIGGER_TRIGGER_KEYWORDS", "work,menu_full")
	t.Setenv("PICOTRIGGER_GATEWAY_QUEUE_SIZE", "7")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(cfg.Trigger.Keywords) != 2 || cfg.Trigger.Keywords[1] != "menu_full" {
		t.Errorf("keywords from env: got %v", cfg.Trigger.Keywords)
	}
	if cfg.Gateway.QueueSize != 7 {
		t.Errorf("queue_size from env: got %d, want 7", cfg.Gateway.QueueSize)
	}
}

func TestLoadConfigEmptyAliasesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := SaveConfig(path, &Config{}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Platform.Aliases["feishu"] != TypeLark {
		t.Errorf("alias feishu: got %q, want %q", cfg.Platform.Aliases["feishu"], TypeLark)
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/orderdesk/internal/config"
)

func TestCreateAdapter(t *testing.T) {
	slack, err := createAdapter(config.ConciergeConfig{
		Platform: "slack",
		Slack:    config.SlackConfig{AppToken: "xapp-1", BotToken: "xoxb-1"},
	})
	if err != nil {
		t.Fatalf("slack: %v", err)
	}
	if slack == nil {
		t.Fatal("slack adapter is nil")
	}

	disc, err := createAdapter(config.ConciergeConfig{
		Platform: "discord",
		Discord:  config.DiscordConfig{BotToken: "tok"},
	})
	if err != nil {
		t.Fatalf("discord: %v", err)
	}
	if disc == nil {
		t.Fatal("discord adapter is nil")
	}

	if _, err := createAdapter(config.ConciergeConfig{Platform: "irc"}); err == nil {
		t.Fatal("expected error for unsupported platform")
	}
}

func TestConciergeStart_NoPlatform(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "orderdesk.yaml")
	content := fmt.Sprintf("database:\n  driver: sqlite\n  path: %s\n", filepath.Join(dir, "od.db"))
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := runCmd(t, "concierge", "start", "-c", cfgPath)
	if err == nil {
		t.Fatal("expected error without concierge.platform")
	}
	if !strings.Contains(err.Error(), "no platform configured") {
		t.Errorf("error = %q", err.Error())
	}
}

package concierge

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestNewDaemon_MissingDeps(t *testing.T) {
	if _, err := NewDaemon(DaemonOpts{}); err == nil {
		t.Fatal("expected error for missing adapter")
	}
	if _, err := NewDaemon(DaemonOpts{Adapter: NewMockAdapter()}); err == nil {
		t.Fatal("expected error for missing dispatcher")
	}
}

func TestDaemon_RunProcessesMessages(t *testing.T) {
	db := openTestDB(t)
	adapter := NewMockAdapter()
	adapter.SetBotUserID("BOT")

	daemon, err := NewDaemon(DaemonOpts{
		Adapter:    adapter,
		Dispatcher: newTestDispatcher(t, db),
		Out:        io.Discard,
	})
	if err != nil {
		t.Fatalf("NewDaemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- daemon.Run(ctx) }()

	// Let the daemon connect and start listening, then feed a message.
	time.Sleep(50 * time.Millisecond)
	adapter.SimulateInbound(InboundMessage{
		Platform: "mock", ChannelID: "C1", UserID: "U1", Text: "menu",
	})

	// Wait for the reply to land.
	deadline := time.After(2 * time.Second)
	for {
		if sent := adapter.SentMessages(); len(sent) > 0 {
			if !strings.Contains(sent[0].Text, "How can I help you?") {
				t.Errorf("reply = %q, want menu", sent[0].Text)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for reply")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not shut down")
	}
}

func TestDaemon_RunConnectFailure(t *testing.T) {
	db := openTestDB(t)
	adapter := NewMockAdapter()
	adapter.Close() // connecting a closed adapter fails

	daemon, _ := NewDaemon(DaemonOpts{
		Adapter:    adapter,
		Dispatcher: newTestDispatcher(t, db),
		Out:        io.Discard,
	})
	if err := daemon.Run(context.Background()); err == nil {
		t.Fatal("expected error when connect fails")
	}
}

package slack

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/zulandar/orderdesk/internal/concierge"
)

// mockClient implements slackClient for tests.
type mockClient struct {
	mu       sync.Mutex
	authErr  error
	postErrs []error // errors returned by successive PostMessage calls
	posted   []string
	postedTo []string
	users    map[string]*slackapi.User
}

func (m *mockClient) AuthTest() (*slackapi.AuthTestResponse, error) {
	if m.authErr != nil {
		return nil, m.authErr
	}
	return &slackapi.AuthTestResponse{UserID: "BOT", User: "orderdesk"}, nil
}

func (m *mockClient) PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.postErrs) > 0 {
		err := m.postErrs[0]
		m.postErrs = m.postErrs[1:]
		if err != nil {
			return "", "", err
		}
	}
	m.postedTo = append(m.postedTo, channelID)
	m.posted = append(m.posted, "message")
	return channelID, "1234567890.000001", nil
}

func (m *mockClient) GetUserInfo(userID string) (*slackapi.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user_not_found")
}

// mockSocket implements socketClient for tests.
type mockSocket struct {
	events chan socketmode.Event
	stop   chan struct{}
}

func newMockSocket() *mockSocket {
	return &mockSocket{
		events: make(chan socketmode.Event, 10),
		stop:   make(chan struct{}),
	}
}

// Run blocks like the real Socket Mode client until the test ends.
func (m *mockSocket) Run() error {
	<-m.stop
	return nil
}

func (m *mockSocket) EventsChan() chan socketmode.Event      { return m.events }
func (m *mockSocket) Ack(socketmode.Request, ...interface{}) {}

func newConnectedAdapter(t *testing.T, client *mockClient, socket *mockSocket, channelID string) *Adapter {
	t.Helper()
	a, err := New(AdapterOpts{ChannelID: channelID, Client: client, Socket: socket})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return a
}

func messageEvent(userID, channelID, text string) socketmode.Event {
	return socketmode.Event{
		Type: socketmode.EventTypeEventsAPI,
		Data: slackevents.EventsAPIEvent{
			Type: slackevents.CallbackEvent,
			InnerEvent: slackevents.EventsAPIInnerEvent{
				Data: &slackevents.MessageEvent{
					User:      userID,
					Channel:   channelID,
					Text:      text,
					TimeStamp: "1724800000.000100",
				},
			},
		},
	}
}

func TestNew_RequiresTokens(t *testing.T) {
	if _, err := New(AdapterOpts{}); err == nil {
		t.Fatal("expected error without tokens")
	}
	if _, err := New(AdapterOpts{BotToken: "xoxb-1"}); err == nil {
		t.Fatal("expected error without app token")
	}
	if _, err := New(AdapterOpts{BotToken: "xoxb-1", AppToken: "xapp-1"}); err != nil {
		t.Fatalf("New with tokens: %v", err)
	}
}

func TestAdapter_ConnectSetsBotUserID(t *testing.T) {
	a := newConnectedAdapter(t, &mockClient{}, newMockSocket(), "")
	defer a.Close()
	if got := a.BotUserID(); got != "BOT" {
		t.Errorf("BotUserID = %q, want BOT", got)
	}
}

func TestAdapter_ConnectAuthFailure(t *testing.T) {
	a, err := New(AdapterOpts{Client: &mockClient{authErr: fmt.Errorf("invalid_auth")}, Socket: newMockSocket()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Connect(context.Background()); err == nil {
		t.Fatal("expected auth error")
	}
}

func TestAdapter_ListenDeliversMessages(t *testing.T) {
	socket := newMockSocket()
	a := newConnectedAdapter(t, &mockClient{}, socket, "")
	defer a.Close()

	inbound, err := a.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	socket.events <- messageEvent("U1", "C1", "Orders")

	select {
	case msg := <-inbound:
		if msg.Platform != "slack" {
			t.Errorf("Platform = %q, want slack", msg.Platform)
		}
		if msg.UserID != "U1" || msg.ChannelID != "C1" || msg.Text != "Orders" {
			t.Errorf("unexpected message: %+v", msg)
		}
		if msg.Timestamp.IsZero() {
			t.Error("timestamp not parsed")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for inbound message")
	}
}

func TestAdapter_ListenFiltersSelfBotsAndSubtypes(t *testing.T) {
	socket := newMockSocket()
	a := newConnectedAdapter(t, &mockClient{}, socket, "")
	defer a.Close()

	inbound, err := a.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	socket.events <- messageEvent("BOT", "C1", "own message")

	edited := messageEvent("U1", "C1", "edited")
	edited.Data.(slackevents.EventsAPIEvent).InnerEvent.Data.(*slackevents.MessageEvent).SubType = "message_changed"
	socket.events <- edited

	fromBot := messageEvent("U2", "C1", "beep")
	fromBot.Data.(slackevents.EventsAPIEvent).InnerEvent.Data.(*slackevents.MessageEvent).BotID = "B123"
	socket.events <- fromBot

	select {
	case msg := <-inbound:
		t.Fatalf("unexpected message delivered: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAdapter_ListenFiltersOtherChannels(t *testing.T) {
	socket := newMockSocket()
	a := newConnectedAdapter(t, &mockClient{}, socket, "C-home")
	defer a.Close()

	inbound, err := a.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	socket.events <- messageEvent("U1", "C-other", "hello")
	socket.events <- messageEvent("U1", "C-home", "hello")

	select {
	case msg := <-inbound:
		if msg.ChannelID != "C-home" {
			t.Errorf("ChannelID = %q, want C-home", msg.ChannelID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for inbound message")
	}
}

func TestAdapter_AppMentionStripsMarkup(t *testing.T) {
	socket := newMockSocket()
	a := newConnectedAdapter(t, &mockClient{}, socket, "")
	defer a.Close()

	inbound, err := a.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	socket.events <- socketmode.Event{
		Type: socketmode.EventTypeEventsAPI,
		Data: slackevents.EventsAPIEvent{
			Type: slackevents.CallbackEvent,
			InnerEvent: slackevents.EventsAPIInnerEvent{
				Data: &slackevents.AppMentionEvent{
					User:      "U1",
					Channel:   "C1",
					Text:      "<@BOT> Orders",
					TimeStamp: "1724800000.000200",
				},
			},
		},
	}

	select {
	case msg := <-inbound:
		if msg.Text != "Orders" {
			t.Errorf("Text = %q, want Orders", msg.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for inbound message")
	}
}

func TestAdapter_SendRetriesRateLimit(t *testing.T) {
	client := &mockClient{
		postErrs: []error{&slackapi.RateLimitedError{RetryAfter: 10 * time.Millisecond}},
	}
	a := newConnectedAdapter(t, client, newMockSocket(), "")
	defer a.Close()

	if err := a.Send(context.Background(), concierge.OutboundMessage{ChannelID: "C1", Text: "hi"}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	if len(client.posted) != 1 {
		t.Errorf("posted %d messages, want 1", len(client.posted))
	}
}

func TestAdapter_SendNonRateLimitErrorIsFatal(t *testing.T) {
	client := &mockClient{postErrs: []error{fmt.Errorf("channel_not_found")}}
	a := newConnectedAdapter(t, client, newMockSocket(), "")
	defer a.Close()

	if err := a.Send(context.Background(), concierge.OutboundMessage{ChannelID: "C1", Text: "hi"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestAdapter_SendDefaultChannel(t *testing.T) {
	client := &mockClient{}
	a := newConnectedAdapter(t, client, newMockSocket(), "C-default")
	defer a.Close()

	if err := a.Send(context.Background(), concierge.OutboundMessage{Text: "hi"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	client.mu.Lock()
	defer client.mu.Unlock()
	if len(client.postedTo) != 1 || client.postedTo[0] != "C-default" {
		t.Errorf("postedTo = %v", client.postedTo)
	}
}

func TestResolveUserName(t *testing.T) {
	client := &mockClient{users: map[string]*slackapi.User{
		"U1": {RealName: "Asha Rao", Profile: slackapi.UserProfile{DisplayName: "asha"}},
		"U2": {RealName: "Jo Park"},
	}}
	a := newConnectedAdapter(t, client, newMockSocket(), "")
	defer a.Close()

	if got := a.resolveUserName("U1"); got != "asha" {
		t.Errorf("resolveUserName(U1) = %q, want asha", got)
	}
	if got := a.resolveUserName("U2"); got != "Jo Park" {
		t.Errorf("resolveUserName(U2) = %q, want Jo Park", got)
	}
	if got := a.resolveUserName("U9"); got != "U9" {
		t.Errorf("resolveUserName(U9) = %q, want fallback to ID", got)
	}
}

func TestParseSlackTimestamp(t *testing.T) {
	got := parseSlackTimestamp("1724800000.000100")
	if got.Unix() != 1724800000 {
		t.Errorf("Unix = %d, want 1724800000", got.Unix())
	}
	if !parseSlackTimestamp("bogus").IsZero() {
		t.Error("expected zero time for bad timestamp")
	}
}

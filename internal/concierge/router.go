package concierge

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zulandar/orderdesk/internal/dispatch"
)

// Router feeds inbound chat messages through the dispatcher and sends the
// rendered reply back to the originating channel. Messages from the bot
// itself (or other bots) are dropped before they reach the dispatcher.
type Router struct {
	dispatcher *dispatch.Dispatcher
	adapter    Adapter
	botUserID  string // the bot's own user ID (to filter self-messages)
	out        io.Writer
}

// RouterOpts holds parameters for creating a Router.
type RouterOpts struct {
	Dispatcher *dispatch.Dispatcher
	Adapter    Adapter
	BotUserID  string    // bot's user ID for self-message filtering
	Out        io.Writer // defaults to os.Stdout
}

// NewRouter creates a Router.
func NewRouter(opts RouterOpts) (*Router, error) {
	if opts.Dispatcher == nil {
		return nil, fmt.Errorf("concierge: router: dispatcher is required")
	}
	if opts.Adapter == nil {
		return nil, fmt.Errorf("concierge: router: adapter is required")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Router{
		dispatcher: opts.Dispatcher,
		adapter:    opts.Adapter,
		botUserID:  opts.BotUserID,
		out:        out,
	}, nil
}

// Handle routes a single inbound message: self-messages and empty text are
// ignored, everything else goes through the dispatcher and the reply is
// sent back to the channel the message came from.
func (r *Router) Handle(ctx context.Context, msg InboundMessage) {
	if r.isSelfMessage(msg) {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	fmt.Fprintf(r.out, "concierge: router: recv [ch=%s user=%s] %q\n",
		msg.ChannelID, msg.UserName, truncate(text, 80))

	// Sessions are keyed per platform so the same raw user id on two
	// platforms never shares conversation state.
	userKey := msg.Platform + ":" + msg.UserID

	resp, err := r.dispatcher.Handle(userKey, text)
	if err != nil {
		fmt.Fprintf(r.out, "concierge: router: dispatch for %s: %v\n", userKey, err)
		r.send(ctx, msg.ChannelID, "Something went wrong on our side. Please try again.")
		return
	}

	r.send(ctx, msg.ChannelID, RenderText(resp))
}

// isSelfMessage reports whether the message was sent by the bot itself.
func (r *Router) isSelfMessage(msg InboundMessage) bool {
	return r.botUserID != "" && msg.UserID == r.botUserID
}

func (r *Router) send(ctx context.Context, channelID, text string) {
	if err := r.adapter.Send(ctx, OutboundMessage{ChannelID: channelID, Text: text}); err != nil {
		fmt.Fprintf(r.out, "concierge: router: send to %s: %v\n", channelID, err)
	}
}

// truncate shortens s to max runes for log lines.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

package concierge

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/zulandar/orderdesk/internal/dispatch"
)

// Daemon is the main concierge process: it connects a platform adapter,
// pumps inbound messages through the Router, and shuts the adapter down
// when the context is cancelled.
type Daemon struct {
	adapter    Adapter
	dispatcher *dispatch.Dispatcher
	out        io.Writer
}

// DaemonOpts holds parameters for creating a Daemon.
type DaemonOpts struct {
	Adapter    Adapter
	Dispatcher *dispatch.Dispatcher
	Out        io.Writer // defaults to os.Stdout
}

// NewDaemon creates a Daemon with the given options.
func NewDaemon(opts DaemonOpts) (*Daemon, error) {
	if opts.Adapter == nil {
		return nil, fmt.Errorf("concierge: adapter is required")
	}
	if opts.Dispatcher == nil {
		return nil, fmt.Errorf("concierge: dispatcher is required")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Daemon{
		adapter:    opts.Adapter,
		dispatcher: opts.Dispatcher,
		out:        out,
	}, nil
}

// Run connects the adapter and blocks processing messages until the
// context is cancelled. The adapter is closed on the way out.
func (d *Daemon) Run(ctx context.Context) error {
	fmt.Fprintf(d.out, "Concierge connecting...\n")
	if err := d.adapter.Connect(ctx); err != nil {
		return fmt.Errorf("concierge: connect: %w", err)
	}

	var botUserID string
	if bui, ok := d.adapter.(BotUserIDer); ok {
		botUserID = bui.BotUserID()
	}

	router, err := NewRouter(RouterOpts{
		Dispatcher: d.dispatcher,
		Adapter:    d.adapter,
		BotUserID:  botUserID,
		Out:        d.out,
	})
	if err != nil {
		d.adapter.Close()
		return err
	}

	inbound, err := d.adapter.Listen(ctx)
	if err != nil {
		d.adapter.Close()
		return fmt.Errorf("concierge: listen: %w", err)
	}

	fmt.Fprintf(d.out, "Concierge ready.\n")
	for {
		select {
		case <-ctx.Done():
			d.adapter.Close()
			return nil
		case msg, ok := <-inbound:
			if !ok {
				return nil
			}
			router.Handle(ctx, msg)
		}
	}
}

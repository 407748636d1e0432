package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zulandar/orderdesk/internal/concierge"
	"github.com/zulandar/orderdesk/internal/concierge/discord"
	slackadapter "github.com/zulandar/orderdesk/internal/concierge/slack"
	"github.com/zulandar/orderdesk/internal/config"
)

func newConciergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concierge",
		Short: "Manage the chat platform bridge",
		Long:  "The concierge connects OrderDesk to a chat platform (Slack or Discord) and answers there.",
	}

	cmd.AddCommand(newConciergeStartCmd())
	return cmd
}

func newConciergeStartCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the concierge daemon",
		Long:  "Connects to the configured chat platform and dispatches inbound messages until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConciergeStart(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "orderdesk.yaml", "path to OrderDesk config file")
	return cmd
}

func runConciergeStart(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if cfg.Concierge.Platform == "" {
		return fmt.Errorf("concierge: no platform configured in %s (add concierge.platform)", configPath)
	}

	adapter, err := createAdapter(cfg.Concierge)
	if err != nil {
		return err
	}

	dispatcher, err := buildDispatcher(gormDB, out)
	if err != nil {
		return err
	}

	daemon, err := concierge.NewDaemon(concierge.DaemonOpts{
		Adapter:    adapter,
		Dispatcher: dispatcher,
		Out:        out,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	fmt.Fprintf(out, "Starting concierge on %s\n", cfg.Concierge.Platform)
	return daemon.Run(ctx)
}

// createAdapter builds the platform adapter named by the config.
func createAdapter(cfg config.ConciergeConfig) (concierge.Adapter, error) {
	switch cfg.Platform {
	case "slack":
		return slackadapter.New(slackadapter.AdapterOpts{
			AppToken:  cfg.Slack.AppToken,
			BotToken:  cfg.Slack.BotToken,
			ChannelID: cfg.Channel,
		})
	case "discord":
		return discord.New(discord.AdapterOpts{
			BotToken:  cfg.Discord.BotToken,
			ChannelID: cfg.Channel,
		})
	default:
		return nil, fmt.Errorf("concierge: unsupported platform %q", cfg.Platform)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zulandar/orderdesk/internal/api"
	"github.com/zulandar/orderdesk/internal/jobs"
	"github.com/zulandar/orderdesk/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the OrderDesk HTTP API",
		Long:  "Serves the chat endpoint over HTTP and runs the busy-agent release sweep in the background.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "orderdesk.yaml", "path to OrderDesk config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	dispatcher, err := buildDispatcher(gormDB, out)
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

	agents, err := store.NewAgentStore(gormDB)
	if err != nil {
		return err
	}

	// Background sweep that frees agents stuck in busy.
	job, err := jobs.NewAgentReleaseJob(jobs.AgentReleaseOpts{
		Agents: agents,
		Cron:   cfg.Jobs.AgentReleaseCron,
		TTL:    time.Duration(cfg.Jobs.AgentBusyTTLMinutes) * time.Minute,
		Out:    out,
	})
	if err != nil {
		return err
	}
	go job.Run(ctx)

	if port <= 0 {
		port = cfg.API.Port
	}
	return api.Start(ctx, api.StartOpts{
		Dispatcher: dispatcher,
		Port:       port,
		APIKey:     cfg.API.Key,
		Out:        out,
	})
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zulandar/orderdesk/internal/concierge"
	"github.com/zulandar/orderdesk/internal/dispatch"
)

func newChatCmd() *cobra.Command {
	var (
		configPath string
		userID     string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with OrderDesk from the terminal",
		Long:  "Opens a local conversation loop against the configured database. Type 'quit' to leave.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, configPath, userID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "orderdesk.yaml", "path to OrderDesk config file")
	cmd.Flags().StringVarP(&userID, "user", "u", "local", "user id for the conversation session")
	return cmd
}

func runChat(cmd *cobra.Command, configPath, userID string) error {
	out := cmd.OutOrStdout()

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	dispatcher, err := buildDispatcher(gormDB, io.Discard)
	if err != nil {
		return err
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(out, "OrderDesk chat as %q — type 'quit' to leave.\n", userID)
	}

	return chatLoop(cmd.InOrStdin(), out, dispatcher, userID)
}

// chatLoop reads lines and prints the dispatcher's reply for each until
// EOF or a quit keyword.
func chatLoop(in io.Reader, out io.Writer, dispatcher *dispatch.Dispatcher, userID string) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "quit", "exit":
			fmt.Fprintln(out, "Bye.")
			return nil
		case "":
			fmt.Fprint(out, "> ")
			continue
		}

		resp, err := dispatcher.Handle(userID, line)
		if err != nil {
			return fmt.Errorf("chat: %w", err)
		}
		fmt.Fprintln(out, concierge.RenderText(resp))
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Olbrain/alchemist-dashboard-sub002/services/conversations"
)

// newChatCmd opens an interactive session against a deployed agent's
// own runtime endpoint. This path uses Bearer auth, not the builder
// backend's ApiKey scheme.
func newChatCmd(a *app) *cobra.Command {
	var runtimeURL, token string

	cmd := &cobra.Command{
		Use:   "chat <agent-id>",
		Short: "Chat with a deployed agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := runtimeURL
			if url == "" {
				st, err := a.agents.Status(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if st == nil || st.ServiceURL == "" {
					return fmt.Errorf("agent %s has no service URL; pass --url", args[0])
				}
				url = st.ServiceURL
			}
			key := token
			if key == "" {
				key = a.cfg.APIKey
			}

			rt := conversations.NewRuntimeClient(url, key, a.logger)
			if err := rt.HealthCheck(cmd.Context()); err != nil {
				return fmt.Errorf("agent unreachable at %s: %w", url, err)
			}

			sess, err := rt.CreateSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("session %s: type a message, or /quit to leave\n", sess.ID)

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "/quit" {
					return nil
				}
				reply, err := rt.SendMessage(cmd.Context(), sess.ID, line)
				if err != nil {
					fmt.Fprintln(os.Stderr, "send failed:", err)
					continue
				}
				if reply != nil {
					fmt.Println(reply.Content)
				}
			}
		},
	}
	cmd.Flags().StringVar(&runtimeURL, "url", "", "agent runtime base URL (defaults to the agent's service URL)")
	cmd.Flags().StringVar(&token, "token", "", "runtime credential (defaults to the configured API key)")
	return cmd
}

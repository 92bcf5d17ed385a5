package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Olbrain/alchemist-dashboard-sub002/internal/format"
)

func newSessionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Browse agent conversations",
	}

	list := &cobra.Command{
		Use:   "list <agent-id>",
		Short: "List sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.conv.Sessions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCHANNEL\tMESSAGES\tLAST ACTIVITY")
			for _, s := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Channel, s.MessageCount, format.TimeAgo(s.LastMessageAt.Time))
			}
			return w.Flush()
		},
	}

	messages := &cobra.Command{
		Use:   "messages <agent-id> <session-id>",
		Short: "Show a session transcript",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := a.conv.Messages(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			for _, m := range msgs {
				fmt.Printf("[%s] %s\n", m.Role, m.Content)
			}
			return nil
		},
	}

	cmd.AddCommand(list, messages)
	return cmd
}

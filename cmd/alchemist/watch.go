package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

// newWatchCmd follows a live feed for one agent until interrupted.
// Under the realtime adapter the feed is push; under the REST adapter
// it is the polling pseudo-subscription, so updates arrive on the poll
// interval.
func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow a live feed for an agent (Ctrl-C to stop)",
	}

	wait := func(unsub dataaccess.Unsubscribe) error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		unsub()
		return nil
	}

	onErr := func(err error) {
		fmt.Fprintln(os.Stderr, "watch error:", err)
	}

	status := &cobra.Command{
		Use:   "status <agent-id>",
		Short: "Follow the agent's service status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unsub := a.agents.WatchStatus(args[0], func(st *dataaccess.AgentServiceStatus) {
				if st == nil {
					fmt.Println("status: unknown")
					return
				}
				line := st.Status
				if st.DeploymentStatus != "" {
					line += " (" + st.DeploymentStatus + ")"
				}
				fmt.Println("status:", line)
			}, onErr)
			return wait(unsub)
		},
	}

	docs := &cobra.Command{
		Use:   "docs <agent-id>",
		Short: "Follow the agent's document library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unsub := a.docs.Watch(args[0], func(list []dataaccess.Document) {
				fmt.Printf("documents: %d\n", len(list))
				for _, d := range list {
					fmt.Printf("  %s\t%s\n", d.ID, d.Name)
				}
			}, onErr)
			return wait(unsub)
		},
	}

	sessions := &cobra.Command{
		Use:   "sessions <agent-id>",
		Short: "Follow the agent's conversation sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unsub := a.conv.WatchSessions(args[0], func(list []dataaccess.Session) {
				fmt.Printf("sessions: %d\n", len(list))
			}, onErr)
			return wait(unsub)
		},
	}

	deployments := &cobra.Command{
		Use:   "deployments <agent-id>",
		Short: "Follow the agent's MCP deployment history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unsub := a.mcp.WatchHistory(args[0], func(list []dataaccess.Deployment) {
				for _, d := range list {
					fmt.Printf("%s\t%s\n", d.ID, d.Status)
				}
			}, onErr)
			return wait(unsub)
		},
	}

	cmd.AddCommand(status, docs, sessions, deployments)
	return cmd
}

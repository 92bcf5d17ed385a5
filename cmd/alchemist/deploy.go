package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
	"github.com/Olbrain/alchemist-dashboard-sub002/internal/format"
)

func newDeployCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Manage MCP deployments",
	}

	var name string
	start := &cobra.Command{
		Use:   "mcp <agent-id>",
		Short: "Deploy the agent as an MCP server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dep, err := a.mcp.Deploy(cmd.Context(), args[0], &dataaccess.DeployParams{Name: name})
			if err != nil {
				return err
			}
			fmt.Printf("deployment %s started (%s)\n", dep.ID, dep.Status)
			return nil
		},
	}
	start.Flags().StringVar(&name, "name", "", "deployment name")

	status := &cobra.Command{
		Use:   "status <agent-id>",
		Short: "Show the current deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dep, err := a.mcp.Current(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if dep == nil {
				fmt.Println("agent has never been deployed")
				return nil
			}
			fmt.Printf("ID:     %s\nStatus: %s\n", dep.ID, dep.Status)
			if dep.URL != "" {
				fmt.Printf("URL:    %s\n", dep.URL)
			}
			if dep.Error != "" {
				fmt.Printf("Error:  %s\n", dep.Error)
			}
			return nil
		},
	}

	history := &cobra.Command{
		Use:   "history <agent-id>",
		Short: "Show past deployments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := a.mcp.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tSTARTED")
			for _, d := range deps {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Status, format.TimeAgo(d.CreatedAt.Time))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(start, status, history)
	return cmd
}

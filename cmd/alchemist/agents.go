package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

func newAgentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List and manage agents",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the organization's agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.agents.List(cmd.Context(), a.cfg.OrganizationID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMODEL\tSTATUS")
			for _, ag := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ag.ID, ag.Name, ag.Model, ag.Status)
			}
			return w.Flush()
		},
	}

	get := &cobra.Command{
		Use:   "get <agent-id>",
		Short: "Show one agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ag, err := a.agents.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ag == nil {
				fmt.Println("agent not found")
				return nil
			}
			fmt.Printf("ID:      %s\nName:    %s\nModel:   %s\nStatus:  %s\n", ag.ID, ag.Name, ag.Model, ag.Status)
			if ag.Description != "" {
				fmt.Printf("About:   %s\n", ag.Description)
			}
			return nil
		},
	}

	var model, description, prompt string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ag, err := a.agents.Create(cmd.Context(), a.cfg.OrganizationID, &dataaccess.AgentParams{
				Name:         args[0],
				Model:        model,
				Description:  description,
				SystemPrompt: prompt,
			})
			if err != nil {
				return err
			}
			fmt.Println("created agent", ag.ID)
			return nil
		},
	}
	create.Flags().StringVar(&model, "model", "", "model identifier")
	create.Flags().StringVar(&description, "description", "", "agent description")
	create.Flags().StringVar(&prompt, "system-prompt", "", "system prompt")

	del := &cobra.Command{
		Use:   "delete <agent-id>",
		Short: "Delete an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.agents.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted agent", args[0])
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status <agent-id>",
		Short: "Show the agent's service status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.agents.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if st == nil {
				fmt.Println("no status reported")
				return nil
			}
			fmt.Printf("Status:     %s\nDeployment: %s\n", st.Status, st.DeploymentStatus)
			if st.ServiceURL != "" {
				fmt.Printf("URL:        %s\n", st.ServiceURL)
			}
			return nil
		},
	}

	cmd.AddCommand(list, get, create, del, status)
	return cmd
}

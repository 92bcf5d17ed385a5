package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Olbrain/alchemist-dashboard-sub002/internal/format"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/apikeys"
)

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage agent API keys",
	}

	var includeSystem bool
	list := &cobra.Command{
		Use:   "list <agent-id>",
		Short: "List API keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := a.keys.List(cmd.Context(), args[0], includeSystem)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPREFIX\tSTATUS\tCALLS\tLAST USED")
			for _, k := range keys {
				lastUsed := "never"
				if k.LastUsed != nil && !k.LastUsed.IsZero() {
					lastUsed = format.TimeAgo(k.LastUsed.Time)
				}
				fmt.Fprintf(w, "%s\t%s\t%s…\t%s\t%d\t%s\n", k.ID, k.Name, k.Prefix, k.Status, k.TotalCalls, lastUsed)
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&includeSystem, "include-system", false, "include platform test keys")

	var rateLimit, expiresDays int
	create := &cobra.Command{
		Use:   "create <agent-id> <name>",
		Short: "Create an API key (the secret is shown once)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.keys.Create(cmd.Context(), args[0], apikeys.CreateParams{
				Name:          args[1],
				RateLimit:     rateLimit,
				ExpiresInDays: expiresDays,
			})
			if err != nil {
				return err
			}
			fmt.Println("Created key", created.ID)
			fmt.Println()
			fmt.Println("  " + created.Key)
			fmt.Println()
			fmt.Println("Store this secret now; it cannot be retrieved again.")
			return nil
		},
	}
	create.Flags().IntVar(&rateLimit, "rate-limit", 0, "requests per minute (0 = backend default)")
	create.Flags().IntVar(&expiresDays, "expires-days", 0, "days until expiry (0 = never)")

	revoke := &cobra.Command{
		Use:   "revoke <agent-id> <key-id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.keys.Revoke(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("revoked key", args[1])
			return nil
		},
	}

	cmd.AddCommand(list, create, revoke)
	return cmd
}

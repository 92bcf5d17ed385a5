package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newUsageCmd(a *app) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "usage <agent-id>",
		Short: "Show an agent's usage for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when := time.Now()
			if month != "" {
				parsed, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month %q, want YYYY-MM", month)
				}
				when = parsed
			}

			m, err := a.usage.Monthly(cmd.Context(), args[0], when.Year(), when.Month())
			if err != nil {
				return err
			}

			fmt.Printf("Usage for %s\n", m.Month)
			if m.FromSummary {
				fmt.Println("(no daily breakdown available, showing lifetime totals)")
			}
			fmt.Printf("Messages: %d\nTokens:   %d\nCost:     $%.4f\n", m.Messages, m.TotalTokens, m.Cost)

			if len(m.Days) > 0 {
				fmt.Println()
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DATE\tMESSAGES\tTOKENS\tCOST")
				for _, d := range m.Days {
					fmt.Fprintf(w, "%s\t%d\t%d\t$%.4f\n", d.Date, d.Messages, d.TotalTokens, d.Cost)
				}
				return w.Flush()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "calendar month as YYYY-MM (default: current)")
	return cmd
}

package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDocsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage an agent's document library",
	}

	list := &cobra.Command{
		Use:   "list <agent-id>",
		Short: "List library documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := a.docs.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSIZE\tSTATUS\tUPLOADED")
			for _, v := range views {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.SizeLabel, v.Status, v.UploadedLabel)
			}
			return w.Flush()
		},
	}

	add := &cobra.Command{
		Use:   "add <agent-id> <file>",
		Short: "Upload a file to the library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			name := filepath.Base(args[1])
			contentType := mime.TypeByExtension(filepath.Ext(name))
			doc, err := a.docs.Add(cmd.Context(), args[0], name, contentType, content)
			if err != nil {
				return err
			}
			fmt.Printf("uploaded %s as %s (%s)\n", name, doc.ID, doc.Status)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <agent-id> <document-id>",
		Short: "Delete a library document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.docs.Delete(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("deleted document", args[1])
			return nil
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

func newBridgeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Manage channel integrations",
	}

	tiledesk := &cobra.Command{
		Use:   "tiledesk",
		Short: "Tiledesk integration",
	}

	var tdProject, tdToken string
	tdConnect := &cobra.Command{
		Use:   "connect <agent-id>",
		Short: "Connect the agent to a Tiledesk project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			integ, err := a.bridge.ConnectTiledesk(cmd.Context(), &dataaccess.TiledeskParams{
				AgentID:           args[0],
				TiledeskProjectID: tdProject,
				APIToken:          tdToken,
			})
			if err != nil {
				return err
			}
			fmt.Printf("connected bot %s (%s)\n", integ.BotID, integ.Status)
			return nil
		},
	}
	tdConnect.Flags().StringVar(&tdProject, "project", "", "Tiledesk project id")
	tdConnect.Flags().StringVar(&tdToken, "token", "", "Tiledesk API token")
	tdConnect.MarkFlagRequired("project")
	tdConnect.MarkFlagRequired("token")

	tdStatus := &cobra.Command{
		Use:   "status <agent-id>",
		Short: "Show the Tiledesk binding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			integ, err := a.bridge.TiledeskStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if integ == nil {
				fmt.Println("not connected")
				return nil
			}
			fmt.Printf("Bot:     %s\nProject: %s\nStatus:  %s\n", integ.BotID, integ.TiledeskProjectID, integ.Status)
			return nil
		},
	}

	tdDisconnect := &cobra.Command{
		Use:   "disconnect <agent-id>",
		Short: "Remove the Tiledesk binding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.bridge.DisconnectTiledesk(cmd.Context(), args[0])
		},
	}
	tiledesk.AddCommand(tdConnect, tdStatus, tdDisconnect)

	whatsapp := &cobra.Command{
		Use:   "whatsapp",
		Short: "WhatsApp integration",
	}

	var waNumber, waProvider, waToken string
	waConnect := &cobra.Command{
		Use:   "connect <agent-id>",
		Short: "Bind a WhatsApp number to the agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			integ, err := a.bridge.ConnectWhatsApp(cmd.Context(), &dataaccess.WhatsAppParams{
				AgentID:     args[0],
				PhoneNumber: waNumber,
				Provider:    waProvider,
				AccessToken: waToken,
			})
			if err != nil {
				return err
			}
			fmt.Printf("connected %s (%s)\n", integ.PhoneNumber, integ.Status)
			return nil
		},
	}
	waConnect.Flags().StringVar(&waNumber, "number", "", "phone number")
	waConnect.Flags().StringVar(&waProvider, "provider", "", "WhatsApp provider")
	waConnect.Flags().StringVar(&waToken, "token", "", "provider access token")
	waConnect.MarkFlagRequired("number")

	waStatus := &cobra.Command{
		Use:   "status <agent-id>",
		Short: "Show the WhatsApp binding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			integ, err := a.bridge.WhatsAppStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if integ == nil {
				fmt.Println("not connected")
				return nil
			}
			fmt.Printf("Number: %s\nStatus: %s\n", integ.PhoneNumber, integ.Status)
			return nil
		},
	}

	waDisconnect := &cobra.Command{
		Use:   "disconnect <agent-id>",
		Short: "Remove the WhatsApp binding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.bridge.DisconnectWhatsApp(cmd.Context(), args[0])
		},
	}
	whatsapp.AddCommand(waConnect, waStatus, waDisconnect)

	cmd.AddCommand(tiledesk, whatsapp)
	return cmd
}

// Command alchemist is the terminal companion to the Alchemist
// agent-builder platform: agent CRUD, API keys, document libraries,
// usage analytics, conversations, MCP deployments, channel bridges, and
// live watch feeds, all through the same data-access layer the
// dashboard uses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
	"github.com/Olbrain/alchemist-dashboard-sub002/internal/config"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/agents"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/apikeys"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/bridge"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/conversations"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/documents"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/mcp"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/usage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds the one adapter instance and the services built on it. It
// is wired once in the root command's PersistentPreRunE.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	da     dataaccess.DataAccess
	agents *agents.Service
	keys   *apikeys.Service
	docs   *documents.Service
	usage  *usage.Service
	conv   *conversations.Service
	mcp    *mcp.Service
	bridge *bridge.Service
}

func (a *app) init(cfgPath string, verbose bool) error {
	var err error
	if verbose {
		a.logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		a.logger, err = cfg.Build()
	}
	if err != nil {
		return err
	}

	a.cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	a.da, err = dataaccess.New(a.cfg.DataAccess(), a.logger)
	if err != nil {
		return err
	}

	a.agents = agents.New(a.da, a.logger)
	a.keys = apikeys.New(a.da, a.logger)
	a.docs = documents.New(a.da, a.logger)
	a.conv = conversations.New(a.da, a.logger)
	a.mcp = mcp.New(a.da, a.logger)
	a.bridge = bridge.New(a.da, a.logger)
	a.usage, err = usage.New(a.da, a.logger)
	return err
}

func (a *app) close() {
	if a.usage != nil {
		a.usage.Close()
	}
	if a.da != nil {
		a.da.Close()
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var cfgPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "alchemist",
		Short:         "Manage Alchemist agents from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cfgPath, verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newAgentsCmd(a),
		newKeysCmd(a),
		newDocsCmd(a),
		newUsageCmd(a),
		newSessionsCmd(a),
		newDeployCmd(a),
		newBridgeCmd(a),
		newWatchCmd(a),
		newChatCmd(a),
	)
	return root
}

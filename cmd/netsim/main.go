// Netsim - deterministic packet-level network topology simulator.
//
// A CLI tool for driving the simulation engine with:
//   - A single pure Simulate(topology, packet) entry point
//   - A file or Redis-backed store for saved topologies
//   - A YAML-driven scenario regression suite
//   - Audit logging of every simulate run
//
// Noun-verb CLI pattern:
//
//	netsim <resource> <action> [args]
//
// Examples:
//
//	netsim simulate topo.json A B
//	netsim validate topo.json
//	netsim convert topo.json out.json
//	netsim store save topo.json office
//	netsim store list
//	netsim scenario run testdata/
//	netsim settings show
//	netsim version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netlab-project/netlab/pkg/audit"
	"github.com/netlab-project/netlab/pkg/settings"
	"github.com/netlab-project/netlab/pkg/util"
	"github.com/netlab-project/netlab/pkg/version"
)

// App holds CLI state shared across all commands.
type App struct {
	storeDir   string
	storeAddr  string
	auditPath  string
	jsonOutput bool
	verbose    bool

	settings *settings.Settings
}

var app = &App{}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "netsim",
	Short:         "Deterministic packet-level network topology simulator",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Netsim simulates one packet's journey through a static network
topology: layer-2 switching with MAC learning and VLANs, layer-3 static
routing, and ordered firewall ACLs.

  netsim simulate <topology.json> <src> <dst> [--protocol icmp] [--ttl N]
  netsim validate <topology.json>
  netsim convert <in.json> <out.json>
  netsim store save <topology.json> <name>
  netsim store load <name>
  netsim store list
  netsim scenario run <dir>
  netsim settings show
  netsim version`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isSettingsOrHelp(cmd) {
			return nil
		}

		var err error
		app.settings, err = settings.Load()
		if err != nil {
			util.Logger.Warnf("Could not load settings: %v", err)
			app.settings = &settings.Settings{}
		}

		if app.storeDir == "" {
			app.storeDir = app.settings.GetStoreDir()
		}
		if app.auditPath == "" {
			app.auditPath = app.settings.GetAuditLogPath()
		}

		if app.verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		auditLogger, err := audit.NewFileLogger(app.auditPath, audit.RotationConfig{
			MaxSize:    int64(app.settings.GetAuditMaxSizeMB()) * 1024 * 1024,
			MaxBackups: app.settings.GetAuditMaxBackups(),
		})
		if err != nil {
			util.Logger.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&app.storeDir, "store-dir", "", "topology file-store directory")
	rootCmd.PersistentFlags().StringVar(&app.storeAddr, "store-addr", "", "Redis address for the topology store (overrides --store-dir)")
	rootCmd.PersistentFlags().StringVar(&app.auditPath, "audit-log", "", "audit log file path")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "JSON output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "engine", Title: "Engine Commands:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{simulateCmd, validateCmd, convertCmd, storeCmd, scenarioCmd} {
		cmd.GroupID = "engine"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{settingsCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("netsim dev build (set version info with -ldflags at build time)")
		} else {
			fmt.Printf("netsim %s (%s)\n", version.Version, version.GitCommit)
		}
	},
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings, help, or version command.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings":
			return true
		}
	}
	return false
}

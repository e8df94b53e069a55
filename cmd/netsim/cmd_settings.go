package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/netlab-project/netlab/pkg/model"
	"github.com/netlab-project/netlab/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.netlab/settings.json.

Settings provide defaults for engine flags:
  - default_max_hops:    used when --max-hops is not specified
  - default_trace_level: used when --trace-level is not specified
  - store_dir:           file-store directory used when --store-addr is unset
  - audit_log_path:      audit log file path

Examples:
  netsim settings show
  netsim settings set default_max_hops 200
  netsim settings set store_dir /var/lib/netsim/topologies
  netsim settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SETTING\tVALUE")
		fmt.Fprintln(w, "-------\t-----")

		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintf(w, "%s\t%s\n", name, value)
		}

		printSetting("default_max_hops", intOrEmpty(s.DefaultMaxHops))
		printSetting("default_trace_level", string(s.DefaultTraceLevel))
		printSetting("store_dir", s.StoreDir)
		printSetting("store_addr", s.StoreAddr)
		printSetting("audit_log_path", s.AuditLogPath)
		printSetting("audit_max_size_mb", intOrEmpty(s.AuditMaxSizeMB))
		printSetting("audit_max_backups", intOrEmpty(s.AuditMaxBackups))

		w.Flush()
		return nil
	},
}

func intOrEmpty(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting, value := args[0], args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "default_max_hops":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("default_max_hops must be an integer: %w", err)
			}
			s.DefaultMaxHops = n
		case "default_trace_level":
			s.DefaultTraceLevel = model.TraceLevel(value)
		case "store_dir":
			s.StoreDir = value
		case "store_addr":
			s.StoreAddr = value
		case "audit_log_path":
			s.AuditLogPath = value
		case "audit_max_size_mb":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("audit_max_size_mb must be an integer: %w", err)
			}
			s.AuditMaxSizeMB = n
		case "audit_max_backups":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("audit_max_backups must be an integer: %w", err)
			}
			s.AuditMaxBackups = n
		default:
			return fmt.Errorf("unknown setting: %s", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Printf("%s set to: %s\n", setting, value)
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &settings.Settings{}
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("All settings cleared.")
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show settings file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(settings.DefaultSettingsPath())
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsClearCmd, settingsPathCmd)
}

// Package settings manages persistent user settings for the netsim CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/netlab-project/netlab/pkg/model"
)

// Settings holds persistent user preferences.
type Settings struct {
	// DefaultMaxHops overrides model.DefaultOptions' hop cap when set.
	DefaultMaxHops int `json:"default_max_hops,omitempty"`

	// DefaultTraceLevel overrides the default trace verbosity ("minimal"
	// or "detailed") when set.
	DefaultTraceLevel model.TraceLevel `json:"default_trace_level,omitempty"`

	// StoreAddr is the Redis address used by the topology store when no
	// override is passed on the command line.
	StoreAddr string `json:"store_addr,omitempty"`

	// StoreDir is the file-store directory used when Redis mode isn't
	// requested.
	StoreDir string `json:"store_dir,omitempty"`

	// AuditLogPath overrides the default audit log path.
	AuditLogPath string `json:"audit_log_path,omitempty"`

	// AuditMaxSizeMB is the max audit log size in MB before rotation (default: 10).
	AuditMaxSizeMB int `json:"audit_max_size_mb,omitempty"`

	// AuditMaxBackups is the max number of rotated audit log files (default: 10).
	AuditMaxBackups int `json:"audit_max_backups,omitempty"`
}

const (
	// DefaultAuditMaxSizeMB is the default maximum audit log size in megabytes.
	DefaultAuditMaxSizeMB = 10

	// DefaultAuditMaxBackups is the default maximum number of rotated audit log files.
	DefaultAuditMaxBackups = 10

	// DefaultStoreDir is used when no store directory is configured.
	DefaultStoreDir = "/var/lib/netsim/topologies"
)

// DefaultSettingsPath returns the default path for the settings file.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/netsim_settings.json"
	}
	return filepath.Join(home, ".netlab", "settings.json")
}

// Load reads settings from the default location.
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location.
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path.
func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetMaxHops returns the configured hop cap, falling back to
// model.DefaultOptions' value.
func (s *Settings) GetMaxHops() int {
	if s.DefaultMaxHops > 0 {
		return s.DefaultMaxHops
	}
	return model.DefaultOptions().MaxHops
}

// GetTraceLevel returns the configured trace level, falling back to
// model.DefaultOptions' value.
func (s *Settings) GetTraceLevel() model.TraceLevel {
	if s.DefaultTraceLevel != "" {
		return s.DefaultTraceLevel
	}
	return model.DefaultOptions().TraceLevel
}

// GetStoreDir returns the file-store directory with a fallback default.
func (s *Settings) GetStoreDir() string {
	if s.StoreDir != "" {
		return s.StoreDir
	}
	return DefaultStoreDir
}

// GetAuditLogPath returns the audit log path with a fallback default.
func (s *Settings) GetAuditLogPath() string {
	if s.AuditLogPath != "" {
		return s.AuditLogPath
	}
	return "/var/log/netsim/audit.log"
}

// GetAuditMaxSizeMB returns the audit max size in MB with a default of 10.
func (s *Settings) GetAuditMaxSizeMB() int {
	if s.AuditMaxSizeMB > 0 {
		return s.AuditMaxSizeMB
	}
	return DefaultAuditMaxSizeMB
}

// GetAuditMaxBackups returns the audit max backups with a default of 10.
func (s *Settings) GetAuditMaxBackups() int {
	if s.AuditMaxBackups > 0 {
		return s.AuditMaxBackups
	}
	return DefaultAuditMaxBackups
}

// Clear resets all settings to defaults.
func (s *Settings) Clear() {
	*s = Settings{}
}

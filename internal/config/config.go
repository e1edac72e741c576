package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrOwnership marks a file that was created but could not be handed to the user
// who ran sudo. It is worth a warning, not a failure.
var ErrOwnership = errors.New("could not hand over to sudo user")

const (
	DomainsFileName = "domains.txt"
	ConfigFileName  = "config.yaml"
)

type LogConfig struct {
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

type Config struct {
	HostsFile  string    `yaml:"hosts_file"`
	Addresses  []string  `yaml:"addresses"`
	IncludeWWW bool      `yaml:"include_www"`
	FlushDNS   bool      `yaml:"flush_dns"`
	Editor     string    `yaml:"editor"`
	Log        LogConfig `yaml:"log"`

	// Dir is the focus directory holding the block-list, config and log.
	Dir string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		HostsFile:  DefaultHostsFile(),
		Addresses:  []string{"127.0.0.1"},
		IncludeWWW: true,
		FlushDNS:   true,
		Log: LogConfig{
			File:       "focus.log",
			MaxSize:    1,
			MaxBackups: 3,
			MaxAge:     30,
		},
	}
}

// DefaultHostsFile is the hosts file on Linux, macOS and the BSDs.
func DefaultHostsFile() string {
	return "/etc/hosts"
}

// Load reads the YAML config at path. An empty path means config.yaml inside the
// focus directory. A missing file yields the defaults; environment overrides are
// applied afterwards.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.Dir = dir

	if path == "" {
		path = filepath.Join(dir, ConfigFileName)
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if v := strings.TrimSpace(os.Getenv("FOCUS_HOSTS_FILE")); v != "" {
		cfg.HostsFile = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.HostsFile) == "" {
		return fmt.Errorf("hosts_file must not be empty")
	}
	if len(c.Addresses) == 0 {
		return fmt.Errorf("at least one redirect address is required")
	}
	for i, a := range c.Addresses {
		addr, err := netip.ParseAddr(strings.TrimSpace(a))
		if err != nil {
			return fmt.Errorf("invalid redirect address %q: %w", a, err)
		}
		c.Addresses[i] = addr.String()
	}
	return nil
}

func (c *Config) DomainsFile() string {
	return filepath.Join(c.Dir, DomainsFileName)
}

// LogFile returns the activity log path, or "" when file logging is disabled.
func (c *Config) LogFile() string {
	if c.Log.File == "" {
		return ""
	}
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Dir, c.Log.File)
}

// Dir returns the focus directory: $FOCUS_HOME, or ~/.focus of the invoking user.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("FOCUS_HOME")); v != "" {
		return v, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("could not find home directory: %w", err)
	}
	return filepath.Join(home, ".focus"), nil
}

// homeDir prefers the home of the user who ran sudo, so `sudo focus on` reads the
// same block-list as `focus edit`.
func homeDir() (string, error) {
	if name := os.Getenv("SUDO_USER"); name != "" && os.Geteuid() == 0 {
		if u, err := user.Lookup(name); err == nil && u.HomeDir != "" {
			return u.HomeDir, nil
		}
	}
	return os.UserHomeDir()
}

// SudoOwner reports the uid and gid of the user who invoked sudo.
func SudoOwner() (uid, gid int, ok bool) {
	if os.Geteuid() != 0 {
		return 0, 0, false
	}
	u, err1 := strconv.Atoi(os.Getenv("SUDO_UID"))
	g, err2 := strconv.Atoi(os.Getenv("SUDO_GID"))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return u, g, true
}

// EnsureDir creates dir when it is missing. Under sudo the new directory is
// handed to the invoking user so that later runs without sudo can still write
// to it.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat focus directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create focus directory: %w", err)
	}
	return ChownToInvoker(dir)
}

// ChownToInvoker gives path to the user who ran sudo. Outside sudo it does nothing.
func ChownToInvoker(path string) error {
	uid, gid, ok := SudoOwner()
	if !ok {
		return nil
	}
	if err := os.Chown(path, uid, gid); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOwnership, path, err)
	}
	return nil
}

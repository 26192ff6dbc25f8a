package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Keyboard     KeyboardConfig     `toml:"keyboard"`
	Menu         MenuConfig         `toml:"menu"`
	Accelerators AcceleratorsConfig `toml:"accelerators"`
	Storage      StorageConfig      `toml:"storage"`
	Web          WebConfig          `toml:"web"`
}

type KeyboardConfig struct {
	Hook    bool `toml:"hook"`
	LogKeys bool `toml:"log_keys"`
}

type MenuConfig struct {
	Backend     string       `toml:"backend"`
	LabelStyle  string       `toml:"label_style"`
	WindowTitle string       `toml:"window_title"`
	URLScheme   string       `toml:"url_scheme"`
	Items       []ItemConfig `toml:"items"`
}

// ItemConfig is one menu entry. An entry with Items is a submenu, one with
// Separator set is a separator line, anything else is a command item.
type ItemConfig struct {
	ID        int          `toml:"id,omitempty"`
	Label     string       `toml:"label,omitempty"`
	Hotkey    string       `toml:"hotkey,omitempty"`
	Separator bool         `toml:"separator,omitempty"`
	Items     []ItemConfig `toml:"items,omitempty"`
}

type AcceleratorsConfig struct {
	Backend string `toml:"backend"`
}

type StorageConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	// RetentionDays prunes older events at startup, 0 keeps everything
	RetentionDays int `toml:"retention_days"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// Menu backends
const (
	MenuNative = "native"
	MenuTray   = "tray"
	MenuMemory = "memory"
)

// Accelerator backends
const (
	AccelNative = "native"
	AccelGlobal = "global"
	AccelMemory = "memory"
)

func appDir() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			appData = dir
		} else {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	}
	return filepath.Join(appData, "menukeys")
}

// Default configuration
func defaultConfig() *Config {
	accelBackend := AccelMemory
	if runtime.GOOS == "windows" {
		accelBackend = AccelNative
	}

	return &Config{
		Keyboard: KeyboardConfig{
			Hook:    runtime.GOOS == "windows",
			LogKeys: false,
		},
		Menu: MenuConfig{
			Backend:    MenuTray,
			LabelStyle: "",
			URLScheme:  "menukeys",
			Items:      defaultItems(),
		},
		Accelerators: AcceleratorsConfig{
			Backend: accelBackend,
		},
		Storage: StorageConfig{
			Enabled:       true,
			Path:          filepath.Join(appDir(), "menukeys.db"),
			RetentionDays: 90,
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8765,
		},
	}
}

func defaultItems() []ItemConfig {
	return []ItemConfig{
		{Label: "File", Items: []ItemConfig{
			{ID: 1, Label: "New", Hotkey: "Ctrl+Alt+N"},
			{ID: 2, Label: "Open", Hotkey: "Ctrl+Alt+O"},
			{ID: 3, Label: "Save", Hotkey: "Ctrl+Alt+S"},
			{Separator: true},
			{ID: 4, Label: "Quit", Hotkey: "Ctrl+Alt+Q"},
		}},
		{Label: "View", Items: []ItemConfig{
			{Label: "Zoom", Items: []ItemConfig{
				{ID: 20, Label: "Zoom In", Hotkey: "Ctrl+Alt+Up"},
				{ID: 21, Label: "Zoom Out", Hotkey: "Ctrl+Alt+Down"},
			}},
			{ID: 22, Label: "Full Screen", Hotkey: "Ctrl+Alt+F11"},
		}},
		{Separator: true},
		{ID: 30, Label: "About"},
	}
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	configDir := appDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the TOML file at path, or from
// ConfigPath when path is empty. A missing file is created with defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return nil, err
		}
	}

	// If config doesn't exist, create it with defaults
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := defaultConfig()
		if err := save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	// Decode over the defaults, except for the menu tree: a configured menu
	// replaces the default one instead of merging into it.
	cfg := defaultConfig()
	cfg.Menu.Items = nil
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if !md.IsDefined("menu", "items") {
		cfg.Menu.Items = defaultItems()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// save writes the configuration to the TOML file
func save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Validate checks backend names, the web port and the menu definition.
func (c *Config) Validate() error {
	var errs []error
	switch c.Menu.Backend {
	case MenuNative, MenuTray, MenuMemory:
	default:
		errs = append(errs, fmt.Errorf("menu.backend: unknown backend %q", c.Menu.Backend))
	}
	switch c.Accelerators.Backend {
	case AccelNative, AccelGlobal, AccelMemory:
	default:
		errs = append(errs, fmt.Errorf("accelerators.backend: unknown backend %q", c.Accelerators.Backend))
	}
	if _, err := c.Menu.Style(); err != nil {
		errs = append(errs, err)
	}
	if c.Web.Enabled && (c.Web.Port <= 0 || c.Web.Port > 65535) {
		errs = append(errs, fmt.Errorf("web.port: %d out of range", c.Web.Port))
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path: required when storage is enabled"))
	}
	if c.Storage.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("storage.retention_days: %d is negative", c.Storage.RetentionDays))
	}
	errs = append(errs, validateItems("menu.items", c.Menu.Items)...)
	return errors.Join(errs...)
}

func validateItems(prefix string, items []ItemConfig) []error {
	var errs []error
	for i, it := range items {
		at := fmt.Sprintf("%s[%d]", prefix, i)
		switch {
		case it.Separator:
			if it.Label != "" || it.ID != 0 || len(it.Items) > 0 {
				errs = append(errs, fmt.Errorf("%s: separator takes no label, id or items", at))
			}
		case len(it.Items) > 0:
			if it.ID != 0 || it.Hotkey != "" {
				errs = append(errs, fmt.Errorf("%s: submenu %q takes no id or hotkey", at, it.Label))
			}
			errs = append(errs, validateItems(at+".items", it.Items)...)
		default:
			if it.Label == "" {
				errs = append(errs, fmt.Errorf("%s: label is required", at))
			}
			if it.ID <= 0 {
				errs = append(errs, fmt.Errorf("%s: id must be positive", at))
			}
		}
	}
	return errs
}

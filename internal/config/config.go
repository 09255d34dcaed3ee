package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// File settings
	DefaultFile string
	AutoReload  bool
	ReloadDelay time.Duration

	// UI settings
	Colors        map[string]string
	KeyBindings   map[string]string
	ConfirmDelete bool
	WrapText      bool

	// Logging
	LogFile  string
	LogLevel string

	// Path the configuration was read from, empty for defaults
	Source string
}

// Actions that can be bound to keys.
const (
	ActionLoad       = "load"
	ActionSave       = "save"
	ActionAdd        = "add"
	ActionEdit       = "edit"
	ActionDelete     = "delete"
	ActionHelp       = "help"
	ActionQuit       = "quit"
	ActionScrollUp   = "scroll_up"
	ActionScrollDown = "scroll_down"
)

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	bindRe  = regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
)

func DefaultConfig() *Config {
	return &Config{
		DefaultFile: "",
		AutoReload:  true,
		ReloadDelay: 100 * time.Millisecond,

		Colors: map[string]string{
			"header":  "220",
			"text":    "252",
			"help":    "241",
			"message": "220",
			"input":   "39",
			"error":   "196",
		},

		// key -> action
		KeyBindings: map[string]string{
			"o":      ActionLoad,
			"s":      ActionSave,
			"a":      ActionAdd,
			"e":      ActionEdit,
			"d":      ActionDelete,
			"?":      ActionHelp,
			"q":      ActionQuit,
			"k":      ActionScrollUp,
			"up":     ActionScrollUp,
			"j":      ActionScrollDown,
			"down":   ActionScrollDown,
			"ctrl+c": ActionQuit,
		},

		ConfirmDelete: true,
		WrapText:      true,

		LogFile:  "",
		LogLevel: "info",
	}
}

// SearchPaths lists the places a config file is looked for, in order.
func SearchPaths() []string {
	home, _ := os.UserHomeDir()
	paths := []string{os.Getenv("UCPCAL_CONFIG")}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "ucpcal", "ucpcalrc"))
	}
	if home != "" {
		paths = append(paths,
			filepath.Join(home, ".config", "ucpcal", "ucpcalrc"),
			filepath.Join(home, ".config", "ucpcal", "config.yaml"),
			filepath.Join(home, ".ucpcalrc"),
		)
	}
	return paths
}

// LoadConfig reads the first config file found in SearchPaths. Without one
// the defaults are returned.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	for _, path := range SearchPaths() {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	return config, nil
}

// LoadConfigFile reads the config at path, which must exist.
func LoadConfigFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.loadFromFile(path); err != nil {
		return nil, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) loadFromFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := c.loadYAML(path); err != nil {
			return err
		}
	default:
		if err := c.loadRC(path); err != nil {
			return err
		}
	}
	c.Source = path
	return nil
}

func (c *Config) loadRC(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		if err := c.parseLine(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

func (c *Config) parseLine(line string) error {
	line = strings.TrimSpace(line)

	// Skip comments and empty lines
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	// set variable value
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// bind key action
	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		return c.bind(matches[1], matches[2])
	}

	// color element color_spec
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = strings.Trim(matches[2], `"'`)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) bind(key, action string) error {
	switch action {
	case ActionLoad, ActionSave, ActionAdd, ActionEdit, ActionDelete,
		ActionHelp, ActionQuit, ActionScrollUp, ActionScrollDown:
		c.KeyBindings[key] = action
		return nil
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "default_file":
		c.DefaultFile = expandHome(value)

	case "auto_reload":
		c.AutoReload = parseBool(value)

	case "reload_delay":
		delay, err := time.ParseDuration(value)
		if err != nil {
			// Try parsing as milliseconds
			ms, err2 := strconv.Atoi(value)
			if err2 != nil {
				return fmt.Errorf("invalid reload_delay: %s", value)
			}
			delay = time.Duration(ms) * time.Millisecond
		}
		c.ReloadDelay = delay

	case "confirm_delete":
		c.ConfirmDelete = parseBool(value)

	case "wrap_text":
		c.WrapText = parseBool(value)

	case "log_file":
		c.LogFile = expandHome(value)

	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid log_level: %s", value)
		}

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

// yamlConfig is the YAML form of the rc file. Unset fields keep their defaults.
type yamlConfig struct {
	DefaultFile   *string           `yaml:"default_file"`
	AutoReload    *bool             `yaml:"auto_reload"`
	ReloadDelay   *string           `yaml:"reload_delay"`
	ConfirmDelete *bool             `yaml:"confirm_delete"`
	WrapText      *bool             `yaml:"wrap_text"`
	LogFile       *string           `yaml:"log_file"`
	LogLevel      *string           `yaml:"log_level"`
	Colors        map[string]string `yaml:"colors"`
	Bindings      map[string]string `yaml:"bindings"` // key -> action
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}

	if yc.DefaultFile != nil {
		c.DefaultFile = expandHome(*yc.DefaultFile)
	}
	if yc.AutoReload != nil {
		c.AutoReload = *yc.AutoReload
	}
	if yc.ReloadDelay != nil {
		if err := c.setVariable("reload_delay", *yc.ReloadDelay); err != nil {
			return err
		}
	}
	if yc.ConfirmDelete != nil {
		c.ConfirmDelete = *yc.ConfirmDelete
	}
	if yc.WrapText != nil {
		c.WrapText = *yc.WrapText
	}
	if yc.LogFile != nil {
		c.LogFile = expandHome(*yc.LogFile)
	}
	if yc.LogLevel != nil {
		if err := c.setVariable("log_level", *yc.LogLevel); err != nil {
			return err
		}
	}
	for element, color := range yc.Colors {
		c.Colors[element] = color
	}
	for key, action := range yc.Bindings {
		if err := c.bind(key, action); err != nil {
			return err
		}
	}
	return nil
}

// ActionFor returns the action bound to key, or "".
func (c *Config) ActionFor(key string) string {
	return c.KeyBindings[key]
}

// KeysFor returns the keys bound to action, in display order.
func (c *Config) KeysFor(action string) []string {
	var keys []string
	for key, a := range c.KeyBindings {
		if a == action {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, keyOrder)
	return keys
}

func keyOrder(a, b string) int {
	// single-character keys first
	if (len(a) == 1) != (len(b) == 1) {
		if len(a) == 1 {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func parseBool(value string) bool {
	return strings.ToLower(value) == "true" || value == "1"
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

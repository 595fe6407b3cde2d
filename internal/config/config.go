package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/jask/vcode/core"
)

// ErrUnknownPreset is returned when widget.preset names no known pattern.
var ErrUnknownPreset = errors.New("unknown pattern preset")

// Config holds application configuration.
type Config struct {
	Widget  WidgetConfig
	UI      UIConfig
	Journal JournalConfig
	Log     LogConfig
	// Keys overrides the keys bound to an action, e.g. submit = ["ctrl+s"].
	Keys map[string][]string
}

// WidgetConfig mirrors the code widget options.
type WidgetConfig struct {
	Value          string
	Length         int
	Pattern        string
	Fragment       string
	Preset         string
	Password       bool
	Disabled       bool
	AllowPaste     bool   `mapstructure:"allow_paste"`
	AutoFocus      bool   `mapstructure:"auto_focus"`
	ContainerClass string `mapstructure:"container_class"`
	InputClass     string `mapstructure:"input_class"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title          string
	ExitOnComplete bool `mapstructure:"exit_on_complete"`
}

// JournalConfig holds the sqlite completion journal settings.
type JournalConfig struct {
	Enabled bool
	Path    string
}

// LogConfig holds file logging settings. An empty path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

var presets = map[string]string{
	"numeric": `^\d+$`,
	"alpha":   `^[a-zA-Z]+$`,
	"alnum":   `^[a-zA-Z0-9]+$`,
	"hex":     `^[0-9a-fA-F]+$`,
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New returns a viper instance with defaults, config file lookup and the
// VCODE_ environment overrides applied.
func New() *viper.Viper {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("widget.value", "")
	v.SetDefault("widget.length", core.DefaultLength)
	v.SetDefault("widget.pattern", "")
	v.SetDefault("widget.fragment", "")
	v.SetDefault("widget.preset", "")
	v.SetDefault("widget.password", false)
	v.SetDefault("widget.disabled", false)
	v.SetDefault("widget.allow_paste", true)
	v.SetDefault("widget.auto_focus", true)
	v.SetDefault("widget.container_class", "")
	v.SetDefault("widget.input_class", "")
	v.SetDefault("ui.title", "Verification code")
	v.SetDefault("ui.exit_on_complete", false)
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", filepath.Join(home, ".local", "share", "vcode", "journal.db"))
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("VCODE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "vcode"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("VCODE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from file and env. Env var overrides use prefix VCODE_.
func Load() (Config, error) {
	v := New()
	if err := ReadInConfig(v); err != nil {
		return Config{}, err
	}
	return Decode(v)
}

// ReadInConfig reads the config file if one exists. A missing file is not an
// error.
func ReadInConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}

func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Watch calls fn with the decoded configuration each time the config file
// changes on disk.
func Watch(v *viper.Viper, fn func(Config, error)) {
	v.OnConfigChange(func(fsnotify.Event) {
		fn(Decode(v))
	})
	v.WatchConfig()
}

// WidgetPattern resolves the validation pattern. A full regexp wins over a
// fragment, and a fragment over a preset.
func (c Config) WidgetPattern() (core.Pattern, error) {
	w := c.Widget
	switch {
	case w.Pattern != "":
		return core.CompilePattern(w.Pattern)
	case w.Fragment != "":
		return core.MatchFragment(w.Fragment), nil
	case w.Preset != "":
		name := strings.ToLower(strings.TrimSpace(w.Preset))
		expr, ok := presets[name]
		if !ok {
			if s := suggestPreset(name); s != "" {
				return core.Pattern{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownPreset, w.Preset, s)
			}
			return core.Pattern{}, fmt.Errorf("%w %q", ErrUnknownPreset, w.Preset)
		}
		return core.CompilePattern(expr)
	default:
		return core.Pattern{}, nil
	}
}

// WidgetOptions converts the configuration into controller options.
func (c Config) WidgetOptions() (core.Options, error) {
	pattern, err := c.WidgetPattern()
	if err != nil {
		return core.Options{}, err
	}
	w := c.Widget
	opts := core.DefaultOptions()
	opts.Value = w.Value
	if w.Length > 0 {
		opts.Length = w.Length
	}
	opts.Password = w.Password
	opts.Disabled = w.Disabled
	opts.AllowPaste = w.AllowPaste
	opts.Pattern = pattern
	opts.AutoFocus = w.AutoFocus
	opts.ContainerClass = w.ContainerClass
	opts.InputClass = w.InputClass
	return opts, nil
}

// suggestPreset returns the closest preset name within an edit distance of 2.
func suggestPreset(name string) string {
	best, bestDist := "", 3
	for _, p := range Presets() {
		if d := levenshtein.ComputeDistance(name, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("VCODE_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "vcode", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("widget.value", cfg.Widget.Value)
	v.Set("widget.length", cfg.Widget.Length)
	v.Set("widget.pattern", cfg.Widget.Pattern)
	v.Set("widget.fragment", cfg.Widget.Fragment)
	v.Set("widget.preset", cfg.Widget.Preset)
	v.Set("widget.password", cfg.Widget.Password)
	v.Set("widget.disabled", cfg.Widget.Disabled)
	v.Set("widget.allow_paste", cfg.Widget.AllowPaste)
	v.Set("widget.auto_focus", cfg.Widget.AutoFocus)
	v.Set("widget.container_class", cfg.Widget.ContainerClass)
	v.Set("widget.input_class", cfg.Widget.InputClass)
	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.exit_on_complete", cfg.UI.ExitOnComplete)
	v.Set("journal.enabled", cfg.Journal.Enabled)
	v.Set("journal.path", cfg.Journal.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	if len(cfg.Keys) > 0 {
		v.Set("keys", cfg.Keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

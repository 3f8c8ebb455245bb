package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/statusline/internal/icons"
)

const appName = "statusline"

// Sources of player state.
const (
	SourceMPD   = "mpd"
	SourceMPRIS = "mpris"
)

// Defaults applied when a key is missing.
const (
	DefaultInterval    = time.Second
	DefaultPlaceholder = "N/A"
	DefaultMPDAddress  = "127.0.0.1:6600"
	DefaultMPRISPlayer = "org.mpris.MediaPlayer2.mpd"
	DefaultMain        = "{artist} - {title}"
	DefaultSuffix      = " [{elapsedTime}/{totalTime}] {stateIcon}"
)

type Config struct {
	Source             string        `koanf:"source"`              // "mpd" or "mpris"
	Interval           time.Duration `koanf:"interval"`            // poll interval, e.g. "500ms"
	DefaultPlaceholder string        `koanf:"default_placeholder"` // shown for missing tags
	LogLevel           string        `koanf:"log_level"`           // debug, info, warn, error

	MPD     MPDConfig     `koanf:"mpd"`
	MPRIS   MPRISConfig   `koanf:"mpris"`
	Format  FormatConfig  `koanf:"format"`
	Tooltip TooltipConfig `koanf:"tooltip"`
	Icons   IconsConfig   `koanf:"icons"`
	Output  OutputConfig  `koanf:"output"`
}

// MPDConfig holds the MPD connection settings.
type MPDConfig struct {
	Address  string `koanf:"address"` // host:port or path to a unix socket
	Password string `koanf:"password"`
}

// MPRISConfig selects the MPRIS player on the session bus.
type MPRISConfig struct {
	Player string `koanf:"player"` // bus name, e.g. "org.mpris.MediaPlayer2.spotify"
}

// FormatConfig holds the templates of each output section.
type FormatConfig struct {
	Prefix string `koanf:"prefix"`
	Main   string `koanf:"main"`
	Suffix string `koanf:"suffix"`
}

// TooltipConfig selects the tooltip: a template, a fixed text, or none.
type TooltipConfig struct {
	Format string `koanf:"format"` // template rendered every tick (wins over text)
	Text   string `koanf:"text"`   // fixed text
}

// IconsConfig holds the raw icon strings.
type IconsConfig struct {
	State   string `koanf:"state"`   // play, pause, stop
	Consume string `koanf:"consume"` // enabled[, disabled]
	Random  string `koanf:"random"`
	Repeat  string `koanf:"repeat"`
	Single  string `koanf:"single"`
}

// OutputConfig controls the status bar output.
type OutputConfig struct {
	MaxWidth int `koanf:"max_width"` // display width limit of the main text, 0 for none
}

// Default returns the configuration used when no file sets a key.
func Default() *Config {
	return &Config{
		Source:             SourceMPD,
		Interval:           DefaultInterval,
		DefaultPlaceholder: DefaultPlaceholder,
		LogLevel:           "info",
		MPD:                MPDConfig{Address: defaultMPDAddress()},
		MPRIS:              MPRISConfig{Player: DefaultMPRISPlayer},
		Format: FormatConfig{
			Main:   DefaultMain,
			Suffix: DefaultSuffix,
		},
		Icons: IconsConfig{
			State:   icons.DefaultState,
			Consume: icons.DefaultConsume,
			Random:  icons.DefaultRandom,
			Repeat:  icons.DefaultRepeat,
			Single:  icons.DefaultSingle,
		},
	}
}

// Load reads the configuration files. explicit, if not empty, is loaded
// last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		explicit = expandPath(explicit)
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %w", explicit, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	switch c.Source {
	case SourceMPD, SourceMPRIS:
	default:
		return fmt.Errorf("unknown source %q (expected %q or %q)", c.Source, SourceMPD, SourceMPRIS)
	}
	if c.Interval <= 0 {
		return errors.New("interval must be positive")
	}
	if c.Output.MaxWidth < 0 {
		c.Output.MaxWidth = 0
	}
	c.MPD.Address = expandPath(c.MPD.Address)
	return nil
}

// IconConfig returns the icon strings in the form the icons package parses.
func (c *Config) IconConfig() icons.Config {
	return icons.Config{
		State:   c.Icons.State,
		Consume: c.Icons.Consume,
		Random:  c.Icons.Random,
		Repeat:  c.Icons.Repeat,
		Single:  c.Icons.Single,
	}
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/statusline/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

// defaultMPDAddress honors the MPD_HOST and MPD_PORT conventions of MPD clients.
func defaultMPDAddress() string {
	host := os.Getenv("MPD_HOST")
	port := os.Getenv("MPD_PORT")
	if host == "" && port == "" {
		return DefaultMPDAddress
	}
	if strings.HasPrefix(host, "/") || strings.HasPrefix(host, "~") {
		return host
	}
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6600"
	}
	return net.JoinHostPort(host, port)
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

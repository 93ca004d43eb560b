// Package config loads table, bot and server settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/teenpatti/internal/bot"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/session"
)

// File mirrors the layout of the HCL file. Every block and attribute is
// optional.
type File struct {
	Table  *TableBlock  `hcl:"table,block"`
	Seats  []SeatBlock  `hcl:"seat,block"`
	Bots   *BotsBlock   `hcl:"bots,block"`
	Server *ServerBlock `hcl:"server,block"`
}

// TableBlock holds the fixed table parameters
type TableBlock struct {
	Boot          int   `hcl:"boot,optional"`
	StartingChips int   `hcl:"starting_chips,optional"`
	Seed          int64 `hcl:"seed,optional"`
}

// SeatBlock describes one seat, labelled with the player's name
type SeatBlock struct {
	Name     string `hcl:"name,label"`
	Kind     string `hcl:"kind,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// BotsBlock tunes automated seats. Delays are Go durations such as "900ms".
type BotsBlock struct {
	MinDelay         string   `hcl:"min_delay,optional"`
	MaxDelay         string   `hcl:"max_delay,optional"`
	ViewProbability  *float64 `hcl:"view_probability,optional"`
	RaiseProbability *float64 `hcl:"raise_probability,optional"`
	FoldProbability  *float64 `hcl:"fold_probability,optional"`
	ShowProbability  *float64 `hcl:"show_probability,optional"`
}

// ServerBlock contains websocket server settings
type ServerBlock struct {
	Address  string `hcl:"address,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Config is the resolved configuration
type Config struct {
	Table   game.TableConfig
	Seed    int64 // 0 means seed from the clock
	Session session.Config
	Server  ServerSettings
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string
	LogLevel string
}

// Default returns the stock table: one human against two standard bots.
func Default() *Config {
	return &Config{
		Table:   game.DefaultTableConfig(),
		Session: session.DefaultConfig(),
		Server: ServerSettings{
			Address:  "localhost:8080",
			LogLevel: "info",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse reads configuration from HCL source; filename is only used in
// error messages.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var f File
	if diags := gohcl.DecodeBody(body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return f.resolve()
}

// resolve applies defaults for missing values and converts to engine types.
func (f *File) resolve() (*Config, error) {
	cfg := Default()

	if t := f.Table; t != nil {
		if t.Boot != 0 {
			cfg.Table.Boot = t.Boot
		}
		if t.StartingChips != 0 {
			cfg.Table.StartingChips = t.StartingChips
		}
		cfg.Seed = t.Seed
	}

	if len(f.Seats) > 0 {
		cfg.Table.Seats = make([]game.SeatConfig, len(f.Seats))
		for i, sb := range f.Seats {
			kind := game.Automated
			if sb.Kind != "" {
				k, err := game.ParseKind(sb.Kind)
				if err != nil {
					return nil, fmt.Errorf("seat %q: %w", sb.Name, err)
				}
				kind = k
			}
			strategy := sb.Strategy
			if kind == game.Automated && strategy == "" {
				strategy = "standard"
			}
			cfg.Table.Seats[i] = game.SeatConfig{Name: sb.Name, Kind: kind, Strategy: strategy}
		}
	}

	if b := f.Bots; b != nil {
		var err error
		if cfg.Session.MinDelay, err = durationOr(b.MinDelay, cfg.Session.MinDelay); err != nil {
			return nil, fmt.Errorf("bots.min_delay: %w", err)
		}
		if cfg.Session.MaxDelay, err = durationOr(b.MaxDelay, cfg.Session.MaxDelay); err != nil {
			return nil, fmt.Errorf("bots.max_delay: %w", err)
		}
		p := &cfg.Session.Probabilities
		p.View = floatOr(b.ViewProbability, p.View)
		p.Raise = floatOr(b.RaiseProbability, p.Raise)
		p.Fold = floatOr(b.FoldProbability, p.Fold)
		p.Show = floatOr(b.ShowProbability, p.Show)
	}

	if s := f.Server; s != nil {
		if s.Address != "" {
			cfg.Server.Address = s.Address
		}
		if s.LogLevel != "" {
			cfg.Server.LogLevel = s.LogLevel
		}
	}
	return cfg, nil
}

func durationOr(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Validate checks the configuration. Table problems come back as a wrapped
// *game.ConfigError.
func (c *Config) Validate() error {
	if err := c.Table.Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	for _, s := range c.Table.Seats {
		if s.Kind == game.Automated && !slices.Contains(bot.Names, strings.ToLower(s.Strategy)) {
			return fmt.Errorf("seat %q: invalid strategy %q", s.Name, s.Strategy)
		}
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("bots: %w", err)
	}
	switch strings.ToLower(c.Server.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("server: invalid log level %q", c.Server.LogLevel)
	}
	return nil
}

// Humans returns the number of human seats.
func (c *Config) Humans() int {
	n := 0
	for _, s := range c.Table.Seats {
		if s.Kind == game.Human {
			n++
		}
	}
	return n
}

package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pinwalk/pkg/errors"
	"github.com/matzehuels/pinwalk/pkg/resolve"
)

const (
	appName = "pinwalk"

	// LocalFile is looked for next to each input file.
	LocalFile = ".pinwalk.toml"

	// UserFile is looked for in the user config directory.
	UserFile = "config.toml"
)

// Config is the full set of file settings.
type Config struct {
	// Base is the first connector index, 0 or 1.
	Base int `toml:"base"`

	// BackupSuffix is appended to the input path for the backup copy.
	BackupSuffix string `toml:"backup_suffix"`

	// Retire renames unvisited connector ids.
	Retire bool `toml:"retire"`

	// DetailAttributes writes one attribute per line.
	DetailAttributes bool `toml:"detail_attributes"`

	// Indent is the per-level indentation of the output.
	Indent string `toml:"indent"`

	Breadboard Breadboard `toml:"breadboard"`
	Schematic  Schematic  `toml:"schematic"`
	References References `toml:"references"`
}

// Breadboard configures the geometric walk.
type Breadboard struct {
	Sentinel   string  `toml:"sentinel"`
	PinPattern string  `toml:"pin_pattern"`
	Order      string  `toml:"order"`
	Tolerance  float64 `toml:"tolerance"`
}

// Schematic configures the chain walk.
type Schematic struct {
	Sentinel  string `toml:"sentinel"`
	ChainAttr string `toml:"chain_attr"`
	LabelAttr string `toml:"label_attr"`

	// PairTerminals takes the rect following each pin line as its
	// terminal.
	PairTerminals bool `toml:"pair_terminals"`
}

// References lists the attributes rewritten along with ids.
type References struct {
	Attrs []string `toml:"attrs"`
	Links []string `toml:"links"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Base:             0,
		BackupSuffix:     ".bak",
		Retire:           true,
		DetailAttributes: true,
		Indent:           "  ",
		Breadboard: Breadboard{
			Sentinel:   resolve.BreadboardSentinel,
			PinPattern: resolve.DefaultPinPattern,
			Order:      string(resolve.OrderX),
			Tolerance:  resolve.DefaultTolerance,
		},
		Schematic: Schematic{
			Sentinel:      resolve.SchematicSentinel,
			ChainAttr:     resolve.DefaultChainAttr,
			LabelAttr:     resolve.DefaultLabelAttr,
			PairTerminals: true,
		},
		References: References{
			Attrs: []string{"terminalId", "legId"},
			Links: []string{"href", "xlink:href"},
		},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Base != 0 && c.Base != 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "base must be 0 or 1, got %d", c.Base)
	}
	if err := errors.ValidateBackupSuffix(c.BackupSuffix); err != nil {
		return err
	}
	if _, err := resolve.ParseOrdering(c.Breadboard.Order); err != nil {
		return err
	}
	if c.Breadboard.Tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tolerance must not be negative")
	}
	if strings.TrimSpace(c.Indent) != "" {
		return errors.New(errors.ErrCodeInvalidConfig, "indent must be whitespace, got %q", c.Indent)
	}
	for _, id := range []string{c.Breadboard.Sentinel, c.Schematic.Sentinel} {
		if err := errors.ValidateIdentifier(id); err != nil {
			return err
		}
	}
	return nil
}

// Load reads path over [Default] and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: %s", path, errors.UserMessage(err))
	}
	return cfg, nil
}

// Find returns the config file to use for input, or "" when there is none.
// An explicit path must exist.
func Find(explicit, input string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file")
		}
		return explicit, nil
	}
	var candidates []string
	if input != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(input), LocalFile))
	}
	if dir, err := Dir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, UserFile))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c, nil
		}
	}
	return "", nil
}

// Resolve finds and loads the config for input, falling back to [Default].
func Resolve(explicit, input string) (Config, string, error) {
	path, err := Find(explicit, input)
	if err != nil || path == "" {
		return Default(), "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Dir returns the user config directory using the XDG convention
// (~/.config/pinwalk/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

package config

import (
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/errors"
)

// Verbosity is the debug level of a run.
type Verbosity int

const (
	// Silent overwrites the input, keeping a backup.
	Silent Verbosity = iota
	// Print writes the result to stdout and leaves the input alone.
	Print
	// Trace adds entry and exit messages.
	Trace
	// Detail adds per-element messages, except from stabilized components.
	Detail
	// All logs everything.
	All
)

// EnvVar pre-seeds the verbosity before flags are parsed.
const EnvVar = "PINWALK_DEBUG"

// Stabilized lists component loggers kept at warn level under [Detail].
var Stabilized = []string{"svg"}

// ParseVerbosity parses 0 to 4.
func ParseVerbosity(s string) (Verbosity, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(Silent) || n > int(All) {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "debug level must be 0 to 4, got %q", s)
	}
	return Verbosity(n), nil
}

// FromEnv reads [EnvVar]. It returns false when the variable is unset.
func FromEnv() (Verbosity, bool, error) {
	v, ok := os.LookupEnv(EnvVar)
	if !ok || strings.TrimSpace(v) == "" {
		return Silent, false, nil
	}
	vb, err := ParseVerbosity(v)
	if err != nil {
		return Silent, false, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvVar)
	}
	return vb, true, nil
}

// InPlace reports whether results replace the input file.
func (v Verbosity) InPlace() bool { return v == Silent }

// Level returns the root log level.
func (v Verbosity) Level() log.Level {
	switch {
	case v >= Detail:
		return log.DebugLevel
	case v == Trace:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

// ComponentLevel returns the log level for a named component logger.
// Stabilized components stay at warn below [All].
func (v Verbosity) ComponentLevel(component string) log.Level {
	if v < All && slices.Contains(Stabilized, component) {
		return log.WarnLevel
	}
	return v.Level()
}

func (v Verbosity) String() string { return strconv.Itoa(int(v)) }

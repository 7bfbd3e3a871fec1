package cli

import (
	"context"
	"io"
	"strings"

	"github.com/matzehuels/pinwalk/pkg/config"
	"github.com/matzehuels/pinwalk/pkg/pipeline"
)

// Run executes the CLI for argv (including the program name) and returns an
// error if any command fails.
//
// An executable named pinwalk-breadboard or pinwalk-schematic runs that
// command directly, so both can be installed as links to one binary:
//
//	pinwalk-schematic part.svg    # same as: pinwalk schematic part.svg
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	c := New(stdout, stderr)

	// PINWALK_DEBUG takes effect before the arguments are parsed.
	v, fromEnv, err := config.FromEnv()
	if err != nil {
		return err
	}
	c.SetVerbosity(v)
	if fromEnv {
		c.Logger.Debug("verbosity from environment", "var", config.EnvVar, "level", v)
	}

	args := Args(argv)
	if len(argv) > 0 {
		if mode := execMode(argv[0]); mode != "" {
			c.Logger.Debug("mode from executable name", "exe", argv[0], "mode", mode)
		}
	}
	c.Logger.Debug("dispatch", "args", args)

	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Args maps argv to command arguments, selecting the mode from the
// executable name when it has one.
func Args(argv []string) []string {
	if len(argv) == 0 {
		return nil
	}
	rest := argv[1:]
	if mode := execMode(argv[0]); mode != "" {
		return append([]string{mode}, rest...)
	}
	return rest
}

// execMode returns the mode named by an executable path such as
// /usr/bin/pinwalk-schematic or C:\bin\pinwalk-breadboard.exe, or "".
// Both separators are stripped on every platform.
func execMode(exe string) string {
	name := exe
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")
	if mode, ok := strings.CutPrefix(name, appName+"-"); ok && pipeline.ValidModes[mode] {
		return mode
	}
	return ""
}

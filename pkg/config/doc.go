// Package config holds pinwalk's settings and the verbosity model.
//
// Settings come from [Default], optionally overridden by a TOML file found by
// [Find]: an explicit path, then .pinwalk.toml next to the input file, then
// config.toml in the user config directory ($XDG_CONFIG_HOME/pinwalk or
// ~/.config/pinwalk). Unknown keys are rejected so typos do not pass
// silently.
//
// # Example
//
//	base = 0
//	backup_suffix = ".bak"
//	retire = true
//
//	[breadboard]
//	order = "ccw"
//
//	[schematic]
//	chain_attr = "next"
//	pair_terminals = true
//
// Verbosity is not part of the file. It comes from the --debug flag or the
// PINWALK_DEBUG environment variable and is mapped to log levels by
// [Verbosity.Level].
package config

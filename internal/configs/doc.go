// Package configs manages Manuka's user configuration.
//
// Configuration lives in a single TOML file at
// $XDG_CONFIG_HOME/manuka/config.toml:
//
//	[tools]
//	op_path = "/opt/homebrew/bin/op"
//	fly_path = "flyctl"
//	editor = "code --wait"
//
//	[defaults]
//	env_file = ".env.local"
//
// Every key is optional. Missing keys fall back to the external binaries on
// PATH, to $EDITOR, and to .env respectively. The file itself is optional;
// most users never create one.
package configs

package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultEnvFileName is used when neither the config nor the note names a file.
const DefaultEnvFileName = ".env"

type UserConfig struct {
	Tools    Tools    `toml:"tools"`
	Defaults Defaults `toml:"defaults"`
}

type Tools struct {
	// OpPath overrides the 1Password CLI binary. Empty means "op" from PATH.
	OpPath string `toml:"op_path"`

	// FlyPath overrides the Fly.io CLI binary. Empty means "fly" from PATH.
	FlyPath string `toml:"fly_path"`

	// Editor is the command used by `manuka fly edit`. Empty falls back to
	// $EDITOR, then vi.
	Editor string `toml:"editor"`
}

type Defaults struct {
	// EnvFile is the fallback env file name when the note has no file_name field.
	EnvFile string `toml:"env_file"`
}

// LoadUserConfig loads the user configuration from the config file.
// A missing file is not an error; defaults apply.
func LoadUserConfig() (*UserConfig, error) {
	configPath := filepath.Join(UserManukaSettings.UserConfigsPath, "config.toml")

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := filepath.Join(UserManukaSettings.UserConfigsPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// OpBinary returns the 1Password CLI binary to invoke.
func (c *UserConfig) OpBinary() string {
	if c != nil && c.Tools.OpPath != "" {
		return c.Tools.OpPath
	}
	return "op"
}

// FlyBinary returns the Fly.io CLI binary to invoke.
func (c *UserConfig) FlyBinary() string {
	if c != nil && c.Tools.FlyPath != "" {
		return c.Tools.FlyPath
	}
	return "fly"
}

// Editor returns the editor command for interactive edits.
// Order: config file, $EDITOR, then vi.
func (c *UserConfig) Editor() string {
	if c != nil && c.Tools.Editor != "" {
		return c.Tools.Editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

// EnvFile returns the fallback env file name.
func (c *UserConfig) EnvFile() string {
	if c != nil && c.Defaults.EnvFile != "" {
		return c.Defaults.EnvFile
	}
	return DefaultEnvFileName
}

package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/manuka/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	UserStatePath   string
	Username        string
}

var UserManukaSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	username, err := utils.GetUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	// This is independent of what repo you are in, so it is ok to init here
	UserManukaSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "manuka"),
		UserStatePath:   filepath.Join(stateDir, "manuka"),
		Username:        username,
	}
}

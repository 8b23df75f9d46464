// Package config loads the optional footwm TOML configuration file.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	homedir "github.com/mitchellh/go-homedir"
)

// Config is the root of the footwm configuration file.
type Config struct {
	// Keybindings maps a binding spec ("Control-Shift-Return") to an
	// action name. The keyboard map grabs each binding; on a KeyPress the
	// reconciler looks up and logs the action name and runs nothing.
	Keybindings map[string]string

	// Desktops are pre-created, in order, after Unassigned at startup.
	Desktops []string

	// Sizers maps a WM_CLASS res_class to a sizer policy name
	// ("honourable-max", "brutal-max"). Classes absent from this table
	// use honourable-max.
	Sizers map[string]string
}

// Load reads the config file, writing a commented default one on first run.
// A missing or unreadable file is not an error: Load returns zero-value
// defaults so the WM can still start.
func Load() Config {
	writeDefaultConfig()
	var cfg Config
	// Decode errors (missing file, bad TOML) are non-fatal: the WM runs
	// with an empty config rather than refusing to start.
	toml.DecodeFile(configFilePath(), &cfg)
	return cfg
}

func writeDefaultConfig() {
	if _, err := os.Stat(configFolderPath()); os.IsNotExist(err) {
		os.MkdirAll(configFolderPath(), 0700)
	}
	if _, err := os.Stat(configFilePath()); os.IsNotExist(err) {
		os.WriteFile(configFilePath(), []byte(defaultConfig), 0644)
	}
}

func configFolderPath() string {
	var folder string
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			folder = filepath.Join(xdg, "footwm")
		} else {
			folder, _ = homedir.Expand("~/.config/footwm/")
		}
	default:
		folder, _ = homedir.Expand("~/.footwm/")
	}
	return folder
}

func configFilePath() string {
	return filepath.Join(configFolderPath(), "footwm.toml")
}

var defaultConfig = `# footwm configuration.

# Desktops to create at startup, after the always-present Unassigned
# desktop. The first entry becomes current.
desktops = []

[sizers]
# Per WM_CLASS res_class sizer override. Recognized values:
# "honourable-max" (default), "brutal-max".
# Example:
# Gimp = "brutal-max"

[keybindings]
# binding = "action"
# Example:
# "Control-Shift-Return" = "desktop-select-next"
`

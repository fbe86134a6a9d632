package process

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CommandConfig maps a callback name to an external command.
type CommandConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of callbacks.yaml.
type ConfigFile struct {
	Callbacks []CommandConfig `yaml:"callbacks" json:"callbacks"`
}

// LoadCallbacks reads a configuration file (YAML or JSON) and returns the commands by callback name.
// A missing file means no commands are configured.
func LoadCallbacks(path string) (map[string]CommandConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]CommandConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read callbacks config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	commands := make(map[string]CommandConfig, len(cfg.Callbacks))
	for _, c := range cfg.Callbacks {
		if c.Name == "" {
			continue
		}
		if c.Command == "" {
			return nil, fmt.Errorf("callback %s: missing command", c.Name)
		}
		commands[c.Name] = c
	}
	return commands, nil
}

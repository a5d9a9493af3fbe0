package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerUrl string   `yaml:"serverUrl"`
	SocketUrl string   `yaml:"socketUrl"`
	Token     string   `yaml:"token"`
	Posts     []string `yaml:"posts"`
}

// LoadConfig reads the watcher config file and applies env overrides
// (FORUM_SERVER_URL, FORUM_SOCKET_URL, FORUM_TOKEN). The file may be absent
// if everything comes from the environment.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	raw, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if val, ok := os.LookupEnv("FORUM_SERVER_URL"); ok {
		config.ServerUrl = val
	}
	if val, ok := os.LookupEnv("FORUM_SOCKET_URL"); ok {
		config.SocketUrl = val
	}
	if val, ok := os.LookupEnv("FORUM_TOKEN"); ok {
		config.Token = val
	}

	if len(config.ServerUrl) == 0 {
		return nil, fmt.Errorf("serverUrl is not configured")
	}
	if len(config.SocketUrl) == 0 {
		return nil, fmt.Errorf("socketUrl is not configured")
	}
	return config, nil
}

package main

import (
	"fmt"
	"os"

	responsetransformer "github.com/always-cache/cache-directive/pkg/response-transformer"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CACHE_DIRECTIVE_"

type Config struct {
	Server ServerConfig              `yaml:"server"`
	Rules  responsetransformer.Rules `yaml:"rules"`
}

type ServerConfig struct {
	Port int `yaml:"port" env:"PORT"`
	// Origin to proxy to. The demo routes are served if empty.
	Origin string `yaml:"origin" env:"ORIGIN"`
	// Hostname to use for the origin, if it differs from the origin URL.
	OriginHost string `yaml:"originHost" env:"ORIGIN_HOST"`
	LogFile    string `yaml:"logFile" env:"LOG_FILE"`
}

// getConfig reads the config file, if any, and applies environment overrides.
// Rules are compiled, so invalid directives are reported here.
func getConfig(filename string) (Config, error) {
	config := Config{
		Server: ServerConfig{Port: 8080},
	}
	if filename != "" {
		configBytes, err := os.ReadFile(filename)
		if err != nil {
			return config, err
		}
		if err := yaml.Unmarshal(configBytes, &config); err != nil {
			return config, fmt.Errorf("parsing %s: %w", filename, err)
		}
	}
	if err := env.ParseWithOptions(&config.Server, env.Options{Prefix: envPrefix}); err != nil {
		return config, err
	}
	if err := config.Rules.Compile(); err != nil {
		return config, err
	}
	return config, nil
}

// Package config holds the viewer settings loaded from a yaml file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr   string   `yaml:"listen_addr"`
	WebDir       string   `yaml:"web_dir"`
	Models       []string `yaml:"models"`
	DumpDrawList bool     `yaml:"dump_draw_list"`
}

func Default() Config {
	return Config{
		ListenAddr: ":8000",
		WebDir:     "web",
	}
}

// Load reads a yaml config on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "Failed to read config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "Failed to parse config %q", path)
	}
	return cfg, nil
}

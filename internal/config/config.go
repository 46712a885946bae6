// Where: internal/config/config.go
// What: Deployment configuration loading and defaults.
// Why: Keep container names, ports, and paths overridable from one file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up under the project directory.
const DefaultFileName = "waspdock.yml"

// Config describes a single-host deployment of one Wasp application.
type Config struct {
	App     string        `yaml:"app"`
	Network string        `yaml:"network"`
	Server  ServerConfig  `yaml:"server"`
	Client  ClientConfig  `yaml:"client"`
	Uploads UploadsConfig `yaml:"uploads"`
	Backup  BackupConfig  `yaml:"backup"`
}

// ServerConfig configures the API server container.
type ServerConfig struct {
	Container string `yaml:"container"`
	Image     string `yaml:"image"`
	Port      int    `yaml:"port"`
	EnvFile   string `yaml:"env_file"`
}

// ClientConfig configures the static client container.
type ClientConfig struct {
	Container  string `yaml:"container"`
	Image      string `yaml:"image"`
	Port       int    `yaml:"port"`
	EnvFile    string `yaml:"env_file"`
	StaticDir  string `yaml:"static_dir"`
	Dockerfile string `yaml:"dockerfile"`
}

// UploadsConfig configures the host-persisted uploads directory.
type UploadsConfig struct {
	HostDir      string `yaml:"host_dir"`
	ContainerDir string `yaml:"container_dir"`
}

// BackupConfig configures the optional S3 uploads backup.
type BackupConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// Default returns the stock configuration.
func Default() Config {
	return DefaultFor("wasp-app")
}

// DefaultFor derives the stock configuration from an app name.
func DefaultFor(app string) Config {
	cfg := Config{App: app}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the config at path. A missing file yields the
// defaults; an invalid file is an error.
func Load(path string) (Config, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := validate(payload); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromProject loads the config file from a project directory.
func LoadFromProject(projectDir string) (Config, error) {
	return Load(filepath.Join(projectDir, DefaultFileName))
}

func (c *Config) applyDefaults() {
	if c.App == "" {
		c.App = "wasp-app"
	}
	if c.Network == "" {
		c.Network = c.App + "-net"
	}
	if c.Server.Container == "" {
		c.Server.Container = c.App + "-server"
	}
	if c.Server.Image == "" {
		c.Server.Image = c.App + "-server:latest"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Server.EnvFile == "" {
		c.Server.EnvFile = ".env.server"
	}
	if c.Client.Container == "" {
		c.Client.Container = c.App + "-client"
	}
	if c.Client.Image == "" {
		c.Client.Image = c.App + "-client:latest"
	}
	if c.Client.Port == 0 {
		c.Client.Port = 3000
	}
	if c.Client.EnvFile == "" {
		c.Client.EnvFile = ".env.client"
	}
	if c.Client.StaticDir == "" {
		c.Client.StaticDir = "web-build"
	}
	if c.Client.Dockerfile == "" {
		c.Client.Dockerfile = "client.Dockerfile"
	}
	if c.Uploads.HostDir == "" {
		c.Uploads.HostDir = filepath.Join("/var/lib", c.App, "uploads")
	}
	if c.Uploads.ContainerDir == "" {
		c.Uploads.ContainerDir = "/app/uploads"
	}
	if c.Backup.Prefix == "" {
		c.Backup.Prefix = "uploads"
	}
}

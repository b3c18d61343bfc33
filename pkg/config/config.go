package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config carries everything needed to reach a MarkLogic server: the
// host, its three well-known ports and the digest credential pair.
// Values are layered lowest to highest: built-in defaults, the saved
// default profile in ~/.marklogic.ini, then MMA_* environment
// variables. Command line flags are applied on top by the CLI.
type Config struct {
	Host           string `ini:"host"`
	Port           int    `ini:"port"`
	AdminPort      int    `ini:"admin-port" envconfig:"admin_port"`
	ManagementPort int    `ini:"management-port" envconfig:"management_port"`
	Protocol       string `ini:"protocol"`
	Username       string `ini:"username"`
	Password       string `ini:"password"`
	CACertFile     string `ini:"ca-cert-file" envconfig:"ca_cert_file"`
}

// DefaultConfig returns the configuration for a stock single-host
// installation.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8000,
		AdminPort:      8001,
		ManagementPort: 8002,
		Protocol:       "http",
		Username:       "admin",
		Password:       "admin",
	}
}

func NewConfig(prefix string, profiles *Profiles) (error, Config) {
	cfg := DefaultConfig()
	if profiles != nil {
		if err := profiles.Apply(DefaultProfile, &cfg); err != nil {
			return err, Config{}
		}
	}
	err := envconfig.Process(prefix, &cfg)
	if err != nil {
		return err, Config{}
	}
	return nil, cfg
}

// DefaultPath locates ~/.marklogic.ini.
func DefaultPath() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", errors.New("configuration problem, no HOME in environment?")
	}
	return filepath.Join(home, ".marklogic.ini"), nil
}

package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/marklogic-community/mlmanager/pkg/config"
	"github.com/marklogic-community/mlmanager/pkg/connection"
)

// connected wraps a command action with connection setup: the resolved
// configuration overlaid with the --hostname and --credentials flags,
// a logger at the level --debug asks for, and the instrumenting
// middleware.
func (m *MMA) connected(fn func(ctx context.Context, c *cli.Context, conn *connection.Connection) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		cfg, err := m.flagConfig(c)
		if err != nil {
			return err
		}
		conn, err := connection.New(cfg, m.runLogger(c.Bool("debug")), m.instrument)
		if err != nil {
			return err
		}
		return fn(context.Background(), c, conn)
	}
}

func (m *MMA) flagConfig(c *cli.Context) (config.Config, error) {
	cfg := m.cfg
	if hostname := c.String("hostname"); hostname != "" {
		if err := applyHostname(&cfg, hostname); err != nil {
			return cfg, err
		}
	}
	if credentials := c.String("credentials"); credentials != "" {
		username, password, err := splitCredentials(credentials)
		if err != nil {
			return cfg, err
		}
		cfg.Username = username
		cfg.Password = password
	}
	return cfg, nil
}

// applyHostname takes a host or host:port flag value. An explicit port
// addresses both the management and admin APIs, which is how test
// servers carrying both on one listener are reached.
func applyHostname(cfg *config.Config, hostname string) error {
	parts := strings.SplitN(hostname, ":", 2)
	cfg.Host = parts[0]
	if len(parts) == 2 {
		port, err := strconv.Atoi(parts[1])
		if err != nil {
			return errors.Errorf("invalid port in --hostname: %s", hostname)
		}
		cfg.ManagementPort = port
		cfg.AdminPort = port
	}
	return nil
}

// splitCredentials splits a user:password pair on the first colon, so
// passwords may contain colons.
func splitCredentials(credentials string) (string, string, error) {
	parts := strings.SplitN(credentials, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", errors.Errorf("--credentials value must be 'user:password': %s", credentials)
	}
	return parts[0], parts[1], nil
}

// runLogger returns the session logger for one command. Request logs
// sit at debug level, so they only appear with --debug.
func (m *MMA) runLogger(debug bool) log.Logger {
	if debug {
		return level.NewFilter(m.logger, level.AllowDebug())
	}
	return level.NewFilter(m.logger, level.AllowInfo())
}

// splitArgs separates a command's trailing arguments into the one
// positional name and the key=value parameters.
func splitArgs(c *cli.Context) (string, map[string]string, error) {
	name := ""
	params := map[string]string{}
	for _, arg := range c.Args() {
		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			params[parts[0]] = parts[1]
			continue
		}
		if name != "" {
			return "", nil, errors.Errorf("unexpected argument '%s'", arg)
		}
		name = arg
	}
	return name, params, nil
}

package cli

import (
	"fmt"
	"io"
	"os"

	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/log"
	"github.com/pkg/errors"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"

	"github.com/marklogic-community/mlmanager/pkg/config"
	"github.com/marklogic-community/mlmanager/pkg/connection"
)

// MMA is the command-line front end. It owns the resolved
// configuration, the profile store, the logger and the metrics
// registry, and dispatches normalized command lines to the managers.
type MMA struct {
	cfg      config.Config
	profiles *config.Profiles
	logger   log.Logger
	out      io.Writer
	errOut   io.Writer

	instrument connection.Middleware
	registry   *stdprometheus.Registry
}

// New builds the front end. Request metrics land in a private registry
// so several instances can coexist in one process.
func New(cfg config.Config, profiles *config.Profiles, logger log.Logger) *MMA {
	fieldKeys := []string{"method", "error"}
	requestCount := stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
		Namespace: "mma",
		Subsystem: "management_api",
		Name:      "request_count",
		Help:      "Number of requests made against the Management API.",
	}, fieldKeys)
	requestLatency := stdprometheus.NewSummaryVec(stdprometheus.SummaryOpts{
		Namespace: "mma",
		Subsystem: "management_api",
		Name:      "request_latency_microseconds",
		Help:      "Total duration of Management API requests in microseconds.",
	}, fieldKeys)
	registry := stdprometheus.NewRegistry()
	registry.MustRegister(requestCount, requestLatency)

	return &MMA{
		cfg:      cfg,
		profiles: profiles,
		logger:   logger,
		out:      os.Stdout,
		errOut:   os.Stderr,
		instrument: connection.NewInstrumentingMiddleware(
			kitprometheus.NewCounter(requestCount),
			kitprometheus.NewSummary(requestLatency),
		),
		registry: registry,
	}
}

// Main runs one command line and returns the process exit code.
func (m *MMA) Main(argv []string) int {
	if len(argv) == 0 || argv[0] == "-h" || argv[0] == "--help" {
		m.usage()
		return 0
	}
	if err := m.Run(argv); err != nil {
		fmt.Fprintln(m.errOut, err)
		return 1
	}
	return 0
}

// Run normalizes and dispatches one command line.
func (m *MMA) Run(argv []string) error {
	inv, err := Normalize(argv)
	if err != nil {
		return err
	}
	app := m.newApp()
	if err := check(app, inv); err != nil {
		return err
	}
	return app.Run(append([]string{app.Name}, inv.Argv()...))
}

// check validates the command and artifact words before dispatch, so
// mistakes report as one line instead of a parser usage dump.
func check(app *cli.App, inv Invocation) error {
	cmd := findCommand(app.Commands, inv.Command)
	if cmd == nil {
		return errors.Errorf("The command '%s' is unrecognized", inv.Command)
	}
	if inv.Artifact == "" {
		if cmd.Action == nil {
			return errors.Errorf("The command '%s' needs an artifact", inv.Command)
		}
		return nil
	}
	if findCommand(cmd.Subcommands, inv.Artifact) == nil {
		return errors.Errorf("The command '%s' doesn't take '%s' artifacts", inv.Command, inv.Artifact)
	}
	return nil
}

func findCommand(commands []cli.Command, name string) *cli.Command {
	for i := range commands {
		if commands[i].Name == name {
			return &commands[i]
		}
	}
	return nil
}

func (m *MMA) newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mma"
	app.Usage = "MarkLogic Management API"
	app.HideVersion = true
	app.Writer = m.out
	app.ErrWriter = m.errOut
	app.Commands = m.commands()
	return app
}

func (m *MMA) usage() {
	fmt.Fprintln(m.out, "MarkLogic Management API")
	fmt.Fprintln(m.out, "Command line:")
	fmt.Fprintln(m.out, "  command [artifact] [--opt1 [--opt2 ...]], [prop1=value [prop2=value...]]")
	fmt.Fprintln(m.out, "Where: command [artifact] is:")

	app := m.newApp()
	for _, cmd := range app.Commands {
		if cmd.Action != nil {
			fmt.Fprintf(m.out, "  %-15s  %s\n", cmd.Name, cmd.Usage)
		}
	}
	for _, cmd := range app.Commands {
		for _, sub := range cmd.Subcommands {
			fmt.Fprintf(m.out, "  %-15s  %s\n", cmd.Name+" "+sub.Name, sub.Usage)
		}
	}
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "For more detail, try 'command [artifact] --help'")
}

package cli

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"
)

func (m *MMA) runCommand() cli.Command {
	return cli.Command{
		Name:  "run",
		Usage: "Run a script of mma command lines",
		Flags: []cli.Flag{scriptFlag, metricsFlag},
		Action: func(c *cli.Context) error {
			scriptfn := c.String("script")
			if scriptfn == "" {
				return errors.Errorf("run requires --script")
			}
			if addr := c.String("metrics"); addr != "" {
				srv := m.metricsServer(addr)
				go srv.ListenAndServe()
				defer srv.Close()
			}
			return m.ProcessScript(scriptfn)
		},
	}
}

// metricsServer exposes the request metrics gathered while a script
// runs.
func (m *MMA) metricsServer(addr string) *http.Server {
	handler := http.NewServeMux()
	handler.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return &http.Server{Addr: addr, Handler: handler}
}

// ProcessScript runs a file of command lines, one invocation per line.
// A trailing backslash continues a command on the next line; blank
// lines are skipped. The first failing command stops the script.
func (m *MMA) ProcessScript(scriptfn string) error {
	fmt.Fprintln(m.out, "Running", scriptfn)
	script, err := os.Open(scriptfn)
	if err != nil {
		return err
	}
	defer script.Close()

	command := ""
	scanner := bufio.NewScanner(script)
	for scanner.Scan() {
		command = command + strings.TrimSpace(scanner.Text())
		if strings.HasSuffix(command, "\\") {
			command = command[:len(command)-1]
			continue
		}
		command = strings.TrimSpace(command)
		if command == "" {
			continue
		}
		argv, err := shlex.Split(command)
		if err != nil {
			return errors.Wrapf(err, "parsing %q", command)
		}
		if err := m.Run(argv); err != nil {
			return err
		}
		command = ""
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if command != "" {
		return errors.Errorf("premature end of file on %s", scriptfn)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/marklogic-community/mlmanager/pkg/config"
)

func (m *MMA) saveCommand() cli.Command {
	return cli.Command{
		Name:  "save",
		Usage: "Save the connection settings as a profile",
		Flags: m.connectionFlags(profileNameFlag),
		Action: func(c *cli.Context) error {
			cfg, err := m.flagConfig(c)
			if err != nil {
				return err
			}
			name := c.String("name")
			if err := m.profiles.Save(name, cfg); err != nil {
				return err
			}
			fmt.Fprintf(m.out, "Saved profile '%s' to %s\n", name, m.profiles.Path())
			return nil
		},
	}
}

func (m *MMA) switchCommand() cli.Command {
	return cli.Command{
		Name:  "switch",
		Usage: "Make a saved profile the default connection",
		Flags: []cli.Flag{profileNameFlag},
		Action: func(c *cli.Context) error {
			name := c.String("name")
			if err := m.profiles.Switch(name); err != nil {
				return err
			}
			// Re-resolve the configuration so later commands in the
			// same run, scripts in particular, pick the profile up.
			err, cfg := config.NewConfig("mma", m.profiles)
			if err != nil {
				return err
			}
			m.cfg = cfg
			fmt.Fprintf(m.out, "Switched to profile '%s'\n", name)
			return nil
		},
	}
}

func (m *MMA) clearProfiles(c *cli.Context) error {
	if c.Bool("all") {
		if err := m.profiles.ClearAll(); err != nil {
			return err
		}
		fmt.Fprintln(m.out, "Cleared all profiles")
		return nil
	}
	name := c.String("name")
	if err := m.profiles.Clear(name); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Cleared profile '%s'\n", name)
	return nil
}

func (m *MMA) listProfiles(c *cli.Context) error {
	for _, name := range m.profiles.Names() {
		fmt.Fprintln(m.out, name)
	}
	return nil
}

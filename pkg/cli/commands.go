package cli

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/marklogic-community/mlmanager/pkg/cli/manager"
	"github.com/marklogic-community/mlmanager/pkg/connection"
)

func (m *MMA) commands() []cli.Command {
	return []cli.Command{
		m.createCommand(),
		m.getCommand(),
		m.modifyCommand(),
		m.deleteCommand(),
		m.listCommand(),
		m.generateCommand(),
		m.clearCommand(),
		m.statusCommand(),
		m.initCommand(),
		m.startCommand(),
		m.stopCommand(),
		m.restartCommand(),
		m.logCommand(),
		m.saveCommand(),
		m.switchCommand(),
		m.runCommand(),
		m.apidocCommand(),
	}
}

// named wraps a connected action whose arguments are one name plus
// key=value parameters.
func (m *MMA) named(required bool, fn func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error) func(*cli.Context) error {
	return m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
		name, params, err := splitArgs(c)
		if err != nil {
			return err
		}
		if required && name == "" {
			return errors.Errorf("the command needs a name argument")
		}
		return fn(ctx, conn, name, params, c)
	})
}

func (m *MMA) createCommand() cli.Command {
	return cli.Command{
		Name: "create",
		Subcommands: []cli.Command{
			{
				Name:  "template",
				Usage: "Create a certificate template",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewTemplateManager(conn, m.out).Create(ctx, name, params)
				}),
			},
			{
				Name:  "database",
				Usage: "Create a database",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewDatabaseManager(conn, m.out).Create(ctx, name, params)
				}),
			},
			{
				Name:  "forest",
				Usage: "Create a forest",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewForestManager(conn, m.out).Create(ctx, name, params)
				}),
			},
			{
				Name:  "server",
				Usage: "Create an app server",
				Flags: m.connectionFlags(typeFlag, groupFlag, portFlag, rootFlag),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					if c.Int("port") != 0 {
						params["port"] = strconv.Itoa(c.Int("port"))
					}
					if c.String("root") != "" {
						params["root"] = c.String("root")
					}
					return manager.NewServerManager(conn, m.out).Create(ctx, name, c.String("group"), c.String("type"), params)
				}),
			},
			{
				Name:  "user",
				Usage: "Create a user",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewUserManager(conn, m.out).Create(ctx, name, params)
				}),
			},
			{
				Name:  "role",
				Usage: "Create a role",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewRoleManager(conn, m.out).Create(ctx, name, params)
				}),
			},
			{
				Name:  "group",
				Usage: "Create a group",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewGroupManager(conn, m.out).Create(ctx, name, params)
				}),
			},
		},
	}
}

func (m *MMA) getCommand() cli.Command {
	return cli.Command{
		Name: "get",
		Subcommands: []cli.Command{
			{
				Name:  "template",
				Usage: "Show a certificate template",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewTemplateManager(conn, m.out).Get(ctx, name)
				}),
			},
			{
				Name:  "database",
				Usage: "Show a database",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewDatabaseManager(conn, m.out).Get(ctx, name)
				}),
			},
			{
				Name:  "forest",
				Usage: "Show a forest",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewForestManager(conn, m.out).Get(ctx, name)
				}),
			},
			{
				Name:  "server",
				Usage: "Show an app server",
				Flags: m.connectionFlags(typeFlag, groupFlag),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewServerManager(conn, m.out).Get(ctx, name, c.String("group"))
				}),
			},
			{
				Name:  "host",
				Usage: "Show a host",
				Flags: m.connectionFlags(),
				Action: m.named(false, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewHostManager(conn, m.out).Get(ctx, name)
				}),
			},
			{
				Name:  "user",
				Usage: "Show a user",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewUserManager(conn, m.out).Get(ctx, name)
				}),
			},
			{
				Name:  "role",
				Usage: "Show a role",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewRoleManager(conn, m.out).Get(ctx, name)
				}),
			},
			{
				Name:  "group",
				Usage: "Show a group",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewGroupManager(conn, m.out).Get(ctx, name)
				}),
			},
			{
				Name:  "cluster",
				Usage: "Show the cluster properties",
				Flags: m.connectionFlags(),
				Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
					return manager.NewClusterManager(conn, m.out).Properties(ctx)
				}),
			},
			{
				Name:  "certificates",
				Usage: "Show certificates minted from a template",
				Flags: m.connectionFlags(commonNameFlag, dnsNameFlag, ipAddrFlag),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewTemplateManager(conn, m.out).Certificates(ctx, name,
						c.String("common-name"), c.String("dns-name"), c.String("ip-addr"))
				}),
			},
		},
	}
}

func (m *MMA) modifyCommand() cli.Command {
	return cli.Command{
		Name: "modify",
		Subcommands: []cli.Command{
			{
				Name:  "template",
				Usage: "Modify a certificate template",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewTemplateManager(conn, m.out).Modify(ctx, name, params)
				}),
			},
			{
				Name:  "database",
				Usage: "Modify a database",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewDatabaseManager(conn, m.out).Modify(ctx, name, params)
				}),
			},
			{
				Name:  "forest",
				Usage: "Modify a forest",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewForestManager(conn, m.out).Modify(ctx, name, params)
				}),
			},
			{
				Name:  "server",
				Usage: "Modify an app server",
				Flags: m.connectionFlags(typeFlag, groupFlag),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewServerManager(conn, m.out).Modify(ctx, name, c.String("group"), params)
				}),
			},
			{
				Name:  "host",
				Usage: "Modify a host",
				Flags: m.connectionFlags(),
				Action: m.named(false, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewHostManager(conn, m.out).Modify(ctx, name, params)
				}),
			},
			{
				Name:  "user",
				Usage: "Modify a user",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewUserManager(conn, m.out).Modify(ctx, name, params)
				}),
			},
			{
				Name:  "role",
				Usage: "Modify a role",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewRoleManager(conn, m.out).Modify(ctx, name, params)
				}),
			},
			{
				Name:  "group",
				Usage: "Modify a group",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewGroupManager(conn, m.out).Modify(ctx, name, params)
				}),
			},
			{
				Name:  "cluster",
				Usage: "Modify the cluster properties",
				Flags: m.connectionFlags(),
				Action: m.named(false, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewClusterManager(conn, m.out).Modify(ctx, params)
				}),
			},
		},
	}
}

func (m *MMA) deleteCommand() cli.Command {
	return cli.Command{
		Name: "delete",
		Subcommands: []cli.Command{
			{
				Name:  "template",
				Usage: "Delete a certificate template",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewTemplateManager(conn, m.out).Delete(ctx, name)
				}),
			},
			{
				Name:  "database",
				Usage: "Delete a database",
				Flags: m.connectionFlags(forestsFlag),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewDatabaseManager(conn, m.out).Delete(ctx, name, c.Bool("forests"))
				}),
			},
			{
				Name:  "forest",
				Usage: "Delete a forest",
				Flags: m.connectionFlags(levelFlag),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewForestManager(conn, m.out).Delete(ctx, name, c.String("level"))
				}),
			},
			{
				Name:  "server",
				Usage: "Delete an app server",
				Flags: m.connectionFlags(typeFlag, groupFlag),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewServerManager(conn, m.out).Delete(ctx, name, c.String("group"))
				}),
			},
			{
				Name:  "user",
				Usage: "Delete a user",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewUserManager(conn, m.out).Delete(ctx, name)
				}),
			},
			{
				Name:  "role",
				Usage: "Delete a role",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewRoleManager(conn, m.out).Delete(ctx, name)
				}),
			},
			{
				Name:  "group",
				Usage: "Delete a group",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewGroupManager(conn, m.out).Delete(ctx, name)
				}),
			},
		},
	}
}

func (m *MMA) listCommand() cli.Command {
	return cli.Command{
		Name: "list",
		Subcommands: []cli.Command{
			{
				Name:  "templates",
				Usage: "List certificate templates",
				Flags: m.connectionFlags(namesFlag),
				Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
					return manager.NewTemplateManager(conn, m.out).List(ctx, c.Bool("names"))
				}),
			},
			{
				Name:  "databases",
				Usage: "List databases",
				Flags: m.connectionFlags(namesFlag),
				Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
					return manager.NewDatabaseManager(conn, m.out).List(ctx, c.Bool("names"))
				}),
			},
			{
				Name:  "forests",
				Usage: "List forests",
				Flags: m.connectionFlags(namesFlag),
				Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
					return manager.NewForestManager(conn, m.out).List(ctx, c.Bool("names"))
				}),
			},
			{
				Name:  "servers",
				Usage: "List app servers",
				Flags: m.connectionFlags(typeFlag, namesFlag),
				Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
					return manager.NewServerManager(conn, m.out).List(ctx, c.String("type"), c.Bool("names"))
				}),
			},
			{
				Name:  "hosts",
				Usage: "List hosts",
				Flags: m.connectionFlags(namesFlag),
				Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
					return manager.NewHostManager(conn, m.out).List(ctx, c.Bool("names"))
				}),
			},
			{
				Name:  "users",
				Usage: "List users",
				Flags: m.connectionFlags(namesFlag),
				Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
					return manager.NewUserManager(conn, m.out).List(ctx, c.Bool("names"))
				}),
			},
			{
				Name:  "roles",
				Usage: "List roles",
				Flags: m.connectionFlags(namesFlag),
				Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
					return manager.NewRoleManager(conn, m.out).List(ctx, c.Bool("names"))
				}),
			},
			{
				Name:  "groups",
				Usage: "List groups",
				Flags: m.connectionFlags(namesFlag),
				Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
					return manager.NewGroupManager(conn, m.out).List(ctx, c.Bool("names"))
				}),
			},
			{
				Name:   "profiles",
				Usage:  "List saved connection profiles",
				Action: m.listProfiles,
			},
		},
	}
}

func (m *MMA) generateCommand() cli.Command {
	return cli.Command{
		Name: "generate",
		Subcommands: []cli.Command{
			{
				Name:  "ca",
				Usage: "Generate a certificate authority for a template",
				Flags: m.connectionFlags(validForFlag),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewTemplateManager(conn, m.out).GenerateCA(ctx, name, c.Int("valid-for"))
				}),
			},
			{
				Name:  "certificate",
				Usage: "Generate a temporary certificate from a template",
				Flags: m.connectionFlags(validForFlag, commonNameFlag, dnsNameFlag, ipAddrFlag, ifNecessaryFlag),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					if c.String("common-name") == "" {
						return errors.Errorf("generate certificate requires --common-name")
					}
					return manager.NewTemplateManager(conn, m.out).GenerateCertificate(ctx, name,
						c.Int("valid-for"), c.String("common-name"), c.String("dns-name"),
						c.String("ip-addr"), c.Bool("if-necessary"))
				}),
			},
		},
	}
}

func (m *MMA) clearCommand() cli.Command {
	return cli.Command{
		Name:   "clear",
		Usage:  "Clear saved connection profiles",
		Flags:  []cli.Flag{profileNameFlag, allFlag},
		Action: m.clearProfiles,
		Subcommands: []cli.Command{
			{
				Name:  "database",
				Usage: "Delete every document in a database",
				Flags: m.connectionFlags(),
				Action: m.named(true, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewDatabaseManager(conn, m.out).Clear(ctx, name)
				}),
			},
		},
	}
}

func (m *MMA) statusCommand() cli.Command {
	return cli.Command{
		Name:  "status",
		Usage: "Report whether the server is up",
		Flags: m.connectionFlags(),
		Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
			return manager.NewClusterManager(conn, m.out).Status(ctx)
		}),
	}
}

func (m *MMA) initCommand() cli.Command {
	return cli.Command{
		Name:  "init",
		Usage: "Initialize a fresh MarkLogic instance",
		Flags: m.connectionFlags(licenseKeyFlag, licenseeFlag, adminUsernameFlag, adminPasswordFlag, realmFlag),
		Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
			return manager.NewClusterManager(conn, m.out).Init(ctx,
				c.String("license-key"), c.String("licensee"),
				c.String("admin-username"), c.String("admin-password"), c.String("realm"))
		}),
	}
}

func (m *MMA) startCommand() cli.Command {
	return cli.Command{
		Name:  "start",
		Usage: "Unsupported; a stopped host cannot be reached over the API",
		Action: func(c *cli.Context) error {
			return errors.Errorf("a stopped MarkLogic host cannot be started over the Management API; start the MarkLogic service on the host itself")
		},
	}
}

func (m *MMA) stopCommand() cli.Command {
	return cli.Command{
		Name: "stop",
		Subcommands: []cli.Command{
			{
				Name:  "host",
				Usage: "Shut MarkLogic down on a host",
				Flags: m.connectionFlags(),
				Action: m.named(false, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewHostManager(conn, m.out).Shutdown(ctx, name)
				}),
			},
		},
	}
}

func (m *MMA) restartCommand() cli.Command {
	return cli.Command{
		Name:  "restart",
		Usage: "Restart the local cluster",
		Flags: m.connectionFlags(),
		Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
			return manager.NewClusterManager(conn, m.out).Restart(ctx)
		}),
		Subcommands: []cli.Command{
			{
				Name:  "host",
				Usage: "Restart MarkLogic on a host",
				Flags: m.connectionFlags(),
				Action: m.named(false, func(ctx context.Context, conn *connection.Connection, name string, params map[string]string, c *cli.Context) error {
					return manager.NewHostManager(conn, m.out).Restart(ctx, name)
				}),
			},
		},
	}
}

func (m *MMA) logCommand() cli.Command {
	return cli.Command{
		Name:  "log",
		Usage: "Fetch a server log file",
		Flags: m.connectionFlags(filenameFlag, hostFlag),
		Action: m.connected(func(ctx context.Context, c *cli.Context, conn *connection.Connection) error {
			return manager.NewClusterManager(conn, m.out).Log(ctx, c.String("filename"), c.String("host"))
		}),
	}
}

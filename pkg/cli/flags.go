package cli

import (
	"github.com/urfave/cli"
)

// connectionFlags returns the flags every connected command carries,
// defaulted from the resolved configuration, plus any extras.
func (m *MMA) connectionFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		cli.StringFlag{
			Name:  "hostname",
			Value: m.cfg.Host,
			Usage: "MarkLogic host, as host or host:port",
		},
		cli.StringFlag{
			Name:  "credentials",
			Value: m.cfg.Username + ":" + m.cfg.Password,
			Usage: "digest credentials, as user:password",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "log Management API requests",
		},
	}
	return append(flags, extra...)
}

var (
	namesFlag = cli.BoolFlag{
		Name:  "names",
		Usage: "list names alongside ids",
	}
	typeFlag = cli.StringFlag{
		Name:  "type",
		Usage: "app server type: http, odbc, xdbc or webdav",
	}
	groupFlag = cli.StringFlag{
		Name:  "group",
		Value: "Default",
		Usage: "server group",
	}
	portFlag = cli.IntFlag{
		Name:  "port",
		Usage: "app server port",
	}
	rootFlag = cli.StringFlag{
		Name:  "root",
		Usage: "app server modules root",
	}
	forestsFlag = cli.BoolFlag{
		Name:  "forests",
		Usage: "also delete the data of attached forests",
	}
	levelFlag = cli.StringFlag{
		Name:  "level",
		Value: "full",
		Usage: "forest delete level: full or config-only",
	}
	validForFlag = cli.IntFlag{
		Name:  "valid-for",
		Value: 365,
		Usage: "days the certificate stays valid",
	}
	commonNameFlag = cli.StringFlag{
		Name:  "common-name",
		Usage: "certificate common name",
	}
	dnsNameFlag = cli.StringFlag{
		Name:  "dns-name",
		Usage: "certificate DNS name",
	}
	ipAddrFlag = cli.StringFlag{
		Name:  "ip-addr",
		Usage: "certificate IP address",
	}
	ifNecessaryFlag = cli.BoolFlag{
		Name:  "if-necessary",
		Usage: "only generate when no certificate exists yet",
	}
	licenseKeyFlag = cli.StringFlag{
		Name:  "license-key",
		Usage: "license key to install",
	}
	licenseeFlag = cli.StringFlag{
		Name:  "licensee",
		Usage: "licensee name",
	}
	adminUsernameFlag = cli.StringFlag{
		Name:  "admin-username",
		Usage: "admin user to install after init",
	}
	adminPasswordFlag = cli.StringFlag{
		Name:  "admin-password",
		Usage: "password for the admin user",
	}
	realmFlag = cli.StringFlag{
		Name:  "realm",
		Value: "public",
		Usage: "authentication realm for the admin user",
	}
	filenameFlag = cli.StringFlag{
		Name:  "filename",
		Value: "ErrorLog.txt",
		Usage: "log file to fetch",
	}
	hostFlag = cli.StringFlag{
		Name:  "host",
		Usage: "host to fetch the log from",
	}
	profileNameFlag = cli.StringFlag{
		Name:  "name",
		Value: "default",
		Usage: "profile name",
	}
	allFlag = cli.BoolFlag{
		Name:  "all",
		Usage: "apply to every saved profile",
	}
	scriptFlag = cli.StringFlag{
		Name:  "script",
		Usage: "script file of mma command lines",
	}
	metricsFlag = cli.StringFlag{
		Name:  "metrics",
		Usage: "serve Prometheus metrics on this address while the script runs",
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Value: "json",
		Usage: "output format: json or yaml",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "write the document to this file instead of stdout",
	}
	serveFlag = cli.StringFlag{
		Name:  "serve",
		Usage: "serve the document and its UI on this address",
	}
)

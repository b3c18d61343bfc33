package cli

import (
	"strings"

	"github.com/pkg/errors"
)

// The flag and argument order people type rarely matches what a
// command parser wants, so every command line is first normalized into
// an Invocation: command word, artifact word, option tokens, remaining
// positional tokens and key=value parameters, which Argv reassembles in
// the order the dispatcher expects.

var errUsage = errors.New("Usage: mma command [artifact] [--option ...] [key=value ...]")

// Flags that take no value. Every other flag consumes the token that
// follows it.
var booleanFlags = map[string]bool{
	"--debug":        true,
	"--names":        true,
	"--if-necessary": true,
	"--all":          true,
	"--forests":      true,
}

// Commands that work without an artifact word.
var emptyArtifactCommands = map[string]bool{
	"start":   true,
	"status":  true,
	"stop":    true,
	"init":    true,
	"save":    true,
	"switch":  true,
	"clear":   true,
	"log":     true,
	"run":     true,
	"restart": true,
	"apidoc":  true,
}

// App server types accepted as artifact shorthand, so "create http"
// means "create server --type http".
var serverSubtypes = map[string]bool{
	"http":   true,
	"xdbc":   true,
	"odbc":   true,
	"webdav": true,
}

// Invocation is a normalized command line.
type Invocation struct {
	Command    string
	Artifact   string
	Options    []string
	Positional []string
	Params     []string
}

// Argv reassembles the invocation in dispatch order: command, artifact,
// options, positional arguments, parameters.
func (inv Invocation) Argv() []string {
	argv := []string{inv.Command}
	if inv.Artifact != "" {
		argv = append(argv, inv.Artifact)
	}
	argv = append(argv, inv.Options...)
	argv = append(argv, inv.Positional...)
	argv = append(argv, inv.Params...)
	return argv
}

// Normalize sorts raw command-line tokens into an Invocation. Tokens
// containing "=" are parameters unless they are flags, tokens starting
// with "-" are options, and everything else is positional.
func Normalize(argv []string) (Invocation, error) {
	var options, params, positional []string

	optarg := false
	for _, tok := range argv {
		switch {
		case optarg:
			options = append(options, tok)
			optarg = false
		case strings.HasPrefix(tok, "-"):
			options = append(options, tok)
			if !booleanFlags[tok] && !strings.Contains(tok, "=") {
				optarg = true
			}
		case strings.Contains(tok, "="):
			params = append(params, tok)
		default:
			positional = append(positional, tok)
		}
	}

	if len(positional) == 0 {
		return Invocation{}, errUsage
	}
	command := positional[0]

	artifact := ""
	if len(positional) > 1 {
		artifact = positional[1]
	} else if !emptyArtifactCommands[command] {
		return Invocation{}, errUsage
	}

	// "create http NAME" and friends turn into the server artifact
	// with a --type option.
	if serverSubtypes[artifact] {
		subtype := artifact
		if command == "list" {
			artifact = "servers"
		} else {
			artifact = "server"
		}
		positional[1] = artifact
		// Drop a doubled artifact word, as in "create http server NAME".
		if len(positional) > 2 && positional[2] == artifact {
			positional = append(positional[:2], positional[3:]...)
		}
		options = append(options, "--type", subtype)
	}

	// A bare stop means stop this host.
	if command == "stop" && artifact == "" {
		artifact = "host"
	}

	var rest []string
	if len(positional) > 2 {
		rest = positional[2:]
	}

	return Invocation{
		Command:    command,
		Artifact:   artifact,
		Options:    options,
		Positional: rest,
		Params:     params,
	}, nil
}

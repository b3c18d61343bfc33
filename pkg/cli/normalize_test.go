package cli

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		argv []string
		want Invocation
	}{
		{
			"plain command",
			[]string{"status"},
			Invocation{Command: "status"},
		},
		{
			"command with artifact and name",
			[]string{"create", "database", "Documents"},
			Invocation{Command: "create", Artifact: "database", Positional: []string{"Documents"}},
		},
		{
			"options sort before positionals",
			[]string{"create", "forest", "Documents-1", "--host", "ml1.example.com"},
			Invocation{
				Command:    "create",
				Artifact:   "forest",
				Options:    []string{"--host", "ml1.example.com"},
				Positional: []string{"Documents-1"},
			},
		},
		{
			"boolean flag takes no value",
			[]string{"list", "databases", "--names"},
			Invocation{Command: "list", Artifact: "databases", Options: []string{"--names"}},
		},
		{
			"flag with equals sign takes no extra token",
			[]string{"list", "databases", "--format=json"},
			Invocation{Command: "list", Artifact: "databases", Options: []string{"--format=json"}},
		},
		{
			"key=value tokens are parameters",
			[]string{"modify", "database", "Documents", "enabled=false", "language=en"},
			Invocation{
				Command:    "modify",
				Artifact:   "database",
				Positional: []string{"Documents"},
				Params:     []string{"enabled=false", "language=en"},
			},
		},
		{
			"server subtype shorthand",
			[]string{"create", "http", "app"},
			Invocation{
				Command:    "create",
				Artifact:   "server",
				Options:    []string{"--type", "http"},
				Positional: []string{"app"},
			},
		},
		{
			"doubled artifact word is dropped",
			[]string{"create", "http", "server", "app"},
			Invocation{
				Command:    "create",
				Artifact:   "server",
				Options:    []string{"--type", "http"},
				Positional: []string{"app"},
			},
		},
		{
			"list subtype goes plural",
			[]string{"list", "xdbc"},
			Invocation{
				Command:  "list",
				Artifact: "servers",
				Options:  []string{"--type", "xdbc"},
			},
		},
		{
			"bare stop means this host",
			[]string{"stop"},
			Invocation{Command: "stop", Artifact: "host"},
		},
		{
			"flag value that looks like a parameter",
			[]string{"run", "--script", "path=with=equals.mma"},
			Invocation{Command: "run", Options: []string{"--script", "path=with=equals.mma"}},
		},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			got, err := Normalize(tc.argv)
			if err != nil {
				t.Fatalf("Got error %v; want none", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Got result is %+v; want %+v", got, tc.want)
			}
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	testCases := []struct {
		name string
		argv []string
	}{
		{"empty command line", []string{}},
		{"only options", []string{"--debug"}},
		{"command that needs an artifact", []string{"create"}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			_, err := Normalize(tc.argv)
			if err == nil {
				t.Fatalf("Got no error for %v; want the usage error", tc.argv)
			}
			if !strings.HasPrefix(err.Error(), "Usage:") {
				t.Errorf("Got error is %v; want the usage error", err)
			}
		})
	}
}

func TestArgv(t *testing.T) {
	inv := Invocation{
		Command:    "create",
		Artifact:   "server",
		Options:    []string{"--type", "http", "--port", "8010"},
		Positional: []string{"app"},
		Params:     []string{"root=/"},
	}
	want := []string{"create", "server", "--type", "http", "--port", "8010", "app", "root=/"}
	if got := inv.Argv(); !reflect.DeepEqual(got, want) {
		t.Errorf("Got result is %v; want %v", got, want)
	}
}

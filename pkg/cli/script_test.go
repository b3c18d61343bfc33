package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.mma")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal("Could not write the script file")
	}
	return path
}

func TestProcessScript(t *testing.T) {
	m, mock, out, _ := setup(t)
	path := writeScript(t, "create database \\\nScriptDocs\n\nlist databases --names\n")

	if err := m.Run([]string{"run", "--script", path}); err != nil {
		t.Fatalf("Got error %v; want none", err)
	}
	for _, want := range []string{
		"Running " + path,
		"Created database ScriptDocs",
		"|ScriptDocs",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Got output %q; want it to contain %q", out.String(), want)
		}
	}
	if mock.Resource("databases", "ScriptDocs") == nil {
		t.Error("Got no database on the server; want ScriptDocs created")
	}
}

func TestProcessScriptPrematureEOF(t *testing.T) {
	m, _, _, _ := setup(t)
	path := writeScript(t, "create database Dangling \\\n")

	err := m.ProcessScript(path)
	if err == nil {
		t.Fatal("Got no error; want one for the dangling continuation")
	}
	if !strings.Contains(err.Error(), "premature end of file on") {
		t.Errorf("Got error is %q; want the premature end of file report", err)
	}
}

func TestProcessScriptParseError(t *testing.T) {
	m, _, _, _ := setup(t)
	path := writeScript(t, "create database \"unclosed\n")

	err := m.ProcessScript(path)
	if err == nil {
		t.Fatal("Got no error; want one for the unbalanced quote")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("Got error is %q; want a parsing report", err)
	}
}

func TestProcessScriptStopsOnFailure(t *testing.T) {
	m, mock, _, _ := setup(t)
	path := writeScript(t, "get database missing\ncreate database Late\n")

	err := m.ProcessScript(path)
	if err == nil || !strings.Contains(err.Error(), "database missing not found") {
		t.Fatalf("Got error %v; want the not found report", err)
	}
	if mock.Resource("databases", "Late") != nil {
		t.Error("Got a database created after the failing line; want the script stopped")
	}
}

func TestProcessScriptMissingFile(t *testing.T) {
	m, _, _, _ := setup(t)

	if err := m.ProcessScript(filepath.Join(t.TempDir(), "nope.mma")); err == nil {
		t.Fatal("Got no error; want one for the missing script")
	}
}

func TestRunRequiresScript(t *testing.T) {
	m, _, _, _ := setup(t)

	err := m.Run([]string{"run"})
	if err == nil || !strings.Contains(err.Error(), "run requires --script") {
		t.Errorf("Got error %v; want the missing --script report", err)
	}
}

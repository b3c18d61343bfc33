package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marklogic-community/mlmanager/pkg/config"
	"github.com/marklogic-community/mlmanager/pkg/docs"
)

func TestRenderDoc(t *testing.T) {
	doc := docs.NewOpenAPI3(config.DefaultConfig())

	testCases := []struct {
		name   string
		format string
		want   []string
	}{
		{"json output", "json", []string{`"openapi": "3.0`, `"MarkLogic Management API"`}},
		{"yaml output", "yaml", []string{"openapi: 3.0", "title: MarkLogic Management API"}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			rendered, err := renderDoc(doc, tc.format)
			if err != nil {
				t.Fatalf("Got error %v; want none", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(string(rendered), want) {
					t.Errorf("Got rendering %q; want it to contain %q", rendered, want)
				}
			}
		})
	}
}

func TestRenderDocUnknownFormat(t *testing.T) {
	doc := docs.NewOpenAPI3(config.DefaultConfig())

	_, err := renderDoc(doc, "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("Got error %v; want the unknown format report", err)
	}
}

func TestApidocCommand(t *testing.T) {
	m, _, out, _ := setup(t)

	if err := m.Run([]string{"apidoc"}); err != nil {
		t.Fatalf("Got error %v; want none", err)
	}
	if !strings.Contains(out.String(), `"openapi"`) {
		t.Errorf("Got output %q; want an OpenAPI body", out.String())
	}
}

func TestApidocWritesFile(t *testing.T) {
	m, _, _, _ := setup(t)
	path := filepath.Join(t.TempDir(), "openapi.json")

	if err := m.Run([]string{"apidoc", "--out", path}); err != nil {
		t.Fatalf("Got error %v; want none", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("Could not read the rendered document")
	}
	if !strings.Contains(string(data), `"/manage/v2/databases"`) {
		t.Errorf("Got document %q; want the database paths in it", data)
	}
}

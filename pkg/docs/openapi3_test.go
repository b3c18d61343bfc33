package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/marklogic-community/mlmanager/pkg/config"
)

func TestDocumentValidates(t *testing.T) {
	doc := NewOpenAPI3(config.DefaultConfig())

	data, err := json.Marshal(&doc)
	if err != nil {
		t.Fatal("Could not marshal the document")
	}
	parsed, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		t.Fatalf("Got error %v loading the document; want none", err)
	}
	if err := parsed.Validate(context.Background()); err != nil {
		t.Fatalf("Got error %v validating the document; want none", err)
	}
	if parsed.Info.Title != "MarkLogic Management API" {
		t.Errorf("Got title is %s; want MarkLogic Management API", parsed.Info.Title)
	}
}

func TestDocumentPaths(t *testing.T) {
	doc := NewOpenAPI3(config.DefaultConfig())

	testCases := []struct {
		name string
		path string
	}{
		{"cluster view", "/manage/v2"},
		{"cluster properties", "/manage/v2/properties"},
		{"logs", "/manage/v2/logs"},
		{"template collection", "/manage/v2/certificate-templates"},
		{"template operations", "/manage/v2/certificate-templates/{id}"},
		{"template properties", "/manage/v2/certificate-templates/{id}/properties"},
		{"database collection", "/manage/v2/databases"},
		{"forest collection", "/manage/v2/forests"},
		{"server collection", "/manage/v2/servers"},
		{"host collection", "/manage/v2/hosts"},
		{"user collection", "/manage/v2/users"},
		{"role collection", "/manage/v2/roles"},
		{"group collection", "/manage/v2/groups"},
		{"init", "/admin/v1/init"},
		{"instance admin", "/admin/v1/instance-admin"},
		{"timestamp", "/admin/v1/timestamp"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			if doc.Paths[tc.path] == nil {
				t.Errorf("Got no path item for %s; want one", tc.path)
			}
		})
	}
}

func TestDocumentServers(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Host = "ml.example.com"
	doc := NewOpenAPI3(cfg)

	if len(doc.Servers) != 2 {
		t.Fatalf("Got %d servers; want 2", len(doc.Servers))
	}
	if doc.Servers[0].URL != "http://ml.example.com:8002" {
		t.Errorf("Got management URL is %s; want http://ml.example.com:8002", doc.Servers[0].URL)
	}
	if doc.Servers[1].URL != "http://ml.example.com:8001" {
		t.Errorf("Got admin URL is %s; want http://ml.example.com:8001", doc.Servers[1].URL)
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"

	"github.com/marklogic-community/mlmanager/pkg/docs"
)

func (m *MMA) apidocCommand() cli.Command {
	return cli.Command{
		Name:  "apidoc",
		Usage: "Emit the OpenAPI document for the Management API",
		Flags: []cli.Flag{formatFlag, outFlag, serveFlag},
		Action: func(c *cli.Context) error {
			doc := docs.NewOpenAPI3(m.cfg)

			if addr := c.String("serve"); addr != "" {
				return m.serveDoc(addr, doc)
			}

			rendered, err := renderDoc(doc, c.String("format"))
			if err != nil {
				return err
			}
			if out := c.String("out"); out != "" {
				return ioutil.WriteFile(out, rendered, 0644)
			}
			_, err = m.out.Write(rendered)
			return err
		},
	}
}

// renderDoc serializes the document. YAML goes through a JSON round
// trip so the output carries the document's JSON field names.
func renderDoc(doc openapi3.T, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(&doc, "", "  ")
	case "yaml":
		data, err := json.Marshal(&doc)
		if err != nil {
			return nil, err
		}
		var tree map[string]interface{}
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		return yaml.Marshal(tree)
	default:
		return nil, errors.Errorf("unknown format %q, expected json or yaml", format)
	}
}

// serveDoc serves the document and a Swagger UI over it until the
// process is interrupted.
func (m *MMA) serveDoc(addr string, doc openapi3.T) error {
	spec, err := json.Marshal(&doc)
	if err != nil {
		return err
	}
	router := mux.NewRouter()
	router.HandleFunc("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
	router.PathPrefix("/docs").Handler(middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/openapi.json",
		Path:    "docs",
	}, nil))
	fmt.Fprintf(m.out, "Serving API documentation on %s/docs\n", addr)
	return http.ListenAndServe(addr, router)
}

package mocks

import (
	"net"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/marklogic-community/mlmanager/pkg/config"
)

// NewServer starts the mock behind an HTTP test server and returns it
// together with a configuration pointing at the listener. All three
// ports resolve to the one listener, and the server shuts down when the
// test finishes.
func NewServer(t *testing.T, username, password string) (*Management, config.Config) {
	t.Helper()

	m := NewManagement(username, password)
	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)

	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatal("Could not parse the test server address")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatal("Could not parse the test server port")
	}

	cfg := config.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.AdminPort = port
	cfg.ManagementPort = port
	cfg.Username = username
	cfg.Password = password
	return m, cfg
}

package cluster

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/kit/log"

	"github.com/marklogic-community/mlmanager/pkg/config"
	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/mocks"
)

func setup(t *testing.T) (*mocks.Management, config.Config, *connection.Connection) {
	t.Helper()

	mock, cfg := mocks.NewServer(t, "admin", "secret")
	conn, err := connection.New(cfg, log.NewNopLogger())
	if err != nil {
		t.Fatal("Could not build the connection")
	}
	return mock, cfg, conn
}

func TestTimestamp(t *testing.T) {
	_, _, conn := setup(t)

	stamp, err := Timestamp(context.Background(), conn)
	if err != nil {
		t.Fatal("Could not fetch the server timestamp")
	}
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Errorf("Got timestamp is %s; want an RFC3339 instant", stamp)
	}
}

func TestStatus(t *testing.T) {
	_, _, conn := setup(t)

	status, err := Status(context.Background(), conn)
	if err != nil {
		t.Fatal("Could not fetch the cluster status")
	}
	local := status.Map("local-cluster-status")
	if local == nil {
		t.Fatal("Got no local-cluster-status block; want one")
	}
	if got := local.String("name"); got != "mock-cluster" {
		t.Errorf("Got cluster name is %s; want mock-cluster", got)
	}
	if got := local.Int("hosts-count"); got != 1 {
		t.Errorf("Got hosts count is %d; want 1", got)
	}
}

func TestProperties(t *testing.T) {
	_, _, conn := setup(t)
	ctx := context.Background()

	props, err := Properties(ctx, conn)
	if err != nil {
		t.Fatal("Could not fetch the cluster properties")
	}
	if got := props.String("cluster-name"); got != "mock-cluster" {
		t.Errorf("Got cluster name is %s; want mock-cluster", got)
	}
	if !props.Bool("ssl-fips") {
		t.Errorf("Got ssl-fips is false; want true")
	}

	err = UpdateProperties(ctx, conn, map[string]interface{}{"ssl-fips": false})
	if err != nil {
		t.Fatal("Could not update the cluster properties")
	}
	props, err = Properties(ctx, conn)
	if err != nil {
		t.Fatal("Could not refetch the cluster properties")
	}
	if props.Bool("ssl-fips") {
		t.Errorf("Got ssl-fips is true; want false after the update")
	}
}

func TestRestart(t *testing.T) {
	mock, _, conn := setup(t)

	if err := Restart(context.Background(), conn); err != nil {
		t.Fatal("Could not restart the cluster")
	}
	if got := mock.LastOperation; got != "restart-local-cluster" {
		t.Errorf("Got operation is %s; want restart-local-cluster", got)
	}
}

func TestInit(t *testing.T) {
	_, _, conn := setup(t)
	ctx := context.Background()

	if err := Init(ctx, conn, "", ""); err != nil {
		t.Fatal("Could not initialize the instance")
	}
	// A second init is answered with 204 and is not an error.
	if err := Init(ctx, conn, "license-key", "Example Corp"); err != nil {
		t.Errorf("Got error %v initializing twice; want none", err)
	}
}

func TestInstanceAdmin(t *testing.T) {
	mock, cfg, conn := setup(t)
	ctx := context.Background()

	if err := Init(ctx, conn, "", ""); err != nil {
		t.Fatal("Could not initialize the instance")
	}
	if err := InstanceAdmin(ctx, conn, "root", "hunter2", "private"); err != nil {
		t.Fatal("Could not install the admin user")
	}
	if mock.Username != "root" || mock.Realm != "private" {
		t.Errorf("Got credentials %s@%s; want root@private", mock.Username, mock.Realm)
	}

	// The old credentials no longer pass the digest challenge.
	resp, err := conn.Get(ctx, conn.URI("hosts"))
	if err != nil {
		t.Fatal("Could not probe with the old credentials")
	}
	if resp.StatusCode != 401 {
		t.Errorf("Got status is %d with stale credentials; want 401", resp.StatusCode)
	}

	cfg.Username = "root"
	cfg.Password = "hunter2"
	fresh, err := connection.New(cfg, log.NewNopLogger())
	if err != nil {
		t.Fatal("Could not build the fresh connection")
	}
	if _, err := Timestamp(ctx, fresh); err != nil {
		t.Errorf("Got error %v with the new credentials; want none", err)
	}
}

func TestGetLog(t *testing.T) {
	mock, _, conn := setup(t)
	ctx := context.Background()

	content, err := GetLog(ctx, conn, "ErrorLog.txt", "")
	if err != nil {
		t.Fatal("Could not fetch the error log")
	}
	if !strings.Contains(content, "Starting MarkLogic Server") {
		t.Errorf("Got log content %q; want the startup line", content)
	}

	mock.SeedLog("AccessLog.txt", "GET /manage/v2 200\n")
	content, err = GetLog(ctx, conn, "AccessLog.txt", "localhost")
	if err != nil {
		t.Fatal("Could not fetch the access log")
	}
	if !strings.Contains(content, "GET /manage/v2") {
		t.Errorf("Got log content %q; want the access line", content)
	}

	_, err = GetLog(ctx, conn, "NoSuchLog.txt", "")
	if err == nil {
		t.Fatal("Got no error for a missing log file; want one")
	}
	if _, ok := err.(*mlerrors.ResourceNotFoundError); !ok {
		t.Errorf("Got error is %T; want *ResourceNotFoundError", err)
	}
}

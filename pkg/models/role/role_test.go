package role

import (
	"context"
	"testing"

	"github.com/go-kit/kit/log"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	"github.com/marklogic-community/mlmanager/pkg/mocks"
)

func setup(t *testing.T) (*mocks.Management, *connection.Connection) {
	t.Helper()

	mock, cfg := mocks.NewServer(t, "admin", "secret")
	conn, err := connection.New(cfg, log.NewNopLogger())
	if err != nil {
		t.Fatal("Could not build the connection")
	}
	return mock, conn
}

func TestRoleLifecycle(t *testing.T) {
	mock, conn := setup(t)
	ctx := context.Background()

	r := NewRole("app-reader").
		SetDescription("Read-only application role").
		AddRole("rest-reader")
	if err := r.Create(ctx, conn); err != nil {
		t.Fatal("Could not create the role")
	}
	if mock.Resource("roles", "app-reader") == nil {
		t.Errorf("The role never reached the server")
	}

	r.AddRole("rest-extension-user")
	if err := r.Update(ctx, conn); err != nil {
		t.Fatal("Could not update the role")
	}
	if err := r.Read(ctx, conn); err != nil {
		t.Fatal("Could not refresh the role")
	}
	if got := len(r.Roles()); got != 2 {
		t.Errorf("Got %d inherited roles; want 2", got)
	}

	if err := r.Delete(ctx, conn); err != nil {
		t.Fatal("Could not delete the role")
	}
	gone, err := LookupRole(ctx, conn, "app-reader")
	if err != nil {
		t.Fatal("Could not look up the deleted role")
	}
	if gone != nil {
		t.Errorf("Got a role after delete; want none")
	}
}

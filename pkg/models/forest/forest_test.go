package forest

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-kit/kit/log"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
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

func TestForestLifecycle(t *testing.T) {
	mock, conn := setup(t)
	ctx := context.Background()

	f := NewForest("Documents-1").SetHost("localhost").SetDatabase("Documents")
	if err := f.Create(ctx, conn); err != nil {
		t.Fatal("Could not create the forest")
	}
	if f.Etag() == "" {
		t.Errorf("Got no etag after create; want one")
	}
	if got := f.Host(); got != "localhost" {
		t.Errorf("Got host is %s; want localhost", got)
	}
	if mock.Resource("forests", "Documents-1") == nil {
		t.Errorf("The forest never reached the server")
	}

	f.SetDataDirectory("/var/opt/MarkLogic/Forests")
	if err := f.Update(ctx, conn); err != nil {
		t.Fatal("Could not update the forest")
	}
	if err := f.Read(ctx, conn); err != nil {
		t.Fatal("Could not refresh the forest")
	}
	if got := f.DataDirectory(); got != "/var/opt/MarkLogic/Forests" {
		t.Errorf("Got data directory is %s; want /var/opt/MarkLogic/Forests", got)
	}

	if err := f.Delete(ctx, conn, "full"); err != nil {
		t.Fatal("Could not delete the forest")
	}
	gone, err := LookupForest(ctx, conn, "Documents-1")
	if err != nil {
		t.Fatal("Could not look up the deleted forest")
	}
	if gone != nil {
		t.Errorf("Got a forest after delete; want none")
	}
}

func TestDeleteLevel(t *testing.T) {
	testCases := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"full level", "full", false},
		{"config-only level", "config-only", false},
		{"unknown level", "everything", true},
		{"empty level", "", true},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			_, conn := setup(t)
			ctx := context.Background()

			f := NewForest("Scratch-1").SetHost("localhost")
			if err := f.Create(ctx, conn); err != nil {
				t.Fatal("Could not create the forest")
			}

			err := f.Delete(ctx, conn, tc.level)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Got no error for level %q; want one", tc.level)
				}
				if _, ok := err.(*mlerrors.ValidationError); !ok {
					t.Errorf("Got error is %T; want *ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Got error %v for level %q; want none", err, tc.level)
			}
		})
	}
}

func TestListForests(t *testing.T) {
	_, conn := setup(t)
	ctx := context.Background()

	for _, name := range []string{"Documents-1", "Documents-2", "Modules-1"} {
		if err := NewForest(name).SetHost("localhost").Create(ctx, conn); err != nil {
			t.Fatal("Could not create a forest")
		}
	}

	ids, err := ListForests(ctx, conn, false)
	if err != nil {
		t.Fatal("Could not list forests")
	}
	if len(ids) != 3 {
		t.Errorf("Got %d forests; want 3", len(ids))
	}
}

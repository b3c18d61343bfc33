package database

import (
	"context"
	"strings"
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

func TestDatabaseLifecycle(t *testing.T) {
	mock, conn := setup(t)
	ctx := context.Background()

	db := NewDatabase("Documents").SetEnabled(true).AddForest("Documents-1")
	if err := db.Create(ctx, conn); err != nil {
		t.Fatal("Could not create the database")
	}
	if db.Etag() == "" {
		t.Errorf("Got no etag after create; want one")
	}
	if mock.Resource("databases", "Documents") == nil {
		t.Errorf("The database never reached the server")
	}

	db.AddForest("Documents-2")
	if err := db.Update(ctx, conn); err != nil {
		t.Fatal("Could not update the database")
	}
	if err := db.Read(ctx, conn); err != nil {
		t.Fatal("Could not refresh the database")
	}
	forests := db.Forests()
	if len(forests) != 2 || forests[1] != "Documents-2" {
		t.Errorf("Got forests %v; want [Documents-1 Documents-2]", forests)
	}

	if err := db.Delete(ctx, conn); err != nil {
		t.Fatal("Could not delete the database")
	}
	gone, err := LookupDatabase(ctx, conn, "Documents")
	if err != nil {
		t.Fatal("Could not look up the deleted database")
	}
	if gone != nil {
		t.Errorf("Got a database after delete; want none")
	}

	// Deleting again must not fail, the resource is simply gone.
	if err := db.Delete(ctx, conn); err != nil {
		t.Errorf("Got error %v deleting a missing database; want none", err)
	}
}

func TestReadWithoutName(t *testing.T) {
	_, conn := setup(t)

	db := NewDatabase("")
	err := db.Read(context.Background(), conn)
	if err == nil {
		t.Fatal("Got no error reading a nameless database; want one")
	}
	if _, ok := err.(*mlerrors.ValidationError); !ok {
		t.Errorf("Got error is %T; want *ValidationError", err)
	}
}

func TestClearDatabase(t *testing.T) {
	mock, conn := setup(t)
	ctx := context.Background()

	db := NewDatabase("Scratch")
	if err := db.Create(ctx, conn); err != nil {
		t.Fatal("Could not create the database")
	}
	if err := db.Clear(ctx, conn); err != nil {
		t.Fatal("Could not clear the database")
	}
	if got := mock.LastOperation; got != "clear-database" {
		t.Errorf("Got operation is %s; want clear-database", got)
	}
}

func TestDeleteWithForests(t *testing.T) {
	_, conn := setup(t)
	ctx := context.Background()

	db := NewDatabase("Ephemeral").AddForest("Ephemeral-1")
	if err := db.Create(ctx, conn); err != nil {
		t.Fatal("Could not create the database")
	}
	if err := db.DeleteWithForests(ctx, conn); err != nil {
		t.Fatal("Could not delete the database with forests")
	}
	gone, err := LookupDatabase(ctx, conn, "Ephemeral")
	if err != nil {
		t.Fatal("Could not look up the deleted database")
	}
	if gone != nil {
		t.Errorf("Got a database after delete; want none")
	}
}

func TestListDatabases(t *testing.T) {
	_, conn := setup(t)
	ctx := context.Background()

	for _, name := range []string{"Documents", "Modules"} {
		if err := NewDatabase(name).Create(ctx, conn); err != nil {
			t.Fatal("Could not create a database")
		}
	}

	ids, err := ListDatabases(ctx, conn, false)
	if err != nil {
		t.Fatal("Could not list databases")
	}
	if len(ids) != 2 {
		t.Fatalf("Got %d databases; want 2", len(ids))
	}

	pairs, err := ListDatabases(ctx, conn, true)
	if err != nil {
		t.Fatal("Could not list databases with names")
	}
	if !strings.HasSuffix(pairs[0], "|Documents") {
		t.Errorf("Got first entry is %s; want an id|Documents pair", pairs[0])
	}
}

func TestLookupDatabaseMissing(t *testing.T) {
	_, conn := setup(t)

	db, err := LookupDatabase(context.Background(), conn, "nowhere")
	if err != nil {
		t.Fatal("A missing database should not be an error")
	}
	if db != nil {
		t.Errorf("Got a database for an unknown name; want none")
	}
}

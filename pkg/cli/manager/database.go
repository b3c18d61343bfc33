package manager

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models/database"
)

// DatabaseManager drives the database commands.
type DatabaseManager struct {
	base
}

func NewDatabaseManager(conn *connection.Connection, out io.Writer) *DatabaseManager {
	return &DatabaseManager{base{conn: conn, out: out}}
}

func (dm *DatabaseManager) resolve(ctx context.Context, ref string) (*database.Database, error) {
	db, err := database.LookupDatabase(ctx, dm.conn, ref)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, &mlerrors.ResourceNotFoundError{ResourceType: "database", ResourceId: ref}
	}
	return db, nil
}

func (dm *DatabaseManager) Create(ctx context.Context, name string, params map[string]string) error {
	db := database.NewDatabase(name)
	applyDatabaseParams(db, params)
	if err := db.Create(ctx, dm.conn); err != nil {
		return err
	}
	dm.printf("Created database %s\n", db.DatabaseName())
	return nil
}

func (dm *DatabaseManager) Get(ctx context.Context, ref string) error {
	db, err := dm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	return dm.printJSON(db.Marshal())
}

func (dm *DatabaseManager) Modify(ctx context.Context, ref string, params map[string]string) error {
	db, err := dm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	applyDatabaseParams(db, params)
	if err := db.Update(ctx, dm.conn); err != nil {
		return err
	}
	dm.printf("Modified database %s\n", db.DatabaseName())
	return nil
}

func (dm *DatabaseManager) Delete(ctx context.Context, ref string, withForests bool) error {
	db, err := dm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if withForests {
		err = db.DeleteWithForests(ctx, dm.conn)
	} else {
		err = db.Delete(ctx, dm.conn)
	}
	if err != nil {
		return err
	}
	dm.printf("Deleted database %s\n", db.DatabaseName())
	return nil
}

func (dm *DatabaseManager) Clear(ctx context.Context, ref string) error {
	db, err := dm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := db.Clear(ctx, dm.conn); err != nil {
		return err
	}
	dm.printf("Cleared database %s\n", db.DatabaseName())
	return nil
}

func (dm *DatabaseManager) List(ctx context.Context, names bool) error {
	items, err := database.ListDatabases(ctx, dm.conn, names)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintln(dm.out, item)
	}
	return nil
}

func applyDatabaseParams(db *database.Database, params map[string]string) {
	for key, value := range params {
		switch key {
		case "database-name":
			db.SetDatabaseName(value)
		case "forest":
			db.SetForests(strings.Split(value, ","))
		case "enabled":
			db.SetEnabled(value == "true")
		default:
			db.SetProperty(key, paramValue(value))
		}
	}
}

package database

import (
	"context"
	"net/http"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
)

const listKey = "database-default-list"

// Database is a database resource under /manage/v2/databases. The API
// addresses databases by name or id interchangeably; this library uses
// the name.
type Database struct {
	config models.Properties
	etag   string
}

func NewDatabase(name string) *Database {
	return &Database{
		config: models.Properties{
			"database-name": name,
		},
	}
}

func databaseFromProperties(props models.Properties, etag string) *Database {
	return &Database{config: props, etag: etag}
}

func (d *Database) DatabaseName() string {
	return d.config.String("database-name")
}

func (d *Database) SetDatabaseName(name string) *Database {
	d.config.Set("database-name", name)
	return d
}

func (d *Database) Enabled() bool {
	return d.config.Bool("enabled")
}

func (d *Database) SetEnabled(enabled bool) *Database {
	d.config.Set("enabled", enabled)
	return d
}

// Forests returns the names of the forests attached to the database.
func (d *Database) Forests() []string {
	return d.config.Strings("forest")
}

func (d *Database) AddForest(name string) *Database {
	d.config.Set("forest", append(d.Forests(), name))
	return d
}

func (d *Database) SetForests(names []string) *Database {
	d.config.Set("forest", names)
	return d
}

func (d *Database) Etag() string {
	return d.etag
}

func (d *Database) GetProperty(key string) interface{} {
	return d.config.Get(key)
}

func (d *Database) SetProperty(key string, value interface{}) {
	d.config.Set(key, value)
}

func (d *Database) Marshal() models.Properties {
	return d.config.Clone()
}

// Create creates the database, then reads it back so server-side
// defaults land in this object.
func (d *Database) Create(ctx context.Context, conn *connection.Connection) error {
	if _, err := models.CreateResource(ctx, conn, conn.URI("databases"), d.Marshal()); err != nil {
		return err
	}
	return d.Read(ctx, conn)
}

// Read refreshes the database from the server.
func (d *Database) Read(ctx context.Context, conn *connection.Connection) error {
	name := d.DatabaseName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot read a database without a name"}
	}
	fresh, err := LookupDatabase(ctx, conn, name)
	if err != nil {
		return err
	}
	if fresh == nil {
		return &mlerrors.ResourceNotFoundError{ResourceType: "database", ResourceId: name}
	}
	d.config = fresh.config
	d.etag = fresh.etag
	return nil
}

func (d *Database) Update(ctx context.Context, conn *connection.Connection) error {
	name := d.DatabaseName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot update a database without a name"}
	}
	uri := conn.URI("databases", name, "properties")
	return models.UpdateProperties(ctx, conn, uri, d.Marshal())
}

// Delete removes the database configuration but leaves its forests in
// place.
func (d *Database) Delete(ctx context.Context, conn *connection.Connection) error {
	_, err := models.DeleteResource(ctx, conn, conn.URI("databases", d.DatabaseName()))
	return err
}

// DeleteWithForests removes the database and the data of every forest
// attached to it.
func (d *Database) DeleteWithForests(ctx context.Context, conn *connection.Connection) error {
	uri := conn.URI("databases", d.DatabaseName()) + "?forest-delete=data"
	_, err := models.DeleteResource(ctx, conn, uri)
	return err
}

// Clear deletes every document in the database.
func (d *Database) Clear(ctx context.Context, conn *connection.Connection) error {
	payload := models.Properties{"operation": "clear-database"}
	uri := conn.URI("databases", d.DatabaseName())
	_, err := models.PostOperation(ctx, conn, uri, payload,
		http.StatusOK, http.StatusAccepted, http.StatusNoContent)
	return err
}

func ListDatabases(ctx context.Context, conn *connection.Connection, includeNames bool) ([]string, error) {
	return models.ListItems(ctx, conn, conn.URI("databases"), listKey, includeNames)
}

// LookupDatabase reads a database by name or id. It returns nil without
// error when no such database exists.
func LookupDatabase(ctx context.Context, conn *connection.Connection, ref string) (*Database, error) {
	props, etag, err := models.ReadProperties(ctx, conn, conn.URI("databases", ref, "properties"))
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, nil
	}
	return databaseFromProperties(props, etag), nil
}

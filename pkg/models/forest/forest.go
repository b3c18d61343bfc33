package forest

import (
	"context"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
)

const listKey = "forest-default-list"

// Forest is a forest resource under /manage/v2/forests.
type Forest struct {
	config models.Properties
	etag   string
}

func NewForest(name string) *Forest {
	return &Forest{
		config: models.Properties{
			"forest-name": name,
		},
	}
}

func forestFromProperties(props models.Properties, etag string) *Forest {
	return &Forest{config: props, etag: etag}
}

func (f *Forest) ForestName() string {
	return f.config.String("forest-name")
}

func (f *Forest) SetForestName(name string) *Forest {
	f.config.Set("forest-name", name)
	return f
}

// Host returns the host the forest lives on.
func (f *Forest) Host() string {
	return f.config.String("host")
}

func (f *Forest) SetHost(host string) *Forest {
	f.config.Set("host", host)
	return f
}

// Database returns the database the forest is attached to, or "" for a
// detached forest.
func (f *Forest) Database() string {
	return f.config.String("database")
}

func (f *Forest) SetDatabase(name string) *Forest {
	f.config.Set("database", name)
	return f
}

func (f *Forest) DataDirectory() string {
	return f.config.String("data-directory")
}

func (f *Forest) SetDataDirectory(dir string) *Forest {
	f.config.Set("data-directory", dir)
	return f
}

func (f *Forest) Enabled() bool {
	return f.config.Bool("enabled")
}

func (f *Forest) SetEnabled(enabled bool) *Forest {
	f.config.Set("enabled", enabled)
	return f
}

func (f *Forest) Etag() string {
	return f.etag
}

func (f *Forest) GetProperty(key string) interface{} {
	return f.config.Get(key)
}

func (f *Forest) SetProperty(key string, value interface{}) {
	f.config.Set(key, value)
}

func (f *Forest) Marshal() models.Properties {
	return f.config.Clone()
}

func (f *Forest) Create(ctx context.Context, conn *connection.Connection) error {
	if _, err := models.CreateResource(ctx, conn, conn.URI("forests"), f.Marshal()); err != nil {
		return err
	}
	return f.Read(ctx, conn)
}

func (f *Forest) Read(ctx context.Context, conn *connection.Connection) error {
	name := f.ForestName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot read a forest without a name"}
	}
	fresh, err := LookupForest(ctx, conn, name)
	if err != nil {
		return err
	}
	if fresh == nil {
		return &mlerrors.ResourceNotFoundError{ResourceType: "forest", ResourceId: name}
	}
	f.config = fresh.config
	f.etag = fresh.etag
	return nil
}

func (f *Forest) Update(ctx context.Context, conn *connection.Connection) error {
	name := f.ForestName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot update a forest without a name"}
	}
	uri := conn.URI("forests", name, "properties")
	return models.UpdateProperties(ctx, conn, uri, f.Marshal())
}

// Delete removes the forest. The level controls what happens to the
// forest's data: "full" deletes it, "config-only" leaves the files on
// disk and only removes the configuration.
func (f *Forest) Delete(ctx context.Context, conn *connection.Connection, level string) error {
	if level != "full" && level != "config-only" {
		return &mlerrors.ValidationError{Message: "the level must be 'full' or 'config-only'"}
	}
	uri := conn.URI("forests", f.ForestName()) + "?level=" + level
	_, err := models.DeleteResource(ctx, conn, uri)
	return err
}

func ListForests(ctx context.Context, conn *connection.Connection, includeNames bool) ([]string, error) {
	return models.ListItems(ctx, conn, conn.URI("forests"), listKey, includeNames)
}

// LookupForest reads a forest by name or id. It returns nil without
// error when no such forest exists.
func LookupForest(ctx context.Context, conn *connection.Connection, ref string) (*Forest, error) {
	props, etag, err := models.ReadProperties(ctx, conn, conn.URI("forests", ref, "properties"))
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, nil
	}
	return forestFromProperties(props, etag), nil
}

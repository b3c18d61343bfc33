package group

import (
	"context"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
)

const listKey = "group-default-list"

// Group is a group resource under /manage/v2/groups. Every cluster has
// at least the Default group.
type Group struct {
	config models.Properties
	etag   string
}

func NewGroup(name string) *Group {
	return &Group{
		config: models.Properties{
			"group-name": name,
		},
	}
}

func groupFromProperties(props models.Properties, etag string) *Group {
	return &Group{config: props, etag: etag}
}

func (g *Group) GroupName() string {
	return g.config.String("group-name")
}

func (g *Group) SetGroupName(name string) *Group {
	g.config.Set("group-name", name)
	return g
}

func (g *Group) Etag() string {
	return g.etag
}

func (g *Group) GetProperty(key string) interface{} {
	return g.config.Get(key)
}

func (g *Group) SetProperty(key string, value interface{}) {
	g.config.Set(key, value)
}

func (g *Group) Marshal() models.Properties {
	return g.config.Clone()
}

func (g *Group) Create(ctx context.Context, conn *connection.Connection) error {
	if _, err := models.CreateResource(ctx, conn, conn.URI("groups"), g.Marshal()); err != nil {
		return err
	}
	return g.Read(ctx, conn)
}

func (g *Group) Read(ctx context.Context, conn *connection.Connection) error {
	name := g.GroupName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot read a group without a name"}
	}
	fresh, err := LookupGroup(ctx, conn, name)
	if err != nil {
		return err
	}
	if fresh == nil {
		return &mlerrors.ResourceNotFoundError{ResourceType: "group", ResourceId: name}
	}
	g.config = fresh.config
	g.etag = fresh.etag
	return nil
}

func (g *Group) Update(ctx context.Context, conn *connection.Connection) error {
	name := g.GroupName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot update a group without a name"}
	}
	uri := conn.URI("groups", name, "properties")
	return models.UpdateProperties(ctx, conn, uri, g.Marshal())
}

func (g *Group) Delete(ctx context.Context, conn *connection.Connection) error {
	_, err := models.DeleteResource(ctx, conn, conn.URI("groups", g.GroupName()))
	return err
}

func ListGroups(ctx context.Context, conn *connection.Connection, includeNames bool) ([]string, error) {
	return models.ListItems(ctx, conn, conn.URI("groups"), listKey, includeNames)
}

// LookupGroup reads a group by name or id. It returns nil without error
// when no such group exists.
func LookupGroup(ctx context.Context, conn *connection.Connection, ref string) (*Group, error) {
	props, etag, err := models.ReadProperties(ctx, conn, conn.URI("groups", ref, "properties"))
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, nil
	}
	return groupFromProperties(props, etag), nil
}

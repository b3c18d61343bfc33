package role

import (
	"context"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
)

const listKey = "role-default-list"

// Role is a role resource under /manage/v2/roles.
type Role struct {
	config models.Properties
	etag   string
}

func NewRole(name string) *Role {
	return &Role{
		config: models.Properties{
			"role-name": name,
		},
	}
}

func roleFromProperties(props models.Properties, etag string) *Role {
	return &Role{config: props, etag: etag}
}

func (r *Role) RoleName() string {
	return r.config.String("role-name")
}

func (r *Role) SetRoleName(name string) *Role {
	r.config.Set("role-name", name)
	return r
}

func (r *Role) Description() string {
	return r.config.String("description")
}

func (r *Role) SetDescription(description string) *Role {
	r.config.Set("description", description)
	return r
}

// Roles returns the roles this role inherits from.
func (r *Role) Roles() []string {
	return r.config.Strings("role")
}

func (r *Role) AddRole(role string) *Role {
	r.config.Set("role", append(r.Roles(), role))
	return r
}

func (r *Role) SetRoles(roles []string) *Role {
	r.config.Set("role", roles)
	return r
}

func (r *Role) Etag() string {
	return r.etag
}

func (r *Role) GetProperty(key string) interface{} {
	return r.config.Get(key)
}

func (r *Role) SetProperty(key string, value interface{}) {
	r.config.Set(key, value)
}

func (r *Role) Marshal() models.Properties {
	return r.config.Clone()
}

func (r *Role) Create(ctx context.Context, conn *connection.Connection) error {
	if _, err := models.CreateResource(ctx, conn, conn.URI("roles"), r.Marshal()); err != nil {
		return err
	}
	return r.Read(ctx, conn)
}

func (r *Role) Read(ctx context.Context, conn *connection.Connection) error {
	name := r.RoleName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot read a role without a name"}
	}
	fresh, err := LookupRole(ctx, conn, name)
	if err != nil {
		return err
	}
	if fresh == nil {
		return &mlerrors.ResourceNotFoundError{ResourceType: "role", ResourceId: name}
	}
	r.config = fresh.config
	r.etag = fresh.etag
	return nil
}

func (r *Role) Update(ctx context.Context, conn *connection.Connection) error {
	name := r.RoleName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot update a role without a name"}
	}
	uri := conn.URI("roles", name, "properties")
	return models.UpdateProperties(ctx, conn, uri, r.Marshal())
}

func (r *Role) Delete(ctx context.Context, conn *connection.Connection) error {
	_, err := models.DeleteResource(ctx, conn, conn.URI("roles", r.RoleName()))
	return err
}

func ListRoles(ctx context.Context, conn *connection.Connection, includeNames bool) ([]string, error) {
	return models.ListItems(ctx, conn, conn.URI("roles"), listKey, includeNames)
}

// LookupRole reads a role by name or id. It returns nil without error
// when no such role exists.
func LookupRole(ctx context.Context, conn *connection.Connection, ref string) (*Role, error) {
	props, etag, err := models.ReadProperties(ctx, conn, conn.URI("roles", ref, "properties"))
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, nil
	}
	return roleFromProperties(props, etag), nil
}

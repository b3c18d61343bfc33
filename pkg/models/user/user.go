package user

import (
	"context"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
)

const listKey = "user-default-list"

// User is a user resource under /manage/v2/users. The password is
// write-only: it goes out in create and update payloads but the server
// never returns it.
type User struct {
	config models.Properties
	etag   string
}

func NewUser(name, password string) *User {
	return &User{
		config: models.Properties{
			"user-name": name,
			"password":  password,
		},
	}
}

func userFromProperties(props models.Properties, etag string) *User {
	return &User{config: props, etag: etag}
}

func (u *User) UserName() string {
	return u.config.String("user-name")
}

func (u *User) SetUserName(name string) *User {
	u.config.Set("user-name", name)
	return u
}

func (u *User) SetPassword(password string) *User {
	u.config.Set("password", password)
	return u
}

func (u *User) Description() string {
	return u.config.String("description")
}

func (u *User) SetDescription(description string) *User {
	u.config.Set("description", description)
	return u
}

// Roles returns the roles granted to the user.
func (u *User) Roles() []string {
	return u.config.Strings("role")
}

func (u *User) AddRole(role string) *User {
	u.config.Set("role", append(u.Roles(), role))
	return u
}

func (u *User) SetRoles(roles []string) *User {
	u.config.Set("role", roles)
	return u
}

func (u *User) Etag() string {
	return u.etag
}

func (u *User) GetProperty(key string) interface{} {
	return u.config.Get(key)
}

func (u *User) SetProperty(key string, value interface{}) {
	u.config.Set(key, value)
}

func (u *User) Marshal() models.Properties {
	return u.config.Clone()
}

func (u *User) Create(ctx context.Context, conn *connection.Connection) error {
	if _, err := models.CreateResource(ctx, conn, conn.URI("users"), u.Marshal()); err != nil {
		return err
	}
	return u.Read(ctx, conn)
}

func (u *User) Read(ctx context.Context, conn *connection.Connection) error {
	name := u.UserName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot read a user without a name"}
	}
	fresh, err := LookupUser(ctx, conn, name)
	if err != nil {
		return err
	}
	if fresh == nil {
		return &mlerrors.ResourceNotFoundError{ResourceType: "user", ResourceId: name}
	}
	u.config = fresh.config
	u.etag = fresh.etag
	return nil
}

func (u *User) Update(ctx context.Context, conn *connection.Connection) error {
	name := u.UserName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot update a user without a name"}
	}
	uri := conn.URI("users", name, "properties")
	return models.UpdateProperties(ctx, conn, uri, u.Marshal())
}

func (u *User) Delete(ctx context.Context, conn *connection.Connection) error {
	_, err := models.DeleteResource(ctx, conn, conn.URI("users", u.UserName()))
	return err
}

func ListUsers(ctx context.Context, conn *connection.Connection, includeNames bool) ([]string, error) {
	return models.ListItems(ctx, conn, conn.URI("users"), listKey, includeNames)
}

// LookupUser reads a user by name or id. It returns nil without error
// when no such user exists.
func LookupUser(ctx context.Context, conn *connection.Connection, ref string) (*User, error) {
	props, etag, err := models.ReadProperties(ctx, conn, conn.URI("users", ref, "properties"))
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, nil
	}
	return userFromProperties(props, etag), nil
}

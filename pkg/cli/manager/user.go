package manager

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models/user"
)

// UserManager drives the user commands.
type UserManager struct {
	base
}

func NewUserManager(conn *connection.Connection, out io.Writer) *UserManager {
	return &UserManager{base{conn: conn, out: out}}
}

func (um *UserManager) resolve(ctx context.Context, ref string) (*user.User, error) {
	u, err := user.LookupUser(ctx, um.conn, ref)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &mlerrors.ResourceNotFoundError{ResourceType: "user", ResourceId: ref}
	}
	return u, nil
}

func (um *UserManager) Create(ctx context.Context, name string, params map[string]string) error {
	password := params["password"]
	if password == "" {
		return &mlerrors.ValidationError{Message: "a new user needs a password=... parameter"}
	}
	delete(params, "password")
	u := user.NewUser(name, password)
	applyUserParams(u, params)
	if err := u.Create(ctx, um.conn); err != nil {
		return err
	}
	um.printf("Created user %s\n", u.UserName())
	return nil
}

func (um *UserManager) Get(ctx context.Context, ref string) error {
	u, err := um.resolve(ctx, ref)
	if err != nil {
		return err
	}
	return um.printJSON(u.Marshal())
}

func (um *UserManager) Modify(ctx context.Context, ref string, params map[string]string) error {
	u, err := um.resolve(ctx, ref)
	if err != nil {
		return err
	}
	applyUserParams(u, params)
	if err := u.Update(ctx, um.conn); err != nil {
		return err
	}
	um.printf("Modified user %s\n", u.UserName())
	return nil
}

func (um *UserManager) Delete(ctx context.Context, ref string) error {
	u, err := um.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := u.Delete(ctx, um.conn); err != nil {
		return err
	}
	um.printf("Deleted user %s\n", u.UserName())
	return nil
}

func (um *UserManager) List(ctx context.Context, names bool) error {
	items, err := user.ListUsers(ctx, um.conn, names)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintln(um.out, item)
	}
	return nil
}

func applyUserParams(u *user.User, params map[string]string) {
	for key, value := range params {
		switch key {
		case "user-name":
			u.SetUserName(value)
		case "password":
			u.SetPassword(value)
		case "description":
			u.SetDescription(value)
		case "role":
			u.SetRoles(strings.Split(value, ","))
		default:
			u.SetProperty(key, paramValue(value))
		}
	}
}

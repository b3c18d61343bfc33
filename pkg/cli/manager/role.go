package manager

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models/role"
)

// RoleManager drives the role commands.
type RoleManager struct {
	base
}

func NewRoleManager(conn *connection.Connection, out io.Writer) *RoleManager {
	return &RoleManager{base{conn: conn, out: out}}
}

func (rm *RoleManager) resolve(ctx context.Context, ref string) (*role.Role, error) {
	r, err := role.LookupRole(ctx, rm.conn, ref)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &mlerrors.ResourceNotFoundError{ResourceType: "role", ResourceId: ref}
	}
	return r, nil
}

func (rm *RoleManager) Create(ctx context.Context, name string, params map[string]string) error {
	r := role.NewRole(name)
	applyRoleParams(r, params)
	if err := r.Create(ctx, rm.conn); err != nil {
		return err
	}
	rm.printf("Created role %s\n", r.RoleName())
	return nil
}

func (rm *RoleManager) Get(ctx context.Context, ref string) error {
	r, err := rm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	return rm.printJSON(r.Marshal())
}

func (rm *RoleManager) Modify(ctx context.Context, ref string, params map[string]string) error {
	r, err := rm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	applyRoleParams(r, params)
	if err := r.Update(ctx, rm.conn); err != nil {
		return err
	}
	rm.printf("Modified role %s\n", r.RoleName())
	return nil
}

func (rm *RoleManager) Delete(ctx context.Context, ref string) error {
	r, err := rm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := r.Delete(ctx, rm.conn); err != nil {
		return err
	}
	rm.printf("Deleted role %s\n", r.RoleName())
	return nil
}

func (rm *RoleManager) List(ctx context.Context, names bool) error {
	items, err := role.ListRoles(ctx, rm.conn, names)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintln(rm.out, item)
	}
	return nil
}

func applyRoleParams(r *role.Role, params map[string]string) {
	for key, value := range params {
		switch key {
		case "role-name":
			r.SetRoleName(value)
		case "description":
			r.SetDescription(value)
		case "role":
			r.SetRoles(strings.Split(value, ","))
		default:
			r.SetProperty(key, paramValue(value))
		}
	}
}

package manager

import (
	"context"
	"fmt"
	"io"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models/group"
)

// GroupManager drives the group commands.
type GroupManager struct {
	base
}

func NewGroupManager(conn *connection.Connection, out io.Writer) *GroupManager {
	return &GroupManager{base{conn: conn, out: out}}
}

func (gm *GroupManager) resolve(ctx context.Context, ref string) (*group.Group, error) {
	g, err := group.LookupGroup(ctx, gm.conn, ref)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, &mlerrors.ResourceNotFoundError{ResourceType: "group", ResourceId: ref}
	}
	return g, nil
}

func (gm *GroupManager) Create(ctx context.Context, name string, params map[string]string) error {
	g := group.NewGroup(name)
	applyGroupParams(g, params)
	if err := g.Create(ctx, gm.conn); err != nil {
		return err
	}
	gm.printf("Created group %s\n", g.GroupName())
	return nil
}

func (gm *GroupManager) Get(ctx context.Context, ref string) error {
	g, err := gm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	return gm.printJSON(g.Marshal())
}

func (gm *GroupManager) Modify(ctx context.Context, ref string, params map[string]string) error {
	g, err := gm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	applyGroupParams(g, params)
	if err := g.Update(ctx, gm.conn); err != nil {
		return err
	}
	gm.printf("Modified group %s\n", g.GroupName())
	return nil
}

func (gm *GroupManager) Delete(ctx context.Context, ref string) error {
	g, err := gm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := g.Delete(ctx, gm.conn); err != nil {
		return err
	}
	gm.printf("Deleted group %s\n", g.GroupName())
	return nil
}

func (gm *GroupManager) List(ctx context.Context, names bool) error {
	items, err := group.ListGroups(ctx, gm.conn, names)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintln(gm.out, item)
	}
	return nil
}

func applyGroupParams(g *group.Group, params map[string]string) {
	for key, value := range params {
		switch key {
		case "group-name":
			g.SetGroupName(value)
		default:
			g.SetProperty(key, paramValue(value))
		}
	}
}

package manager

import (
	"context"
	"fmt"
	"io"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models/forest"
)

// ForestManager drives the forest commands.
type ForestManager struct {
	base
}

func NewForestManager(conn *connection.Connection, out io.Writer) *ForestManager {
	return &ForestManager{base{conn: conn, out: out}}
}

func (fm *ForestManager) resolve(ctx context.Context, ref string) (*forest.Forest, error) {
	f, err := forest.LookupForest(ctx, fm.conn, ref)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, &mlerrors.ResourceNotFoundError{ResourceType: "forest", ResourceId: ref}
	}
	return f, nil
}

func (fm *ForestManager) Create(ctx context.Context, name string, params map[string]string) error {
	f := forest.NewForest(name)
	applyForestParams(f, params)
	if err := f.Create(ctx, fm.conn); err != nil {
		return err
	}
	fm.printf("Created forest %s on host %s\n", f.ForestName(), f.Host())
	return nil
}

func (fm *ForestManager) Get(ctx context.Context, ref string) error {
	f, err := fm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	return fm.printJSON(f.Marshal())
}

func (fm *ForestManager) Modify(ctx context.Context, ref string, params map[string]string) error {
	f, err := fm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	applyForestParams(f, params)
	if err := f.Update(ctx, fm.conn); err != nil {
		return err
	}
	fm.printf("Modified forest %s\n", f.ForestName())
	return nil
}

func (fm *ForestManager) Delete(ctx context.Context, ref, level string) error {
	f, err := fm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := f.Delete(ctx, fm.conn, level); err != nil {
		return err
	}
	fm.printf("Deleted forest %s\n", f.ForestName())
	return nil
}

func (fm *ForestManager) List(ctx context.Context, names bool) error {
	items, err := forest.ListForests(ctx, fm.conn, names)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintln(fm.out, item)
	}
	return nil
}

func applyForestParams(f *forest.Forest, params map[string]string) {
	for key, value := range params {
		switch key {
		case "forest-name":
			f.SetForestName(value)
		case "host":
			f.SetHost(value)
		case "database":
			f.SetDatabase(value)
		case "data-directory":
			f.SetDataDirectory(value)
		case "enabled":
			f.SetEnabled(value == "true")
		default:
			f.SetProperty(key, paramValue(value))
		}
	}
}

package manager

import (
	"context"
	"fmt"
	"io"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models/host"
)

// HostManager drives the host commands. Host commands may leave the
// name out on a single-host cluster.
type HostManager struct {
	base
}

func NewHostManager(conn *connection.Connection, out io.Writer) *HostManager {
	return &HostManager{base{conn: conn, out: out}}
}

func (hm *HostManager) resolve(ctx context.Context, ref string) (*host.Host, error) {
	if ref == "" {
		ids, err := host.ListHosts(ctx, hm.conn, false)
		if err != nil {
			return nil, err
		}
		if len(ids) != 1 {
			return nil, &mlerrors.ValidationError{
				Message: fmt.Sprintf("the cluster has %d hosts, name one", len(ids)),
			}
		}
		ref = ids[0]
	}
	h, err := host.LookupHost(ctx, hm.conn, ref)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, &mlerrors.ResourceNotFoundError{ResourceType: "host", ResourceId: ref}
	}
	return h, nil
}

func (hm *HostManager) Get(ctx context.Context, ref string) error {
	h, err := hm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	return hm.printJSON(h.Marshal())
}

func (hm *HostManager) Modify(ctx context.Context, ref string, params map[string]string) error {
	h, err := hm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	applyHostParams(h, params)
	if err := h.Update(ctx, hm.conn); err != nil {
		return err
	}
	hm.printf("Modified host %s\n", h.HostName())
	return nil
}

func (hm *HostManager) List(ctx context.Context, names bool) error {
	items, err := host.ListHosts(ctx, hm.conn, names)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintln(hm.out, item)
	}
	return nil
}

func (hm *HostManager) Shutdown(ctx context.Context, ref string) error {
	h, err := hm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := h.Shutdown(ctx, hm.conn); err != nil {
		return err
	}
	hm.printf("Shutting down host %s\n", h.HostName())
	return nil
}

func (hm *HostManager) Restart(ctx context.Context, ref string) error {
	h, err := hm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := h.Restart(ctx, hm.conn); err != nil {
		return err
	}
	hm.printf("Restarting host %s\n", h.HostName())
	return nil
}

func applyHostParams(h *host.Host, params map[string]string) {
	for key, value := range params {
		switch key {
		case "host-name":
			h.SetHostName(value)
		case "group":
			h.SetGroup(value)
		case "zone":
			h.SetZone(value)
		default:
			h.SetProperty(key, paramValue(value))
		}
	}
}

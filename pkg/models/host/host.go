package host

import (
	"context"
	"net/http"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
)

const listKey = "host-default-list"

// Host is a host resource under /manage/v2/hosts. Hosts join a cluster
// through the admin API rather than a create POST, so the model only
// reads, updates and operates on hosts that already exist.
type Host struct {
	config models.Properties
	etag   string
}

func hostFromProperties(props models.Properties, etag string) *Host {
	return &Host{config: props, etag: etag}
}

func (h *Host) HostName() string {
	return h.config.String("host-name")
}

func (h *Host) SetHostName(name string) *Host {
	h.config.Set("host-name", name)
	return h
}

// Group returns the group the host belongs to.
func (h *Host) Group() string {
	return h.config.String("group")
}

func (h *Host) SetGroup(group string) *Host {
	h.config.Set("group", group)
	return h
}

func (h *Host) Zone() string {
	return h.config.String("zone")
}

func (h *Host) SetZone(zone string) *Host {
	h.config.Set("zone", zone)
	return h
}

func (h *Host) Etag() string {
	return h.etag
}

func (h *Host) GetProperty(key string) interface{} {
	return h.config.Get(key)
}

func (h *Host) SetProperty(key string, value interface{}) {
	h.config.Set(key, value)
}

func (h *Host) Marshal() models.Properties {
	return h.config.Clone()
}

func (h *Host) Read(ctx context.Context, conn *connection.Connection) error {
	name := h.HostName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot read a host without a name"}
	}
	fresh, err := LookupHost(ctx, conn, name)
	if err != nil {
		return err
	}
	if fresh == nil {
		return &mlerrors.ResourceNotFoundError{ResourceType: "host", ResourceId: name}
	}
	h.config = fresh.config
	h.etag = fresh.etag
	return nil
}

func (h *Host) Update(ctx context.Context, conn *connection.Connection) error {
	name := h.HostName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot update a host without a name"}
	}
	uri := conn.URI("hosts", name, "properties")
	return models.UpdateProperties(ctx, conn, uri, h.Marshal())
}

// Shutdown stops MarkLogic on the host. A stopped host cannot be
// started back over this API; the service has to be started on the
// host itself.
func (h *Host) Shutdown(ctx context.Context, conn *connection.Connection) error {
	return h.operate(ctx, conn, "shutdown-host")
}

// Restart restarts MarkLogic on the host.
func (h *Host) Restart(ctx context.Context, conn *connection.Connection) error {
	return h.operate(ctx, conn, "restart-host")
}

func (h *Host) operate(ctx context.Context, conn *connection.Connection, operation string) error {
	payload := models.Properties{"operation": operation}
	uri := conn.URI("hosts", h.HostName())
	_, err := models.PostOperation(ctx, conn, uri, payload,
		http.StatusOK, http.StatusAccepted, http.StatusNoContent)
	return err
}

func ListHosts(ctx context.Context, conn *connection.Connection, includeNames bool) ([]string, error) {
	return models.ListItems(ctx, conn, conn.URI("hosts"), listKey, includeNames)
}

// LookupHost reads a host by name or id. It returns nil without error
// when no such host exists.
func LookupHost(ctx context.Context, conn *connection.Connection, ref string) (*Host, error) {
	props, etag, err := models.ReadProperties(ctx, conn, conn.URI("hosts", ref, "properties"))
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, nil
	}
	return hostFromProperties(props, etag), nil
}

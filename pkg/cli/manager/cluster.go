package manager

import (
	"context"
	"fmt"
	"io"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
	"github.com/marklogic-community/mlmanager/pkg/models/cluster"
)

// ClusterManager drives the cluster-wide commands: status, init,
// restart, logs and the cluster properties.
type ClusterManager struct {
	base
}

func NewClusterManager(conn *connection.Connection, out io.Writer) *ClusterManager {
	return &ClusterManager{base{conn: conn, out: out}}
}

// Status probes the server with the admin timestamp, then prints the
// cluster status view.
func (cm *ClusterManager) Status(ctx context.Context) error {
	ts, err := cluster.Timestamp(ctx, cm.conn)
	if err != nil {
		return err
	}
	cm.printf("Host %s is up (server time %s)\n", cm.conn.Host, ts)
	status, err := cluster.Status(ctx, cm.conn)
	if err != nil {
		return err
	}
	return cm.printJSON(status)
}

func (cm *ClusterManager) Properties(ctx context.Context) error {
	props, err := cluster.Properties(ctx, cm.conn)
	if err != nil {
		return err
	}
	return cm.printJSON(props)
}

func (cm *ClusterManager) Modify(ctx context.Context, params map[string]string) error {
	props := models.Properties{}
	for key, value := range params {
		props.Set(key, paramValue(value))
	}
	if err := cluster.UpdateProperties(ctx, cm.conn, props); err != nil {
		return err
	}
	cm.printf("Modified cluster properties\n")
	return nil
}

// Init initializes the instance and, when an admin username is given,
// installs the admin user right after.
func (cm *ClusterManager) Init(ctx context.Context, licenseKey, licensee, adminUsername, adminPassword, realm string) error {
	if adminUsername != "" && adminPassword == "" {
		return &mlerrors.ValidationError{Message: "init with --admin-username also needs --admin-password"}
	}
	if err := cluster.Init(ctx, cm.conn, licenseKey, licensee); err != nil {
		return err
	}
	cm.printf("Initialized MarkLogic on %s\n", cm.conn.Host)
	if adminUsername != "" {
		if err := cluster.InstanceAdmin(ctx, cm.conn, adminUsername, adminPassword, realm); err != nil {
			return err
		}
		cm.printf("Installed admin user %s\n", adminUsername)
	}
	return nil
}

func (cm *ClusterManager) Restart(ctx context.Context) error {
	if err := cluster.Restart(ctx, cm.conn); err != nil {
		return err
	}
	cm.printf("Restarting cluster on %s\n", cm.conn.Host)
	return nil
}

func (cm *ClusterManager) Log(ctx context.Context, filename, hostname string) error {
	content, err := cluster.GetLog(ctx, cm.conn, filename, hostname)
	if err != nil {
		return err
	}
	fmt.Fprint(cm.out, content)
	return nil
}

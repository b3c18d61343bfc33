package cluster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
)

// The cluster is a singleton, so this package exposes functions rather
// than a model type. The admin endpoints under /admin/v1 answer without
// authentication until the instance has an admin user, and with digest
// after; the session handles both.

// Status returns the cluster status view of /manage/v2.
func Status(ctx context.Context, conn *connection.Connection) (models.Properties, error) {
	uri := conn.URI() + "?view=status&format=json"
	resp, err := conn.Get(ctx, uri)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, models.NewUnexpectedResponse("GET", uri, resp)
	}
	return models.Decode(resp.Body)
}

// Properties returns the cluster-wide properties.
func Properties(ctx context.Context, conn *connection.Connection) (models.Properties, error) {
	props, _, err := models.ReadProperties(ctx, conn, conn.URI("properties"))
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, &mlerrors.ResourceNotFoundError{ResourceType: "cluster", ResourceId: "properties"}
	}
	return props, nil
}

// UpdateProperties writes cluster-wide properties. Some property
// changes trigger a cluster restart, which the server reports as 202.
func UpdateProperties(ctx context.Context, conn *connection.Connection, props models.Properties) error {
	body, err := json.Marshal(props)
	if err != nil {
		return err
	}
	uri := conn.URI("properties")
	resp, err := conn.Put(ctx, uri, body)
	if err != nil {
		return err
	}
	if !models.Accepted(resp.StatusCode, http.StatusOK, http.StatusAccepted, http.StatusNoContent) {
		return models.NewUnexpectedResponse("PUT", uri, resp)
	}
	return nil
}

// Restart restarts every host in the local cluster.
func Restart(ctx context.Context, conn *connection.Connection) error {
	payload := models.Properties{"operation": "restart-local-cluster"}
	_, err := models.PostOperation(ctx, conn, conn.URI(), payload,
		http.StatusOK, http.StatusAccepted, http.StatusNoContent)
	return err
}

// Init initializes a fresh MarkLogic instance, optionally installing a
// license. Initializing an instance that is already initialized is not
// an error; the server answers 204 in that case.
func Init(ctx context.Context, conn *connection.Connection, licenseKey, licensee string) error {
	payload := models.Properties{}
	if licenseKey != "" {
		payload.Set("license-key", licenseKey)
	}
	if licensee != "" {
		payload.Set("licensee", licensee)
	}
	_, err := models.PostOperation(ctx, conn, conn.AdminURI("init"), payload,
		http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent)
	return err
}

// InstanceAdmin installs the admin user on a freshly initialized
// instance. This restarts the server, so the instance is unavailable
// for a moment after the call returns.
func InstanceAdmin(ctx context.Context, conn *connection.Connection, username, password, realm string) error {
	payload := models.Properties{
		"admin-username": username,
		"admin-password": password,
		"realm":          realm,
	}
	_, err := models.PostOperation(ctx, conn, conn.AdminURI("instance-admin"), payload,
		http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent)
	return err
}

// Timestamp returns the server's current time. It doubles as a
// liveness probe: a freshly restarted server answers this endpoint as
// soon as it is ready to take requests.
func Timestamp(ctx context.Context, conn *connection.Connection) (string, error) {
	uri := conn.AdminURI("timestamp")
	resp, err := conn.GetText(ctx, uri)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", models.NewUnexpectedResponse("GET", uri, resp)
	}
	return strings.TrimSpace(string(resp.Body)), nil
}

// GetLog fetches a server log file, optionally from a specific host.
func GetLog(ctx context.Context, conn *connection.Connection, filename, hostname string) (string, error) {
	query := url.Values{}
	query.Set("filename", filename)
	if hostname != "" {
		query.Set("host", hostname)
	}
	uri := conn.URI("logs") + "?" + query.Encode()
	resp, err := conn.GetText(ctx, uri)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusNotFound {
		return "", &mlerrors.ResourceNotFoundError{ResourceType: "log file", ResourceId: filename}
	}
	if resp.StatusCode != http.StatusOK {
		return "", models.NewUnexpectedResponse("GET", uri, resp)
	}
	return string(resp.Body), nil
}

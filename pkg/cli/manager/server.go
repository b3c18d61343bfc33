package manager

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models/server"
)

// ServerManager drives the app server commands.
type ServerManager struct {
	base
}

func NewServerManager(conn *connection.Connection, out io.Writer) *ServerManager {
	return &ServerManager{base{conn: conn, out: out}}
}

func (sm *ServerManager) resolve(ctx context.Context, name, group string) (*server.Server, error) {
	s, err := server.LookupServer(ctx, sm.conn, name, group)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &mlerrors.ResourceNotFoundError{ResourceType: "server", ResourceId: group + "/" + name}
	}
	return s, nil
}

func (sm *ServerManager) Create(ctx context.Context, name, group, serverType string, params map[string]string) error {
	if serverType == "" {
		return &mlerrors.ValidationError{Message: "server commands need --type: http, odbc, xdbc or webdav"}
	}
	s, err := server.NewServer(name, group, serverType)
	if err != nil {
		return err
	}
	if err := applyServerParams(s, params); err != nil {
		return err
	}
	if err := s.Create(ctx, sm.conn); err != nil {
		return err
	}
	sm.printf("Created %s server %s in group %s\n", s.ServerType(), s.ServerName(), s.GroupName())
	return nil
}

func (sm *ServerManager) Get(ctx context.Context, name, group string) error {
	s, err := sm.resolve(ctx, name, group)
	if err != nil {
		return err
	}
	return sm.printJSON(s.Marshal())
}

func (sm *ServerManager) Modify(ctx context.Context, name, group string, params map[string]string) error {
	s, err := sm.resolve(ctx, name, group)
	if err != nil {
		return err
	}
	if err := applyServerParams(s, params); err != nil {
		return err
	}
	if err := s.Update(ctx, sm.conn); err != nil {
		return err
	}
	sm.printf("Modified server %s\n", s.ServerName())
	return nil
}

func (sm *ServerManager) Delete(ctx context.Context, name, group string) error {
	s, err := sm.resolve(ctx, name, group)
	if err != nil {
		return err
	}
	if err := s.Delete(ctx, sm.conn); err != nil {
		return err
	}
	sm.printf("Deleted server %s\n", s.ServerName())
	return nil
}

// List prints app servers, filtered to one type when kind is set.
func (sm *ServerManager) List(ctx context.Context, kind string, names bool) error {
	items, err := server.ListServers(ctx, sm.conn)
	if err != nil {
		return err
	}
	for _, item := range items {
		if kind != "" && item.Kind != kind {
			continue
		}
		if names {
			fmt.Fprintf(sm.out, "%s|%s\n", item.ID, item.Name)
		} else {
			fmt.Fprintln(sm.out, item.ID)
		}
	}
	return nil
}

func applyServerParams(s *server.Server, params map[string]string) error {
	for key, value := range params {
		switch key {
		case "server-name":
			s.SetServerName(value)
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return &mlerrors.ValidationError{Message: "port must be an integer: " + value}
			}
			s.SetPort(port)
		case "root":
			s.SetRoot(value)
		case "content-database":
			s.SetContentDatabase(value)
		case "modules-database":
			s.SetModulesDatabase(value)
		default:
			s.SetProperty(key, paramValue(value))
		}
	}
	return nil
}

package server

import (
	"context"
	"fmt"
	"net/url"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
)

const listKey = "server-default-list"

// Types lists the app server types the API accepts.
var Types = []string{"http", "odbc", "xdbc", "webdav"}

// Server is an app server resource under /manage/v2/servers. Servers
// are scoped to a group, so item requests carry a group-id query
// parameter alongside the name.
type Server struct {
	config models.Properties
	etag   string
}

// NewServer builds an unsaved app server of the given type in the given
// group.
func NewServer(name, group, serverType string) (*Server, error) {
	if !validType(serverType) {
		return nil, &mlerrors.ValidationError{
			Message: fmt.Sprintf("the server type must be one of http, odbc, xdbc or webdav, not %q", serverType),
		}
	}
	return &Server{
		config: models.Properties{
			"server-name": name,
			"group-name":  group,
			"server-type": serverType,
		},
	}, nil
}

func validType(serverType string) bool {
	for _, t := range Types {
		if serverType == t {
			return true
		}
	}
	return false
}

func serverFromProperties(props models.Properties, etag string) *Server {
	return &Server{config: props, etag: etag}
}

func (s *Server) ServerName() string {
	return s.config.String("server-name")
}

func (s *Server) SetServerName(name string) *Server {
	s.config.Set("server-name", name)
	return s
}

func (s *Server) GroupName() string {
	return s.config.String("group-name")
}

func (s *Server) ServerType() string {
	return s.config.String("server-type")
}

func (s *Server) Port() int {
	return s.config.Int("port")
}

func (s *Server) SetPort(port int) *Server {
	s.config.Set("port", port)
	return s
}

// Root returns the modules root path.
func (s *Server) Root() string {
	return s.config.String("root")
}

func (s *Server) SetRoot(root string) *Server {
	s.config.Set("root", root)
	return s
}

func (s *Server) ContentDatabase() string {
	return s.config.String("content-database")
}

func (s *Server) SetContentDatabase(name string) *Server {
	s.config.Set("content-database", name)
	return s
}

func (s *Server) ModulesDatabase() string {
	return s.config.String("modules-database")
}

func (s *Server) SetModulesDatabase(name string) *Server {
	s.config.Set("modules-database", name)
	return s
}

func (s *Server) Etag() string {
	return s.etag
}

func (s *Server) GetProperty(key string) interface{} {
	return s.config.Get(key)
}

func (s *Server) SetProperty(key string, value interface{}) {
	s.config.Set(key, value)
}

func (s *Server) Marshal() models.Properties {
	return s.config.Clone()
}

func itemURI(conn *connection.Connection, name, group string, properties bool) string {
	parts := []string{"servers", name}
	if properties {
		parts = append(parts, "properties")
	}
	return conn.URI(parts...) + "?group-id=" + url.QueryEscape(group)
}

// Create creates the app server, then reads it back so server-side
// defaults land in this object. Creating an app server restarts
// MarkLogic, so the create POST can take a while.
func (s *Server) Create(ctx context.Context, conn *connection.Connection) error {
	if _, err := models.CreateResource(ctx, conn, conn.URI("servers"), s.Marshal()); err != nil {
		return err
	}
	return s.Read(ctx, conn)
}

func (s *Server) Read(ctx context.Context, conn *connection.Connection) error {
	name := s.ServerName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot read a server without a name"}
	}
	fresh, err := LookupServer(ctx, conn, name, s.GroupName())
	if err != nil {
		return err
	}
	if fresh == nil {
		return &mlerrors.ResourceNotFoundError{ResourceType: "server", ResourceId: name}
	}
	s.config = fresh.config
	s.etag = fresh.etag
	return nil
}

func (s *Server) Update(ctx context.Context, conn *connection.Connection) error {
	name := s.ServerName()
	if name == "" {
		return &mlerrors.ValidationError{Message: "cannot update a server without a name"}
	}
	uri := itemURI(conn, name, s.GroupName(), true)
	return models.UpdateProperties(ctx, conn, uri, s.Marshal())
}

func (s *Server) Delete(ctx context.Context, conn *connection.Connection) error {
	uri := itemURI(conn, s.ServerName(), s.GroupName(), false)
	_, err := models.DeleteResource(ctx, conn, uri)
	return err
}

// Item is one row of the server list. Unlike the other resource lists,
// the server list reports the group and type of each entry.
type Item struct {
	ID    string
	Name  string
	Kind  string
	Group string
}

func ListServers(ctx context.Context, conn *connection.Connection) ([]Item, error) {
	entries, err := models.ListEntries(ctx, conn, conn.URI("servers"), listKey)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{
			ID:    entry.Format("idref"),
			Name:  entry.Format("nameref"),
			Kind:  entry.Format("kindref"),
			Group: entry.Format("groupnameref"),
		})
	}
	return items, nil
}

// LookupServer reads an app server by name within a group. It returns
// nil without error when no such server exists.
func LookupServer(ctx context.Context, conn *connection.Connection, name, group string) (*Server, error) {
	props, etag, err := models.ReadProperties(ctx, conn, itemURI(conn, name, group, true))
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, nil
	}
	return serverFromProperties(props, etag), nil
}

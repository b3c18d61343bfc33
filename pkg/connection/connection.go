package connection

import (
	"context"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/marklogic-community/mlmanager/pkg/config"
)

// Connection is the transport target every model operation takes: the
// MarkLogic host, its well-known ports and a digest credential pair.
// Connections are cheap to build and are not persisted; the CLI makes a
// fresh one per invocation.
type Connection struct {
	Host           string
	Protocol       string
	Port           int
	AdminPort      int
	ManagementPort int
	Username       string
	Password       string

	session Session
}

const defaultTimeout = 60 * time.Second

// New builds a Connection from resolved configuration. The base session
// is wrapped with the logging middleware and then any extra middlewares
// in the order given.
func New(cfg config.Config, logger log.Logger, mws ...Middleware) (*Connection, error) {
	var caPool *x509.CertPool
	if cfg.CACertFile != "" {
		pool, err := createCAPool(cfg.CACertFile)
		if err != nil {
			return nil, err
		}
		caPool = pool
	}

	var session Session
	{
		session = newHTTPSession(cfg.Username, cfg.Password, caPool, defaultTimeout)
		session = LoggingMiddleware(log.With(logger, "component", "session"))(session)
		for _, mw := range mws {
			session = mw(session)
		}
	}

	return &Connection{
		Host:           cfg.Host,
		Protocol:       cfg.Protocol,
		Port:           cfg.Port,
		AdminPort:      cfg.AdminPort,
		ManagementPort: cfg.ManagementPort,
		Username:       cfg.Username,
		Password:       cfg.Password,
		session:        session,
	}, nil
}

// URI builds a Management API URI under /manage/v2.
func (c *Connection) URI(parts ...string) string {
	return fmt.Sprintf("%s://%s:%d/manage/v2%s", c.Protocol, c.Host, c.ManagementPort, joinPath(parts))
}

// AdminURI builds an Admin API URI under /admin/v1.
func (c *Connection) AdminURI(parts ...string) string {
	return fmt.Sprintf("%s://%s:%d/admin/v1%s", c.Protocol, c.Host, c.AdminPort, joinPath(parts))
}

// Resolve turns a path the server sent back, usually in a Location
// header, into a full Management API URI.
func (c *Connection) Resolve(path string) string {
	return fmt.Sprintf("%s://%s:%d%s", c.Protocol, c.Host, c.ManagementPort, path)
}

func (c *Connection) Get(ctx context.Context, uri string) (*Response, error) {
	return c.session.Get(ctx, uri, "application/json")
}

// GetText fetches a resource whose representation is plain text, such
// as log files and the admin timestamp.
func (c *Connection) GetText(ctx context.Context, uri string) (*Response, error) {
	return c.session.Get(ctx, uri, "text/plain")
}

func (c *Connection) Post(ctx context.Context, uri string, body []byte) (*Response, error) {
	return c.session.Post(ctx, uri, body)
}

func (c *Connection) Put(ctx context.Context, uri string, body []byte) (*Response, error) {
	return c.session.Put(ctx, uri, body)
}

func (c *Connection) Delete(ctx context.Context, uri string) (*Response, error) {
	return c.session.Delete(ctx, uri)
}

func joinPath(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return "/" + strings.Join(escaped, "/")
}

func createCAPool(caPath string) (*x509.CertPool, error) {
	caCert, err := ioutil.ReadFile(caPath)
	if err != nil {
		return nil, err
	}
	caCertPool := x509.NewCertPool()
	caCertPool.AppendCertsFromPEM(caCert)
	return caCertPool, nil
}

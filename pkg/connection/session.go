package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/icholy/digest"
	"github.com/opentracing/opentracing-go"
)

// Response is one side of a Management API exchange: status code,
// headers and the raw body. Interpreting the status code is left to the
// caller, which knows which codes its operation accepts.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Session issues authenticated HTTP exchanges against a MarkLogic
// server. The base implementation speaks digest authentication;
// middlewares wrap it for logging and instrumentation.
type Session interface {
	Get(ctx context.Context, uri string, accept string) (*Response, error)
	Post(ctx context.Context, uri string, body []byte) (*Response, error)
	Put(ctx context.Context, uri string, body []byte) (*Response, error)
	Delete(ctx context.Context, uri string) (*Response, error)
}

type httpSession struct {
	client *http.Client
}

func newHTTPSession(username string, password string, caPool *x509.CertPool, timeout time.Duration) Session {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if caPool != nil {
		transport.TLSClientConfig = &tls.Config{RootCAs: caPool}
	}
	return &httpSession{
		client: &http.Client{
			Timeout: timeout,
			Transport: &digest.Transport{
				Username:  username,
				Password:  password,
				Transport: transport,
			},
		},
	}
}

func (s *httpSession) Get(ctx context.Context, uri string, accept string) (*Response, error) {
	return s.do(ctx, http.MethodGet, uri, nil, accept)
}

func (s *httpSession) Post(ctx context.Context, uri string, body []byte) (*Response, error) {
	return s.do(ctx, http.MethodPost, uri, body, "application/json")
}

func (s *httpSession) Put(ctx context.Context, uri string, body []byte) (*Response, error) {
	return s.do(ctx, http.MethodPut, uri, body, "application/json")
}

func (s *httpSession) Delete(ctx context.Context, uri string) (*Response, error) {
	return s.do(ctx, http.MethodDelete, uri, nil, "application/json")
}

func (s *httpSession) do(ctx context.Context, method string, uri string, body []byte, accept string) (*Response, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "management-api")
	defer span.Finish()
	span.SetTag("http.method", method)
	span.SetTag("http.url", uri)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, uri, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	opentracing.GlobalTracer().Inject(span.Context(), opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(req.Header))

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	span.SetTag("http.status_code", res.StatusCode)

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: res.StatusCode, Header: res.Header, Body: data}, nil
}

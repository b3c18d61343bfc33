package certificate

import (
	"context"
	"net/http"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models"
)

const listKey = "certificate-templates-default-list"

// Template is a certificate template resource. It wraps the template's
// properties together with the ETag of the last read, and owns the
// endpoints under /manage/v2/certificate-templates.
type Template struct {
	config models.Properties
	etag   string
}

// NewTemplate builds an unsaved template around a certificate request.
// The key type defaults to "rsa", the only type the server accepts.
func NewTemplate(name, description string, req *Request) *Template {
	return &Template{
		config: models.Properties{
			"template-name":        name,
			"template-description": description,
			"key-type":             "rsa",
			"req":                  req,
		},
	}
}

// UnmarshalTemplate reconstructs a template from a JSON properties
// payload, as returned by the Management API.
func UnmarshalTemplate(data []byte) (*Template, error) {
	props, err := models.Decode(data)
	if err != nil {
		return nil, err
	}
	return templateFromProperties(props, ""), nil
}

func templateFromProperties(props models.Properties, etag string) *Template {
	if sub := props.Map("req"); sub != nil {
		props.Set("req", UnmarshalRequest(sub))
	}
	return &Template{config: props, etag: etag}
}

// TemplateID returns the server-assigned id, or "" for an unsaved
// template.
func (t *Template) TemplateID() string {
	return t.config.Format("template-id")
}

func (t *Template) TemplateName() string {
	return t.config.String("template-name")
}

func (t *Template) SetTemplateName(name string) *Template {
	t.config.Set("template-name", name)
	return t
}

func (t *Template) TemplateDescription() string {
	return t.config.String("template-description")
}

func (t *Template) SetTemplateDescription(description string) *Template {
	t.config.Set("template-description", description)
	return t
}

// TemplateVersion returns the server-maintained version, which bumps on
// every update.
func (t *Template) TemplateVersion() string {
	return t.config.Format("template-version")
}

func (t *Template) KeyType() string {
	return t.config.String("key-type")
}

// SetKeyType sets the key type. The server only supports "rsa".
func (t *Template) SetKeyType(keyType string) error {
	if keyType != "rsa" {
		return &mlerrors.ValidationError{Message: "the key-type must be 'rsa'"}
	}
	t.config.Set("key-type", keyType)
	return nil
}

func (t *Template) options() models.Properties {
	opts := t.config.Map("options")
	if opts == nil {
		opts = models.Properties{}
		t.config.Set("options", opts)
	}
	return opts
}

func (t *Template) KeyLength() int {
	if opts := t.config.Map("options"); opts != nil {
		return opts.Int("key-length")
	}
	return 0
}

func (t *Template) SetKeyLength(bits int) *Template {
	t.options().Set("key-length", bits)
	return t
}

func (t *Template) PassPhrase() string {
	if opts := t.config.Map("options"); opts != nil {
		return opts.String("pass-phrase")
	}
	return ""
}

func (t *Template) SetPassPhrase(phrase string) *Template {
	t.options().Set("pass-phrase", phrase)
	return t
}

// Options returns the options block. The server only understands
// key-length and pass-phrase today, but any keys round-trip.
func (t *Template) Options() models.Properties {
	return t.config.Map("options")
}

func (t *Template) SetOptions(opts models.Properties) *Template {
	t.config.Set("options", opts)
	return t
}

// Req returns the embedded certificate request.
func (t *Template) Req() *Request {
	switch v := t.config.Get("req").(type) {
	case *Request:
		return v
	case models.Properties:
		req := UnmarshalRequest(v)
		t.config.Set("req", req)
		return req
	case map[string]interface{}:
		req := UnmarshalRequest(models.Properties(v))
		t.config.Set("req", req)
		return req
	}
	return nil
}

func (t *Template) SetReq(req *Request) *Template {
	t.config.Set("req", req)
	return t
}

// Etag returns the entity tag from the last server read, or "" when the
// template has not been read.
func (t *Template) Etag() string {
	return t.etag
}

// GetProperty reads a template property the library has no accessor
// for.
func (t *Template) GetProperty(key string) interface{} {
	return t.config.Get(key)
}

// SetProperty writes a template property the library has no accessor
// for.
func (t *Template) SetProperty(key string, value interface{}) {
	t.config.Set(key, value)
}

// Marshal returns the template as properties ready to serialize,
// flattening the embedded request.
func (t *Template) Marshal() models.Properties {
	props := t.config.Clone()
	if req := t.Req(); req != nil {
		props.Set("req", req.Marshal())
	}
	return props
}

func (t *Template) adopt(props models.Properties, etag string) {
	if sub := props.Map("req"); sub != nil {
		props.Set("req", UnmarshalRequest(sub))
	}
	t.config = props
	t.etag = etag
}

// Create creates the template on the server, then reads the resource
// the Location header points at so the server-assigned id and version
// land in this object.
func (t *Template) Create(ctx context.Context, conn *connection.Connection) error {
	location, err := models.CreateResource(ctx, conn, conn.URI("certificate-templates"), t.Marshal())
	if err != nil {
		return err
	}
	props, etag, err := models.ReadProperties(ctx, conn, conn.Resolve(location+"/properties"))
	if err != nil {
		return err
	}
	if props == nil {
		return &mlerrors.ResourceNotFoundError{ResourceType: "certificate template", ResourceId: t.TemplateName()}
	}
	t.adopt(props, etag)
	return nil
}

// Read refreshes the template from the server.
func (t *Template) Read(ctx context.Context, conn *connection.Connection) error {
	id := t.TemplateID()
	if id == "" {
		return &mlerrors.ValidationError{Message: "cannot read an unsaved template"}
	}
	fresh, err := LookupTemplate(ctx, conn, id)
	if err != nil {
		return err
	}
	if fresh == nil {
		return &mlerrors.ResourceNotFoundError{ResourceType: "certificate template", ResourceId: id}
	}
	t.config = fresh.config
	t.etag = fresh.etag
	return nil
}

// Update writes the template's properties back to the server. The
// server owns template-id and template-version, so they are stripped
// from the payload.
func (t *Template) Update(ctx context.Context, conn *connection.Connection) error {
	id := t.TemplateID()
	if id == "" {
		return &mlerrors.ValidationError{Message: "cannot update an unsaved template"}
	}
	uri := conn.URI("certificate-templates", id, "properties")
	return models.UpdateProperties(ctx, conn, uri, t.Marshal(), "template-id", "template-version")
}

// Delete removes the template from the server. A template that is
// already gone is not an error. The local id is cleared either way so
// the object can be created again.
func (t *Template) Delete(ctx context.Context, conn *connection.Connection) error {
	id := t.TemplateID()
	if id == "" {
		return &mlerrors.ValidationError{Message: "cannot delete an unsaved template"}
	}
	if _, err := models.DeleteResource(ctx, conn, conn.URI("certificate-templates", id)); err != nil {
		return err
	}
	t.config.Remove("template-id")
	return nil
}

// GenerateCertificateAuthority asks the server to mint a certificate
// authority for this template, valid for the given number of days.
func (t *Template) GenerateCertificateAuthority(ctx context.Context, conn *connection.Connection, validFor int) error {
	payload := models.Properties{
		"operation": "generate-template-certificate-authority",
		"valid-for": validFor,
	}
	uri := conn.URI("certificate-templates", t.TemplateID())
	_, err := models.PostOperation(ctx, conn, uri, payload, http.StatusCreated)
	return err
}

// GenerateTemporaryCertificate asks the server to mint a temporary,
// self-signed certificate for the named server. When ifNecessary is
// set the server skips generation if a certificate already exists.
func (t *Template) GenerateTemporaryCertificate(ctx context.Context, conn *connection.Connection, validFor int, commonName, dnsName, ipAddr string, ifNecessary bool) error {
	payload := models.Properties{
		"operation":    "generate-temporary-certificate",
		"valid-for":    validFor,
		"common-name":  commonName,
		"if-necessary": boolString(ifNecessary),
	}
	if dnsName != "" {
		payload.Set("dns-name", dnsName)
	}
	if ipAddr != "" {
		payload.Set("ip-addr", ipAddr)
	}
	uri := conn.URI("certificate-templates", t.TemplateID())
	_, err := models.PostOperation(ctx, conn, uri, payload, http.StatusCreated)
	return err
}

// GetCertificate fetches the certificate minted from this template for
// the given common name. It returns nil when the server has none.
func (t *Template) GetCertificate(ctx context.Context, conn *connection.Connection, commonName, dnsName, ipAddr string) (models.Properties, error) {
	payload := models.Properties{
		"operation":   "get-certificate",
		"common-name": commonName,
	}
	if dnsName != "" {
		payload.Set("dns-name", dnsName)
	}
	if ipAddr != "" {
		payload.Set("ip-addr", ipAddr)
	}
	uri := conn.URI("certificate-templates", t.TemplateID())
	resp, err := models.PostOperation(ctx, conn, uri, payload, http.StatusOK, http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	return models.Decode(resp.Body)
}

// GetCertificates fetches all certificates minted from this template.
func (t *Template) GetCertificates(ctx context.Context, conn *connection.Connection) (models.Properties, error) {
	payload := models.Properties{
		"operation": "get-certificates-for-template",
	}
	uri := conn.URI("certificate-templates", t.TemplateID())
	resp, err := models.PostOperation(ctx, conn, uri, payload, http.StatusOK, http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	return models.Decode(resp.Body)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ListTemplates returns the ids of all certificate templates, or
// "id|name" pairs when includeNames is set.
func ListTemplates(ctx context.Context, conn *connection.Connection, includeNames bool) ([]string, error) {
	return models.ListItems(ctx, conn, conn.URI("certificate-templates"), listKey, includeNames)
}

// LookupTemplate reads a template by id or name. It returns nil without
// error when no such template exists.
func LookupTemplate(ctx context.Context, conn *connection.Connection, ref string) (*Template, error) {
	props, etag, err := models.ReadProperties(ctx, conn, conn.URI("certificate-templates", ref, "properties"))
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, nil
	}
	return templateFromProperties(props, etag), nil
}

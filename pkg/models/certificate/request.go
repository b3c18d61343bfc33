package certificate

import (
	"github.com/marklogic-community/mlmanager/pkg/models"
)

// Request is the X.509 request embedded in a certificate template. It
// carries a version and a subject block of distinguished-name fields;
// the server fills the rest in when it mints certificates from the
// template.
type Request struct {
	config models.Properties
}

// NewRequest builds a version 0 request with an empty subject.
func NewRequest() *Request {
	return &Request{
		config: models.Properties{
			"version": "0",
			"subject": models.Properties{},
		},
	}
}

// UnmarshalRequest wraps request properties decoded from a template.
func UnmarshalRequest(props models.Properties) *Request {
	if props == nil {
		props = models.Properties{}
	}
	return &Request{config: props}
}

func (r *Request) subject() models.Properties {
	sub := r.config.Map("subject")
	if sub == nil {
		sub = models.Properties{}
		r.config.Set("subject", sub)
	}
	return sub
}

func (r *Request) Version() string {
	return r.config.Format("version")
}

func (r *Request) SetVersion(version string) *Request {
	r.config.Set("version", version)
	return r
}

func (r *Request) CountryName() string {
	return r.subject().String("countryName")
}

func (r *Request) SetCountryName(name string) *Request {
	r.subject().Set("countryName", name)
	return r
}

func (r *Request) StateOrProvinceName() string {
	return r.subject().String("stateOrProvinceName")
}

func (r *Request) SetStateOrProvinceName(name string) *Request {
	r.subject().Set("stateOrProvinceName", name)
	return r
}

func (r *Request) LocalityName() string {
	return r.subject().String("localityName")
}

func (r *Request) SetLocalityName(name string) *Request {
	r.subject().Set("localityName", name)
	return r
}

func (r *Request) OrganizationName() string {
	return r.subject().String("organizationName")
}

func (r *Request) SetOrganizationName(name string) *Request {
	r.subject().Set("organizationName", name)
	return r
}

func (r *Request) OrganizationalUnitName() string {
	return r.subject().String("organizationalUnitName")
}

func (r *Request) SetOrganizationalUnitName(name string) *Request {
	r.subject().Set("organizationalUnitName", name)
	return r
}

func (r *Request) EmailAddress() string {
	return r.subject().String("emailAddress")
}

func (r *Request) SetEmailAddress(address string) *Request {
	r.subject().Set("emailAddress", address)
	return r
}

func (r *Request) CommonName() string {
	return r.subject().String("commonName")
}

func (r *Request) SetCommonName(name string) *Request {
	r.subject().Set("commonName", name)
	return r
}

// GetProperty reads a request property the library has no accessor for.
func (r *Request) GetProperty(key string) interface{} {
	return r.config.Get(key)
}

// SetProperty writes a request property the library has no accessor for.
func (r *Request) SetProperty(key string, value interface{}) {
	r.config.Set(key, value)
}

// Marshal returns the request as properties ready to embed in a
// template payload.
func (r *Request) Marshal() models.Properties {
	return r.config.Clone()
}

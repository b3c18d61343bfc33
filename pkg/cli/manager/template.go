package manager

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/models/certificate"
)

// TemplateManager drives the certificate template commands.
type TemplateManager struct {
	base
}

func NewTemplateManager(conn *connection.Connection, out io.Writer) *TemplateManager {
	return &TemplateManager{base{conn: conn, out: out}}
}

func (tm *TemplateManager) resolve(ctx context.Context, ref string) (*certificate.Template, error) {
	t, err := certificate.LookupTemplate(ctx, tm.conn, ref)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &mlerrors.ResourceNotFoundError{ResourceType: "certificate template", ResourceId: ref}
	}
	return t, nil
}

func (tm *TemplateManager) Create(ctx context.Context, name string, params map[string]string) error {
	t := certificate.NewTemplate(name, "", certificate.NewRequest())
	if err := applyTemplateParams(t, params); err != nil {
		return err
	}
	if err := t.Create(ctx, tm.conn); err != nil {
		return err
	}
	tm.printf("Created template %s with id %s\n", t.TemplateName(), t.TemplateID())
	return nil
}

func (tm *TemplateManager) Get(ctx context.Context, ref string) error {
	t, err := tm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	return tm.printJSON(t.Marshal())
}

func (tm *TemplateManager) Modify(ctx context.Context, ref string, params map[string]string) error {
	t, err := tm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := applyTemplateParams(t, params); err != nil {
		return err
	}
	if err := t.Update(ctx, tm.conn); err != nil {
		return err
	}
	tm.printf("Modified template %s\n", t.TemplateName())
	return nil
}

func (tm *TemplateManager) Delete(ctx context.Context, ref string) error {
	t, err := tm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	name := t.TemplateName()
	if err := t.Delete(ctx, tm.conn); err != nil {
		return err
	}
	tm.printf("Deleted template %s\n", name)
	return nil
}

func (tm *TemplateManager) List(ctx context.Context, names bool) error {
	items, err := certificate.ListTemplates(ctx, tm.conn, names)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintln(tm.out, item)
	}
	return nil
}

func (tm *TemplateManager) GenerateCA(ctx context.Context, ref string, validFor int) error {
	t, err := tm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := t.GenerateCertificateAuthority(ctx, tm.conn, validFor); err != nil {
		return err
	}
	tm.printf("Generated certificate authority for template %s\n", t.TemplateName())
	return nil
}

func (tm *TemplateManager) GenerateCertificate(ctx context.Context, ref string, validFor int, commonName, dnsName, ipAddr string, ifNecessary bool) error {
	t, err := tm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := t.GenerateTemporaryCertificate(ctx, tm.conn, validFor, commonName, dnsName, ipAddr, ifNecessary); err != nil {
		return err
	}
	tm.printf("Generated temporary certificate for %s\n", commonName)
	return nil
}

// Certificates prints the certificate for a common name, or every
// certificate minted from the template when no common name is given.
func (tm *TemplateManager) Certificates(ctx context.Context, ref, commonName, dnsName, ipAddr string) error {
	t, err := tm.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if commonName != "" {
		cert, err := t.GetCertificate(ctx, tm.conn, commonName, dnsName, ipAddr)
		if err != nil {
			return err
		}
		if cert == nil {
			return &mlerrors.ResourceNotFoundError{ResourceType: "certificate", ResourceId: commonName}
		}
		return tm.printJSON(cert)
	}
	certs, err := t.GetCertificates(ctx, tm.conn)
	if err != nil {
		return err
	}
	return tm.printJSON(certs)
}

func ensureReq(t *certificate.Template) *certificate.Request {
	if req := t.Req(); req != nil {
		return req
	}
	req := certificate.NewRequest()
	t.SetReq(req)
	return req
}

func applyTemplateParams(t *certificate.Template, params map[string]string) error {
	for key, value := range params {
		switch key {
		case "template-name":
			t.SetTemplateName(value)
		case "template-description":
			t.SetTemplateDescription(value)
		case "key-type":
			if err := t.SetKeyType(value); err != nil {
				return err
			}
		case "key-length":
			bits, err := strconv.Atoi(value)
			if err != nil {
				return &mlerrors.ValidationError{Message: "key-length must be an integer: " + value}
			}
			t.SetKeyLength(bits)
		case "pass-phrase":
			t.SetPassPhrase(value)
		case "version":
			ensureReq(t).SetVersion(value)
		case "countryName":
			ensureReq(t).SetCountryName(value)
		case "stateOrProvinceName":
			ensureReq(t).SetStateOrProvinceName(value)
		case "localityName":
			ensureReq(t).SetLocalityName(value)
		case "organizationName":
			ensureReq(t).SetOrganizationName(value)
		case "organizationalUnitName":
			ensureReq(t).SetOrganizationalUnitName(value)
		case "emailAddress":
			ensureReq(t).SetEmailAddress(value)
		case "commonName":
			ensureReq(t).SetCommonName(value)
		default:
			t.SetProperty(key, paramValue(value))
		}
	}
	return nil
}

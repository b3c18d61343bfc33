package certificate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
	"github.com/marklogic-community/mlmanager/pkg/mocks"
)

func setup(t *testing.T) (*mocks.Management, *connection.Connection) {
	t.Helper()

	mock, cfg := mocks.NewServer(t, "admin", "secret")
	conn, err := connection.New(cfg, log.NewNopLogger())
	if err != nil {
		t.Fatal("Could not build the connection")
	}
	return mock, conn
}

func newTestTemplate(name string) *Template {
	req := NewRequest().
		SetCountryName("US").
		SetStateOrProvinceName("California").
		SetOrganizationName("Example Corp").
		SetCommonName("*.example.com")
	return NewTemplate(name, "A template for "+name, req).SetKeyLength(2048)
}

func TestTemplateLifecycle(t *testing.T) {
	mock, conn := setup(t)
	ctx := context.Background()

	tpl := newTestTemplate("web-certs")
	if err := tpl.Create(ctx, conn); err != nil {
		t.Fatal("Could not create the template")
	}
	if tpl.TemplateID() == "" {
		t.Errorf("Got no template id after create; want a server-assigned one")
	}
	if got := tpl.TemplateVersion(); got != "1" {
		t.Errorf("Got version is %s; want 1", got)
	}
	if tpl.Etag() == "" {
		t.Errorf("Got no etag after create; want one")
	}
	if mock.Resource("certificate-templates", "web-certs") == nil {
		t.Errorf("The template never reached the server")
	}

	tpl.SetTemplateDescription("updated description")
	if err := tpl.Update(ctx, conn); err != nil {
		t.Fatal("Could not update the template")
	}
	if err := tpl.Read(ctx, conn); err != nil {
		t.Fatal("Could not refresh the template")
	}
	if got := tpl.TemplateVersion(); got != "2" {
		t.Errorf("Got version is %s; want 2", got)
	}
	if got := tpl.TemplateDescription(); got != "updated description" {
		t.Errorf("Got description is %s; want updated description", got)
	}

	id := tpl.TemplateID()
	if err := tpl.Delete(ctx, conn); err != nil {
		t.Fatal("Could not delete the template")
	}
	if tpl.TemplateID() != "" {
		t.Errorf("Got a template id after delete; want none")
	}
	gone, err := LookupTemplate(ctx, conn, id)
	if err != nil {
		t.Fatal("Could not look up the deleted template")
	}
	if gone != nil {
		t.Errorf("Got a template after delete; want none")
	}

	if err := tpl.Delete(ctx, conn); err == nil {
		t.Errorf("Got no error deleting an unsaved template; want one")
	} else if _, ok := err.(*mlerrors.ValidationError); !ok {
		t.Errorf("Got error is %T; want *ValidationError", err)
	}
}

func TestLookupTemplateByName(t *testing.T) {
	_, conn := setup(t)
	ctx := context.Background()

	tpl := newTestTemplate("lookup-me")
	if err := tpl.Create(ctx, conn); err != nil {
		t.Fatal("Could not create the template")
	}

	found, err := LookupTemplate(ctx, conn, "lookup-me")
	if err != nil {
		t.Fatal("Could not look up the template by name")
	}
	if found == nil {
		t.Fatal("Got no template by name; want one")
	}
	if got := found.TemplateID(); got != tpl.TemplateID() {
		t.Errorf("Got id is %s; want %s", got, tpl.TemplateID())
	}

	missing, err := LookupTemplate(ctx, conn, "no-such-template")
	if err != nil {
		t.Fatal("A missing template should not be an error")
	}
	if missing != nil {
		t.Errorf("Got a template for an unknown name; want none")
	}
}

func TestSetKeyType(t *testing.T) {
	testCases := []struct {
		name    string
		keyType string
		wantErr bool
	}{
		{"rsa accepted", "rsa", false},
		{"ecdsa rejected", "ecdsa", true},
		{"empty rejected", "", true},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			tpl := NewTemplate("kt", "", NewRequest())
			err := tpl.SetKeyType(tc.keyType)
			if tc.wantErr && err == nil {
				t.Errorf("Got no error for key type %q; want one", tc.keyType)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Got error %v for key type %q; want none", err, tc.keyType)
			}
		})
	}
}

func TestListTemplates(t *testing.T) {
	_, conn := setup(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second"} {
		if err := newTestTemplate(name).Create(ctx, conn); err != nil {
			t.Fatal("Could not create a template")
		}
	}

	ids, err := ListTemplates(ctx, conn, false)
	if err != nil {
		t.Fatal("Could not list templates")
	}
	if len(ids) != 2 {
		t.Fatalf("Got %d templates; want 2", len(ids))
	}

	pairs, err := ListTemplates(ctx, conn, true)
	if err != nil {
		t.Fatal("Could not list templates with names")
	}
	if !strings.HasSuffix(pairs[0], "|first") {
		t.Errorf("Got first entry is %s; want an id|first pair", pairs[0])
	}
}

func TestGenerateCertificateAuthority(t *testing.T) {
	mock, conn := setup(t)
	ctx := context.Background()

	tpl := newTestTemplate("ca-template")
	if err := tpl.Create(ctx, conn); err != nil {
		t.Fatal("Could not create the template")
	}
	if err := tpl.GenerateCertificateAuthority(ctx, conn, 365); err != nil {
		t.Fatal("Could not generate the certificate authority")
	}
	if got := mock.LastOperation; got != "generate-template-certificate-authority" {
		t.Errorf("Got operation is %s; want generate-template-certificate-authority", got)
	}
}

func TestTemporaryCertificates(t *testing.T) {
	_, conn := setup(t)
	ctx := context.Background()

	tpl := newTestTemplate("temp-certs")
	if err := tpl.Create(ctx, conn); err != nil {
		t.Fatal("Could not create the template")
	}
	err := tpl.GenerateTemporaryCertificate(ctx, conn, 90, "web.example.com", "web.example.com", "10.0.0.1", false)
	if err != nil {
		t.Fatal("Could not generate a temporary certificate")
	}

	cert, err := tpl.GetCertificate(ctx, conn, "web.example.com", "", "")
	if err != nil {
		t.Fatal("Could not fetch the certificate")
	}
	if cert == nil {
		t.Fatal("Got no certificate; want the generated one")
	}
	if got := cert.String("common-name"); got != "web.example.com" {
		t.Errorf("Got common name is %s; want web.example.com", got)
	}
	if !cert.Bool("temporary") {
		t.Errorf("Got a permanent certificate; want a temporary one")
	}

	missing, err := tpl.GetCertificate(ctx, conn, "nobody.example.com", "", "")
	if err != nil {
		t.Fatal("A missing certificate should not be an error")
	}
	if missing != nil {
		t.Errorf("Got a certificate for an unknown name; want none")
	}

	all, err := tpl.GetCertificates(ctx, conn)
	if err != nil {
		t.Fatal("Could not fetch the template's certificates")
	}
	certs, ok := all.Get("certificates").([]interface{})
	if !ok {
		t.Fatal("Got no certificates list; want one")
	}
	if len(certs) != 1 {
		t.Errorf("Got %d certificates; want 1", len(certs))
	}
}

func TestUnmarshalTemplate(t *testing.T) {
	doc := []byte(`{
		"template-id": "5282915154584873750",
		"template-name": "web-certs",
		"template-version": 3,
		"key-type": "rsa",
		"options": {"key-length": 4096},
		"req": {
			"version": "0",
			"subject": {"commonName": "*.example.com", "countryName": "US"}
		}
	}`)

	tpl, err := UnmarshalTemplate(doc)
	if err != nil {
		t.Fatal("Could not unmarshal the template document")
	}
	if got := tpl.TemplateID(); got != "5282915154584873750" {
		t.Errorf("Got id is %s; want 5282915154584873750", got)
	}
	if got := tpl.TemplateVersion(); got != "3" {
		t.Errorf("Got version is %s; want 3", got)
	}
	if got := tpl.KeyLength(); got != 4096 {
		t.Errorf("Got key length is %d; want 4096", got)
	}
	req := tpl.Req()
	if req == nil {
		t.Fatal("Got no request; want the embedded one")
	}
	if got := req.CommonName(); got != "*.example.com" {
		t.Errorf("Got common name is %s; want *.example.com", got)
	}

	// The marshalled form must serialize cleanly, request included.
	if _, err := json.Marshal(tpl.Marshal()); err != nil {
		t.Errorf("Could not serialize the marshalled template")
	}
}

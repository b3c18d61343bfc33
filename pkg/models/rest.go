package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/marklogic-community/mlmanager/pkg/connection"
	mlerrors "github.com/marklogic-community/mlmanager/pkg/connection/errors"
)

// This file centralizes the status-code protocol of the Management API.
// Create, read, update, delete and operation POSTs each accept a small
// set of codes; anything else surfaces as an UnexpectedResponseError
// carrying the response body, which is where the server puts its error
// report.

// Accepted reports whether code is one of the accepted status codes.
func Accepted(code int, accept ...int) bool {
	for _, a := range accept {
		if code == a {
			return true
		}
	}
	return false
}

// NewUnexpectedResponse builds the error returned when the server
// answers with a status code outside the operation's accepted set.
func NewUnexpectedResponse(method, uri string, resp *connection.Response) error {
	return &mlerrors.UnexpectedResponseError{
		Method:     method,
		URI:        uri,
		StatusCode: resp.StatusCode,
		Body:       string(resp.Body),
	}
}

// CreateResource POSTs a new resource to a collection endpoint and
// returns the Location header of the created resource, which may be
// empty when the server does not report one.
func CreateResource(ctx context.Context, conn *connection.Connection, uri string, props Properties) (string, error) {
	body, err := json.Marshal(props)
	if err != nil {
		return "", err
	}
	resp, err := conn.Post(ctx, uri, body)
	if err != nil {
		return "", err
	}
	if !Accepted(resp.StatusCode, http.StatusOK, http.StatusCreated, http.StatusNoContent) {
		return "", NewUnexpectedResponse("POST", uri, resp)
	}
	return resp.Header.Get("Location"), nil
}

// ReadProperties GETs a resource's properties endpoint. A 404 means the
// resource does not exist and returns nil properties and no error; the
// caller decides whether absence is an error. The second return is the
// response ETag, when the server sent one.
func ReadProperties(ctx context.Context, conn *connection.Connection, uri string) (Properties, string, error) {
	resp, err := conn.Get(ctx, uri)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", NewUnexpectedResponse("GET", uri, resp)
	}
	props, err := Decode(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return props, resp.Header.Get("ETag"), nil
}

// UpdateProperties PUTs a resource's properties, minus the excluded
// keys. Identity properties like template-id are server-assigned and
// rejected on update, so models exclude them here.
func UpdateProperties(ctx context.Context, conn *connection.Connection, uri string, props Properties, exclude ...string) error {
	payload := props.Clone()
	for _, key := range exclude {
		payload.Remove(key)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := conn.Put(ctx, uri, body)
	if err != nil {
		return err
	}
	if !Accepted(resp.StatusCode, http.StatusOK, http.StatusNoContent) {
		return NewUnexpectedResponse("PUT", uri, resp)
	}
	return nil
}

// DeleteResource DELETEs a resource. Deleting something that is already
// gone is not an error; the boolean reports whether the resource was
// there to delete.
func DeleteResource(ctx context.Context, conn *connection.Connection, uri string) (bool, error) {
	resp, err := conn.Delete(ctx, uri)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if !Accepted(resp.StatusCode, http.StatusOK, http.StatusNoContent) {
		return false, NewUnexpectedResponse("DELETE", uri, resp)
	}
	return true, nil
}

// PostOperation POSTs an operation payload to a resource endpoint and
// checks the status code against the operation's accepted set. The raw
// response is returned for operations that carry a result body.
func PostOperation(ctx context.Context, conn *connection.Connection, uri string, payload Properties, accept ...int) (*connection.Response, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	resp, err := conn.Post(ctx, uri, body)
	if err != nil {
		return nil, err
	}
	if !Accepted(resp.StatusCode, accept...) {
		return nil, NewUnexpectedResponse("POST", uri, resp)
	}
	return resp, nil
}

// ListEntries GETs a default-list view and returns its list-item
// entries. The API nests them under <listKey>.list-items.list-item and
// collapses a one-item list into a bare object.
func ListEntries(ctx context.Context, conn *connection.Connection, uri, listKey string) ([]Properties, error) {
	resp, err := conn.Get(ctx, uri)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewUnexpectedResponse("GET", uri, resp)
	}
	doc, err := Decode(resp.Body)
	if err != nil {
		return nil, err
	}
	items := doc.Map(listKey).Map("list-items")
	if items == nil {
		return nil, nil
	}
	switch v := items.Get("list-item").(type) {
	case []interface{}:
		out := make([]Properties, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, Properties(m))
			}
		}
		return out, nil
	case map[string]interface{}:
		return []Properties{Properties(v)}, nil
	}
	return nil, nil
}

// ListItems returns the ids of a default-list view, or "id|name" pairs
// when includeNames is set.
func ListItems(ctx context.Context, conn *connection.Connection, uri, listKey string, includeNames bool) ([]string, error) {
	entries, err := ListEntries(ctx, conn, uri, listKey)
	if err != nil {
		return nil, err
	}
	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		if includeNames {
			items = append(items, fmt.Sprintf("%v|%v", entry.Get("idref"), entry.Get("nameref")))
		} else {
			items = append(items, entry.Format("idref"))
		}
	}
	return items, nil
}

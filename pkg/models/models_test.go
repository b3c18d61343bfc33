package models

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestDecode(t *testing.T) {
	doc := []byte(`{
		"database-id": 16224875475049834837,
		"database-name": "Documents",
		"enabled": true,
		"forest": ["Documents-1", "Documents-2"],
		"options": {"key-length": 2048}
	}`)

	props, err := Decode(doc)
	if err != nil {
		t.Fatal("Could not decode properties document")
	}

	// Resource ids do not fit a float64, so they must survive as
	// json.Number literals.
	if got := props.Format("database-id"); got != "16224875475049834837" {
		t.Errorf("Got database-id is %s; want 16224875475049834837", got)
	}
	if got := props.String("database-name"); got != "Documents" {
		t.Errorf("Got database-name is %s; want Documents", got)
	}
	if !props.Bool("enabled") {
		t.Errorf("Got enabled is false; want true")
	}
	if got := props.Map("options").Int("key-length"); got != 2048 {
		t.Errorf("Got key-length is %d; want 2048", got)
	}
}

func TestDecodeRejectsBadDocument(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Errorf("Got no error decoding a malformed document; want one")
	}
}

func TestInt(t *testing.T) {
	testCases := []struct {
		name  string
		value interface{}
		want  int
	}{
		{"int value", 8010, 8010},
		{"int64 value", int64(8010), 8010},
		{"float64 value", float64(8010), 8010},
		{"json.Number value", json.Number("8010"), 8010},
		{"string value", "8010", 0},
		{"absent value", nil, 0},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			props := Properties{}
			if tc.value != nil {
				props.Set("port", tc.value)
			}
			if got := props.Int("port"); got != tc.want {
				t.Errorf("Got result is %d; want %d", got, tc.want)
			}
		})
	}
}

func TestBool(t *testing.T) {
	testCases := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"true value", true, true},
		{"false value", false, false},
		{"true string", "true", true},
		{"false string", "false", false},
		{"absent value", nil, false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			props := Properties{}
			if tc.value != nil {
				props.Set("enabled", tc.value)
			}
			if got := props.Bool("enabled"); got != tc.want {
				t.Errorf("Got result is %t; want %t", got, tc.want)
			}
		})
	}
}

func TestStrings(t *testing.T) {
	testCases := []struct {
		name  string
		value interface{}
		want  int
	}{
		{"bare value", "Documents-1", 1},
		{"string list", []string{"Documents-1", "Documents-2"}, 2},
		{"decoded list", []interface{}{"Documents-1", "Documents-2"}, 2},
		{"absent value", nil, 0},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			props := Properties{}
			if tc.value != nil {
				props.Set("forest", tc.value)
			}
			got := props.Strings("forest")
			if len(got) != tc.want {
				t.Errorf("Got %d entries; want %d", len(got), tc.want)
			}
			if tc.want > 0 && got[0] != "Documents-1" {
				t.Errorf("Got first entry is %s; want Documents-1", got[0])
			}
		})
	}
}

func TestFormat(t *testing.T) {
	props := Properties{
		"template-id":      json.Number("5282915154584873750"),
		"template-version": 3,
	}
	if got := props.Format("template-id"); got != "5282915154584873750" {
		t.Errorf("Got result is %s; want 5282915154584873750", got)
	}
	if got := props.Format("template-version"); got != "3" {
		t.Errorf("Got result is %s; want 3", got)
	}
	if got := props.Format("absent"); got != "" {
		t.Errorf("Got result is %q; want empty", got)
	}
}

func TestClone(t *testing.T) {
	props := Properties{"database-name": "Documents", "enabled": true}
	clone := props.Clone()
	clone.Remove("enabled")
	clone.Set("database-name", "Modules")

	if !props.Has("enabled") {
		t.Errorf("Removing from the clone touched the original")
	}
	if got := props.String("database-name"); got != "Documents" {
		t.Errorf("Got original name is %s; want Documents", got)
	}
}

func TestAccepted(t *testing.T) {
	if !Accepted(201, 200, 201, 204) {
		t.Errorf("Got 201 rejected; want accepted")
	}
	if Accepted(500, 200, 201, 204) {
		t.Errorf("Got 500 accepted; want rejected")
	}
}

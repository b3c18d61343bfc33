package manager

import (
	"fmt"
	"reflect"
	"testing"
)

func TestParamValue(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  interface{}
	}{
		{"integer", "8010", 8010},
		{"negative integer", "-1", -1},
		{"true", "true", true},
		{"false", "false", false},
		{"plain string", "Documents", "Documents"},
		{"numeric-looking string", "10.0-9", "10.0-9"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Testing %s", tc.name), func(t *testing.T) {
			got := paramValue(tc.value)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Got result is %v (%T); want %v (%T)", got, got, tc.want, tc.want)
			}
		})
	}
}

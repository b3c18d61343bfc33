// Package manager translates command-line arguments into model
// operations and prints the results. Each artifact gets a manager; the
// connection and output plumbing they share lives here.
package manager

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/marklogic-community/mlmanager/pkg/connection"
)

type base struct {
	conn *connection.Connection
	out  io.Writer
}

func (b *base) printf(format string, args ...interface{}) {
	fmt.Fprintf(b.out, format, args...)
}

func (b *base) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(b.out, string(data))
	return nil
}

// paramValue turns a key=value parameter into the type the API
// expects: integers and booleans stay typed, everything else goes
// through as a string.
func paramValue(value string) interface{} {
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if value == "true" {
		return true
	}
	if value == "false" {
		return false
	}
	return value
}

package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Numeric is a write-model number kept as its decimal text. Bodies may
// send it as a JSON number or a JSON string; PostgreSQL casts the text to
// the column type and rejects anything that is not a number.
type Numeric string

func (n *Numeric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Numeric(strings.TrimSpace(s))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected a number, got %s", b)
	}
	*n = Numeric(num)
	return nil
}

// UnmarshalParam binds form and query values.
func (n *Numeric) UnmarshalParam(s string) error {
	*n = Numeric(strings.TrimSpace(s))
	return nil
}

func (n *Numeric) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	*n = Numeric(strings.TrimSpace(node.Value))
	return nil
}

// Value sends the text as is. A nil *Numeric is stored as NULL.
func (n Numeric) Value() (driver.Value, error) {
	return string(n), nil
}

func (n Numeric) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

func (n Numeric) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

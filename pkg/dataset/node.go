package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// RawNode is one node of the dataset document as received.
//
// Internal nodes have Children and no Value. Leaves have a Category and a
// Value and no Children. A nil Children slice means the key was absent; an
// empty non-nil slice means "children": [] was present.
type RawNode struct {
	Name     string     `json:"name"`
	Children []*RawNode `json:"children,omitempty"`
	Category *string    `json:"category,omitempty"`
	Value    *Value     `json:"value,omitempty"`
}

// IsLeaf reports whether n has the shape of a leaf (a value and no children key).
func (n *RawNode) IsLeaf() bool { return n.Value != nil && n.Children == nil }

// IsInternal reports whether n has the shape of an internal node.
func (n *RawNode) IsInternal() bool { return n.Children != nil && n.Value == nil }

// CategoryName returns the leaf category or "" when absent.
func (n *RawNode) CategoryName() string {
	if n.Category == nil {
		return ""
	}
	return *n.Category
}

// Value is a numeric leaf weight that accepts both JSON numbers and numeric
// strings. Text holds the display form: the string as received, or the
// shortest decimal representation of a JSON number.
type Value struct {
	Number float64
	Text   string
}

// NewValue returns a Value for v with its shortest decimal display text.
func NewValue(v float64) *Value {
	return &Value{Number: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// String returns the display text.
func (v Value) String() string { return v.Text }

// UnmarshalJSON decodes a JSON number or a quoted numeric string.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("value is null")
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("value %q is not numeric", s)
		}
		v.Number, v.Text = f, s
		return v.check()
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("value %s is not numeric", data)
	}
	v.Number = f
	v.Text = strconv.FormatFloat(f, 'f', -1, 64)
	return v.check()
}

// MarshalJSON encodes the value as a JSON number.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(v.Number, 'f', -1, 64)), nil
}

func (v *Value) check() error {
	if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
		return fmt.Errorf("value %q is not finite", v.Text)
	}
	return nil
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Attributes is the configuration of a part, mapping attribute names to
// values. Values are resolved once when the part is mounted.
//
type Attributes map[string]interface{}

// A Key describes an attribute accepted by a part.
//
type Key interface {
	// Name returns the attribute name.
	Name() string
	// Check returns an error if v is not a valid value for the key.
	Check(v interface{}) error
}

// IntKey is an integer attribute with a default value and bounds.
//
type IntKey struct {
	ID       string
	Default  int
	Min, Max int
	Desc     string
}

// Name implements Key.
//
func (k IntKey) Name() string { return k.ID }

// Check implements Key.
//
func (k IntKey) Check(v interface{}) error {
	i, ok := toInt(v)
	if !ok {
		return errors.Errorf("attribute %s: expected an integer, got %T", k.ID, v)
	}
	if i < k.Min || i > k.Max {
		return errors.Errorf("attribute %s: value %d out of range [%d, %d]", k.ID, i, k.Min, k.Max)
	}
	return nil
}

// Get returns the value of k in a, or its default value.
//
func (k IntKey) Get(a Attributes) int {
	if v, ok := a[k.ID]; ok {
		if i, ok := toInt(v); ok {
			return i
		}
	}
	return k.Default
}

// Uint returns the value of k in a as an uint.
//
func (k IntKey) Uint(a Attributes) uint { return uint(k.Get(a)) }

// BoolKey is a boolean attribute.
//
type BoolKey struct {
	ID      string
	Default bool
	Desc    string
}

// Name implements Key.
//
func (k BoolKey) Name() string { return k.ID }

// Check implements Key.
//
func (k BoolKey) Check(v interface{}) error {
	if _, ok := v.(bool); !ok {
		return errors.Errorf("attribute %s: expected a boolean, got %T", k.ID, v)
	}
	return nil
}

// Get returns the value of k in a, or its default value.
//
func (k BoolKey) Get(a Attributes) bool {
	if b, ok := a[k.ID].(bool); ok {
		return b
	}
	return k.Default
}

// StringKey is a string attribute.
//
type StringKey struct {
	ID      string
	Default string
	Desc    string
}

// Name implements Key.
//
func (k StringKey) Name() string { return k.ID }

// Check implements Key.
//
func (k StringKey) Check(v interface{}) error {
	if _, ok := v.(string); !ok {
		return errors.Errorf("attribute %s: expected a string, got %T", k.ID, v)
	}
	return nil
}

// Get returns the value of k in a, or its default value.
//
func (k StringKey) Get(a Attributes) string {
	if s, ok := a[k.ID].(string); ok {
		return s
	}
	return k.Default
}

// Common attribute keys.
//
var (
	Bits            = IntKey{ID: "Bits", Default: 1, Min: 1, Max: 64, Desc: "Data bits"}
	AddrBits        = IntKey{ID: "AddrBits", Default: 8, Min: 1, Max: 24, Desc: "Address bits"}
	Label           = StringKey{ID: "Label", Desc: "Part label"}
	IsProgramMemory = BoolKey{ID: "IsProgramMemory", Desc: "Memory holds the program to run"}
)

// check validates a against keys. Label is always accepted.
func (a Attributes) check(keys []Key) error {
	for name, v := range a {
		if name == Label.ID {
			if err := Label.Check(v); err != nil {
				return err
			}
			continue
		}
		var k Key
		for _, kk := range keys {
			if kk.Name() == name {
				k = kk
				break
			}
		}
		if k == nil {
			return errors.New("unknown attribute " + strconv.Quote(name))
		}
		if err := k.Check(v); err != nil {
			return err
		}
	}
	return nil
}

// toInt converts integer values as produced by Go code or decoders.
func toInt(v interface{}) (int, bool) {
	switch i := v.(type) {
	case int:
		return i, true
	case int8:
		return int(i), true
	case int16:
		return int(i), true
	case int32:
		return int(i), true
	case int64:
		return int(i), true
	case uint:
		return int(i), true
	case uint8:
		return int(i), true
	case uint16:
		return int(i), true
	case uint32:
		return int(i), true
	case uint64:
		if i > math.MaxInt64 {
			return 0, false
		}
		return int(i), true
	case float64:
		if i != math.Trunc(i) {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

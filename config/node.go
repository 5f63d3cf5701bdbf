// Package config wraps decoded scene configuration (JSON, YAML or TOML) in a
// Node that reads fields with documented fallbacks.
//
// Absent keys, values of the wrong shape and non-object receivers never
// fail: every accessor returns the supplied default instead.
package config

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is a read-only view over one value of a decoded configuration tree.
// The zero Node is a null value.
type Node struct {
	v any
}

// New wraps a decoded value. Maps produced by YAML decoders with non-string
// keys are normalized to map[string]any.
func New(v any) Node {
	return Node{v: normalize(v)}
}

// Raw returns the underlying decoded value.
func (n Node) Raw() any { return n.v }

// IsNull reports whether the node holds no value.
func (n Node) IsNull() bool { return n.v == nil }

// IsObject reports whether the node is a key/value object.
func (n Node) IsObject() bool {
	_, ok := n.v.(map[string]any)
	return ok
}

// IsArray reports whether the node is an array.
func (n Node) IsArray() bool {
	_, ok := n.v.([]any)
	return ok
}

// Has reports whether the node is an object containing key.
func (n Node) Has(key string) bool {
	m, ok := n.v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// Get returns the child at key, or a null Node.
func (n Node) Get(key string) Node {
	m, ok := n.v.(map[string]any)
	if !ok {
		return Node{}
	}
	return Node{v: m[key]}
}

// Keys returns the object's keys in sorted order.
func (n Node) Keys() []string {
	m, ok := n.v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Array returns the elements of an array node, or nil.
func (n Node) Array() []Node {
	a, ok := n.v.([]any)
	if !ok {
		return nil
	}
	out := make([]Node, len(a))
	for i, v := range a {
		out[i] = Node{v: v}
	}
	return out
}

// AsString returns the node's value if it is a string.
func (n Node) AsString() (string, bool) {
	s, ok := n.v.(string)
	return s, ok
}

// AsFloat returns the node's value if it is numeric.
func (n Node) AsFloat() (float32, bool) {
	return toFloat(n.v)
}

func (n Node) String(key, def string) string {
	if s, ok := n.Get(key).AsString(); ok {
		return s
	}
	return def
}

func (n Node) Bool(key string, def bool) bool {
	if b, ok := n.Get(key).v.(bool); ok {
		return b
	}
	return def
}

func (n Node) Float(key string, def float32) float32 {
	if f, ok := toFloat(n.Get(key).v); ok {
		return f
	}
	return def
}

func (n Node) Int(key string, def int) int {
	if f, ok := toFloat(n.Get(key).v); ok {
		return int(f)
	}
	return def
}

func (n Node) Vec2(key string, def mgl32.Vec2) mgl32.Vec2 {
	var out mgl32.Vec2
	if !floats(n.Get(key), out[:]) {
		return def
	}
	return out
}

func (n Node) Vec3(key string, def mgl32.Vec3) mgl32.Vec3 {
	var out mgl32.Vec3
	if !floats(n.Get(key), out[:]) {
		return def
	}
	return out
}

func (n Node) Vec4(key string, def mgl32.Vec4) mgl32.Vec4 {
	var out mgl32.Vec4
	if !floats(n.Get(key), out[:]) {
		return def
	}
	return out
}

// BVec4 reads a four-element boolean array.
func (n Node) BVec4(key string, def [4]bool) [4]bool {
	a, ok := n.Get(key).v.([]any)
	if !ok || len(a) != 4 {
		return def
	}
	var out [4]bool
	for i, v := range a {
		b, ok := v.(bool)
		if !ok {
			return def
		}
		out[i] = b
	}
	return out
}

func (n Node) GoString() string {
	return fmt.Sprintf("config.Node(%#v)", n.v)
}

// floats fills dst from an array node of exactly len(dst) numbers.
func floats(n Node, dst []float32) bool {
	a, ok := n.v.([]any)
	if !ok || len(a) != len(dst) {
		return false
	}
	for i, v := range a {
		f, ok := toFloat(v)
		if !ok {
			return false
		}
		dst[i] = f
	}
	return true
}

func toFloat(v any) (float32, bool) {
	switch x := v.(type) {
	case float64:
		return float32(x), true
	case float32:
		return x, true
	case int:
		return float32(x), true
	case int64:
		return float32(x), true
	case int32:
		return float32(x), true
	case uint64:
		return float32(x), true
	case uint32:
		return float32(x), true
	}
	return 0, false
}

func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	case []map[string]any:
		a := make([]any, len(x))
		for i, e := range x {
			a[i] = normalize(e)
		}
		return a
	}
	return v
}

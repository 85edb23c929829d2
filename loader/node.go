package loader

import (
	"fmt"
	"strings"
)

// NodeKind discriminates the three shapes a configuration value can take.
type NodeKind int

const (
	ScalarNode NodeKind = iota
	ListNode
	MapNode
)

// Node is the generic configuration tree both rule file formats decode
// into. Map keys are matched case-insensitively, ignoring spaces, dashes
// and underscores, and keep their source order.
type Node struct {
	Kind  NodeKind
	Value string  // ScalarNode
	Items []*Node // ListNode

	keys   []string // original spelling, in order
	fields map[string]*Node

	Source string // file name
	Line   int    // 0 when the format has no line information
}

// Scalar returns a scalar node.
func Scalar(v string) *Node { return &Node{Kind: ScalarNode, Value: v} }

// List returns a list node.
func List(items ...*Node) *Node { return &Node{Kind: ListNode, Items: items} }

// Map returns an empty map node.
func Map() *Node { return &Node{Kind: MapNode, fields: map[string]*Node{}} }

func normKey(k string) string {
	r := strings.NewReplacer(" ", "", "\t", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(k))
}

// Set adds or replaces key. Replacing keeps the original position.
func (n *Node) Set(key string, v *Node) {
	nk := normKey(key)
	if _, ok := n.fields[nk]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[nk] = v
}

// Keys returns map keys in source order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != MapNode {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Get returns the value of the first alias present, or nil.
func (n *Node) Get(aliases ...string) *Node {
	if n == nil || n.Kind != MapNode {
		return nil
	}
	for _, a := range aliases {
		if v, ok := n.fields[normKey(a)]; ok {
			return v
		}
	}
	return nil
}

// String returns the scalar under the first alias present.
func (n *Node) String(aliases ...string) (string, bool) {
	v := n.Get(aliases...)
	if v == nil || v.Kind != ScalarNode {
		return "", false
	}
	return v.Value, true
}

// Strings returns the value under the first alias present as a list: a
// scalar is a one-element list, a list yields its scalar items.
func (n *Node) Strings(aliases ...string) []string {
	v := n.Get(aliases...)
	if v == nil {
		return nil
	}
	switch v.Kind {
	case ScalarNode:
		if v.Value == "" {
			return nil
		}
		return []string{v.Value}
	case ListNode:
		out := make([]string, 0, len(v.Items))
		for _, it := range v.Items {
			if it.Kind == ScalarNode && it.Value != "" {
				out = append(out, it.Value)
			}
		}
		return out
	}
	return nil
}

// Bool reads a boolean under the first alias present, def when absent.
func (n *Node) Bool(def bool, aliases ...string) (bool, error) {
	s, ok := n.String(aliases...)
	if !ok {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return def, fmt.Errorf("%s: %q is not a boolean", n.Pos(), s)
}

// Pos is "file:line", or just the file when lines are unknown.
func (n *Node) Pos() string {
	if n == nil {
		return "?"
	}
	if n.Line > 0 {
		return fmt.Sprintf("%s:%d", n.Source, n.Line)
	}
	return n.Source
}

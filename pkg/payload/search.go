package payload

import (
	"strings"

	"github.com/agentstation/bankrot/pkg/constants"
)

// nestedTextKeys are read, in order, from an object found under a wanted key.
var nestedTextKeys = []string{"name", "description", "value"}

// FindDeep searches the whole tree for the first non-blank text stored under
// any of keys. Keys are tried in the given priority order; for each key the
// tree is walked depth-first in document order, checking an object's own
// entry before descending into its children. A match whose value is an
// object contributes its name, description or value text.
//
// The result is trimmed. Nesting beyond constants.MaxSearchDepth is ignored.
func (n Node) FindDeep(keys ...string) string {
	if n.Missing() {
		return ""
	}
	for _, key := range keys {
		if v := findByKey(n, key, 0); v != "" {
			return v
		}
	}
	return ""
}

func findByKey(n Node, key string, depth int) string {
	if depth > constants.MaxSearchDepth {
		return ""
	}

	switch n.kind {
	case KindObject:
		if direct, ok := n.obj.values[key]; ok && !direct.Missing() {
			if s := strings.TrimSpace(direct.Text()); s != "" {
				return s
			}
			for _, nested := range nestedTextKeys {
				if s := strings.TrimSpace(direct.Get(nested).Text()); s != "" {
					return s
				}
			}
		}
		for _, k := range n.obj.keys {
			if got := findByKey(n.obj.values[k], key, depth+1); got != "" {
				return got
			}
		}
	case KindArray:
		for _, elem := range n.arr {
			if got := findByKey(elem, key, depth+1); got != "" {
				return got
			}
		}
	}
	return ""
}

// FindDeepBool searches the tree for the first recognisable flag under any
// of keys. At each object every key is checked before descending, so the
// nearest flag wins regardless of key order.
func (n Node) FindDeepBool(keys ...string) (value bool, found bool) {
	return findBool(n, keys, 0)
}

func findBool(n Node, keys []string, depth int) (bool, bool) {
	if depth > constants.MaxSearchDepth {
		return false, false
	}

	switch n.kind {
	case KindObject:
		for _, key := range keys {
			if v, ok := n.obj.values[key]; ok {
				if b, ok := v.Bool(); ok {
					return b, true
				}
			}
		}
		for _, k := range n.obj.keys {
			if b, ok := findBool(n.obj.values[k], keys, depth+1); ok {
				return b, true
			}
		}
	case KindArray:
		for _, elem := range n.arr {
			if b, ok := findBool(elem, keys, depth+1); ok {
				return b, true
			}
		}
	}
	return false, false
}

// FirstText returns the first non-blank trimmed text among the given direct
// keys of n.
func (n Node) FirstText(keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(n.Get(key).Text()); s != "" {
			return s
		}
	}
	return ""
}

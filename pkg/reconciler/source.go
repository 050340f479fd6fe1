package reconciler

import (
	"strings"

	"github.com/agentstation/bankrot/pkg/payload"
)

// Source is one named, lazily evaluated candidate for a field value.
type Source struct {
	Name    string
	Resolve func() string
}

// Chain is an ordered list of candidates. The first non-blank value wins.
type Chain []Source

// Of builds a chain from sources.
func Of(srcs ...Source) Chain {
	return Chain(srcs)
}

// Resolve evaluates sources in order and returns the first non-blank trimmed
// value together with the name of the source that produced it. Later sources
// are not evaluated once one succeeds.
func (c Chain) Resolve() (value string, source string) {
	for _, src := range c {
		if src.Resolve == nil {
			continue
		}
		if v := strings.TrimSpace(src.Resolve()); v != "" {
			return v, src.Name
		}
	}
	return "", ""
}

// Path reads the text at a direct object path.
func Path(node payload.Node, keys ...string) Source {
	return Source{
		Name: strings.Join(keys, "."),
		Resolve: func() string {
			return node.Get(keys...).Text()
		},
	}
}

// Keys reads the first non-blank direct key of node.
func Keys(node payload.Node, keys ...string) Source {
	return Source{
		Name: strings.Join(keys, "|"),
		Resolve: func() string {
			return node.FirstText(keys...)
		},
	}
}

// Deep searches the whole tree under node for any of keys.
func Deep(node payload.Node, keys ...string) Source {
	return Source{
		Name: "deep:" + strings.Join(keys, "|"),
		Resolve: func() string {
			return node.FindDeep(keys...)
		},
	}
}

// Value is a precomputed candidate.
func Value(name, v string) Source {
	return Source{
		Name:    name,
		Resolve: func() string { return v },
	}
}

// Func wraps an arbitrary resolver.
func Func(name string, fn func() string) Source {
	return Source{Name: name, Resolve: fn}
}

// Map transforms the value of src. A blank result counts as not found.
func Map(src Source, fn func(string) string) Source {
	return Source{
		Name: src.Name,
		Resolve: func() string {
			v := strings.TrimSpace(src.Resolve())
			if v == "" {
				return ""
			}
			return fn(v)
		},
	}
}

// When accepts the value of src only if pred holds.
func When(src Source, pred func(string) bool) Source {
	return Source{
		Name: src.Name,
		Resolve: func() string {
			v := strings.TrimSpace(src.Resolve())
			if v == "" || !pred(v) {
				return ""
			}
			return v
		},
	}
}

// Named renames a source, e.g. to say which payload it reads.
func Named(name string, src Source) Source {
	src.Name = name
	return src
}

// Prefix prefixes the names of every source in the chain.
func (c Chain) Prefix(prefix string) Chain {
	out := make(Chain, len(c))
	for i, src := range c {
		src.Name = prefix + src.Name
		out[i] = src
	}
	return out
}

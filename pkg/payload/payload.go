// Package payload provides a read-only, order-preserving view over untyped
// JSON documents returned by upstream services.
//
// Every accessor is total: looking up a key that does not exist, indexing past
// the end of an array, or reading text from an object never fails and never
// panics. Callers chain accessors freely and test the final value.
//
//	root := payload.Parse(body)
//	number := root.Get("lastLegalCase", "number").Text()
//	manager := root.FindDeep("arbitrManagerFio", "arbitrationManagerName")
package payload

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/bankrot/pkg/errors"
)

// maxParseDepth bounds nesting accepted by the decoder.
const maxParseDepth = 512

// Kind identifies the JSON type of a Node.
type Kind uint8

const (
	// KindMissing marks a node that does not exist in the document.
	KindMissing Kind = iota
	// KindNull is an explicit JSON null.
	KindNull
	// KindObject is a JSON object.
	KindObject
	// KindArray is a JSON array.
	KindArray
	// KindString is a JSON string.
	KindString
	// KindNumber is a JSON number, kept as its literal text.
	KindNumber
	// KindBool is a JSON boolean.
	KindBool
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// Node is one value in a parsed document. The zero Node is missing.
type Node struct {
	kind   Kind
	scalar string
	flag   bool
	obj    *object
	arr    []Node
}

// object keeps keys in wire order so traversal is deterministic.
type object struct {
	keys   []string
	values map[string]Node
}

// Parse decodes body into a Node. Empty or malformed input yields a missing
// node; use Decode when the failure itself matters.
func Parse(body []byte) Node {
	n, err := Decode(body)
	if err != nil {
		return Node{}
	}
	return n
}

// Decode decodes body into a Node, reporting malformed input as a ParseError.
func Decode(body []byte) (Node, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Node{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	n, err := decode(dec, 0)
	if err != nil {
		return Node{}, errors.WrapParse("json", "payload", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Node{}, errors.NewParseError("json", "payload", "trailing data after document", err)
	}
	return n, nil
}

func decode(dec *json.Decoder, depth int) (Node, error) {
	if depth > maxParseDepth {
		return Node{}, errors.New("document nested too deeply")
	}

	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &object{values: make(map[string]Node)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Node{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Node{}, errors.New("object key is not a string")
				}
				value, err := decode(dec, depth+1)
				if err != nil {
					return Node{}, err
				}
				if _, seen := obj.values[key]; !seen {
					obj.keys = append(obj.keys, key)
				}
				obj.values[key] = value
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, err
			}
			return Node{kind: KindObject, obj: obj}, nil
		case '[':
			arr := []Node{}
			for dec.More() {
				value, err := decode(dec, depth+1)
				if err != nil {
					return Node{}, err
				}
				arr = append(arr, value)
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, err
			}
			return Node{kind: KindArray, arr: arr}, nil
		}
		return Node{}, errors.New("unexpected delimiter")
	case string:
		return Node{kind: KindString, scalar: t}, nil
	case json.Number:
		return Node{kind: KindNumber, scalar: t.String()}, nil
	case bool:
		return Node{kind: KindBool, flag: t}, nil
	case nil:
		return Node{kind: KindNull}, nil
	}
	return Node{}, errors.New("unexpected token")
}

// Kind returns the JSON type of the node.
func (n Node) Kind() Kind {
	return n.kind
}

// Missing reports whether the node is absent or an explicit null.
func (n Node) Missing() bool {
	return n.kind == KindMissing || n.kind == KindNull
}

// IsObject reports whether the node is a JSON object.
func (n Node) IsObject() bool {
	return n.kind == KindObject
}

// IsArray reports whether the node is a JSON array.
func (n Node) IsArray() bool {
	return n.kind == KindArray
}

// Get follows a path of object keys. Any step that is not an object with the
// key yields a missing node.
func (n Node) Get(keys ...string) Node {
	cur := n
	for _, key := range keys {
		if cur.kind != KindObject {
			return Node{}
		}
		next, ok := cur.obj.values[key]
		if !ok {
			return Node{}
		}
		cur = next
	}
	return cur
}

// Has reports whether the object has the key, even when its value is null.
func (n Node) Has(key string) bool {
	if n.kind != KindObject {
		return false
	}
	_, ok := n.obj.values[key]
	return ok
}

// Index returns the i-th array element or a missing node.
func (n Node) Index(i int) Node {
	if n.kind != KindArray || i < 0 || i >= len(n.arr) {
		return Node{}
	}
	return n.arr[i]
}

// First returns the first array element or a missing node.
func (n Node) First() Node {
	return n.Index(0)
}

// Len returns the number of array elements or object keys.
func (n Node) Len() int {
	switch n.kind {
	case KindArray:
		return len(n.arr)
	case KindObject:
		return len(n.obj.keys)
	default:
		return 0
	}
}

// Elems returns the array elements. Non-arrays have none.
func (n Node) Elems() []Node {
	if n.kind != KindArray {
		return nil
	}
	return n.arr
}

// Keys returns the object keys in document order.
func (n Node) Keys() []string {
	if n.kind != KindObject {
		return nil
	}
	return n.obj.keys
}

// Text returns the scalar text of the node: strings as-is, numbers as their
// literal and booleans as "true"/"false". Objects, arrays, null and missing
// nodes have no text.
func (n Node) Text() string {
	switch n.kind {
	case KindString, KindNumber:
		return n.scalar
	case KindBool:
		if n.flag {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Int returns the node as an integer. Numbers and numeric strings convert;
// anything else reports false.
func (n Node) Int() (int, bool) {
	switch n.kind {
	case KindNumber, KindString:
		v, err := strconv.Atoi(strings.TrimSpace(n.scalar))
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// Bool interprets the node as a flag. Booleans, the integers 0 and 1, and the
// strings "true", "false", "1" and "0" (any case) are recognised.
func (n Node) Bool() (value bool, ok bool) {
	switch n.kind {
	case KindBool:
		return n.flag, true
	case KindNumber:
		switch n.scalar {
		case "0":
			return false, true
		case "1":
			return true, true
		}
	case KindString:
		switch strings.ToLower(strings.TrimSpace(n.scalar)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return false, false
}

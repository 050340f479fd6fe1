// Package records defines the normalized rows produced for each debtor.
//
// Every field is a plain string. A field is either meaningful trimmed text,
// a placeholder such as "н/д", or empty when nothing is known.
package records

import "strings"

// Kind names the debtor category a record belongs to.
type Kind string

// Record kinds.
const (
	KindLegal  Kind = "legal"
	KindPerson Kind = "person"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Record is the behaviour shared by both record types.
type Record interface {
	// Kind reports which debtor category the record describes.
	Kind() Kind
	// Headers returns the column names in output order.
	Headers() []string
	// Values returns field values in header order.
	Values() []string
	// Field returns the addressable field behind a column name, or nil.
	Field(name string) *string
	// Blank reports whether no field carries data.
	Blank() bool
}

// column resolves header names against an ordered list of field pointers.
func column(headers []string, fields []*string, name string) *string {
	for i, h := range headers {
		if strings.EqualFold(h, name) {
			return fields[i]
		}
	}
	return nil
}

func values(fields []*string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(*f)
	}
	return out
}

func blank(fields []*string) bool {
	for _, f := range fields {
		if strings.TrimSpace(*f) != "" {
			return false
		}
	}
	return true
}

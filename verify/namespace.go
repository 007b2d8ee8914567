// Package verify provides the building blocks of a testbench: a dataflow
// graph of reactive blocks connected through ports, and the driver/monitor
// bases that tie a block to a hardware interface.
package verify

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/powlib/sim"
)

// A Namespace is an unordered bag of named attributes with pure value
// semantics: two Namespaces are equal iff they hold the same names with
// pairwise-equal values.
type Namespace map[string]interface{}

// A Transaction is a Namespace that carries data-signal values for one unit
// of protocol activity. It is created per operation and discarded after
// consumption.
type Transaction = Namespace

// IsSubsetOf determines whether every attribute of this namespace matches
// an identically named, identically valued attribute of the other.
func (n Namespace) IsSubsetOf(o Namespace) bool {
	for name, value := range n {
		other, found := o[name]
		if !found || !reflect.DeepEqual(value, other) {
			return false
		}
	}

	return true
}

// IsEqualTo determines whether this namespace is equal to the other.
func (n Namespace) IsEqualTo(o Namespace) bool {
	return n.IsSubsetOf(o) && n.Size() == o.Size()
}

// Size returns the number of attributes in the namespace.
func (n Namespace) Size() int {
	return len(n)
}

// Uint reads an attribute as an unsigned integer. It understands the value
// types that flow through interfaces: int, uint64 and known sim.Value. The
// second return value is false when the attribute is absent, nil, of
// another type, or a sim.Value with unknown bits.
func (n Namespace) Uint(name string) (uint64, bool) {
	value, found := n[name]
	if !found || value == nil {
		return 0, false
	}

	switch v := value.(type) {
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case uint64:
		return v, true
	case sim.Value:
		return v.Uint()
	}

	return 0, false
}

// String renders the namespace with its attributes in name order.
func (n Namespace) String() string {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Namespace(")
	for _, name := range names {
		fmt.Fprintf(&sb, "(%s=%v)", name, n[name])
	}
	sb.WriteString(")")

	return sb.String()
}

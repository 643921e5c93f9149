package interop

import (
	"strings"

	"github.com/rubiojr/sandscript/scope"
	"github.com/rubiojr/sandscript/types"
)

// Signature identifies a method by name and ordered parameter types.
//
// Equality is wildcard tolerant: a types.Variable parameter on either side
// matches any type at that position. Because of that, Signature is not a
// valid map key; method tables use scope.Scope with SignatureKeyer, which
// hashes by name only and compares bucket entries with Equal.
type Signature struct {
	Name   string
	Params []types.Provider
}

// NewSignature builds a signature.
func NewSignature(name string, params ...types.Provider) Signature {
	return Signature{Name: name, Params: params}
}

// Equal reports whether s and o identify the same method.
func (s Signature) Equal(o Signature) bool {
	if s.Name != o.Name || len(s.Params) != len(o.Params) {
		return false
	}
	for i, p := range s.Params {
		q := o.Params[i]
		if p == types.Variable || q == types.Variable {
			continue
		}
		if p != q {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	sb.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p == nil {
			sb.WriteString("?")
			continue
		}
		sb.WriteString(p.Name())
	}
	sb.WriteByte(')')
	return sb.String()
}

// SignatureKeyer lets signatures key a scope.Scope.
type SignatureKeyer struct{}

func (SignatureKeyer) Hash(s Signature) uint64   { return scope.HashString(s.Name) }
func (SignatureKeyer) Equal(a, b Signature) bool { return a.Equal(b) }

// MethodScope is the method-resolution environment shared by the analyzer
// and the interpreter.
type MethodScope = scope.Chain[Signature, *Method]

// NewMethodScope creates a method chain whose root holds every registered
// native method.
func NewMethodScope() *MethodScope {
	c := scope.NewChain[Signature, *Method](SignatureKeyer{})
	for _, m := range Methods() {
		c.Root().SetLocal(m.Signature(), m)
	}
	return c
}

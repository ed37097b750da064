// Package types implements the closed algebraic type lattice used by the
// analyzer for inference and diagnostics (language spec §3.2, §4.1); the
// evaluator does not use it. Unlike funxy's typesystem (Hindley-Milner with type
// variables, kinds, and row polymorphism), Uguisu's lattice is closed and
// carries no inference machinery beyond two incomplete-state placeholders —
// but the shape (a small interface with a String() method, one struct per
// variant, dispatched with a type switch) follows funxy's
// internal/typesystem/types.go.
package types

import (
	"fmt"
	"strings"
)

// Type is the interface every type variant implements.
type Type interface {
	// String renders the type for diagnostics (spec.md §4.1 typeString).
	String() string
	typeNode()
}

// Invalid is produced after an error; it absorbs further errors instead of
// cascading them (spec.md §3.2).
type Invalid struct{}

func (Invalid) String() string { return "?" }
func (Invalid) typeNode()      {}

// Unresolved is a placeholder while inference is pending.
type Unresolved struct{}

func (Unresolved) String() string { return "?" }
func (Unresolved) typeNode()      {}

// Any is the element type of arrays; compatible with every concrete type
// except Void.
type Any struct{}

func (Any) String() string { return "any" }
func (Any) typeNode()      {}

// Void is the absence of a value (a statement, or a call with no return).
type Void struct{}

func (Void) String() string { return "void" }
func (Void) typeNode()      {}

// Never is the type of an expression that cannot complete normally
// (diverges via return or break); compatible with everything.
type Never struct{}

func (Never) String() string { return "never" }
func (Never) typeNode()      {}

// Named is a primitive (number, bool, char, string, array) or a user struct,
// optionally parameterized (array carries one type parameter: its erased
// Any element type, kept only for display — see ArrayType).
type Named struct {
	Name       string
	TypeParams []Type
}

func (n Named) String() string {
	if len(n.TypeParams) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.TypeParams))
	for i, p := range n.TypeParams {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s<%s>", n.Name, strings.Join(parts, ", "))
}
func (Named) typeNode() {}

// Function is a function (or method) signature.
type Function struct {
	IsMethod   bool
	ParamTypes []Type
	ReturnType Type
}

func (f Function) String() string {
	parts := make([]string, len(f.ParamTypes))
	for i, p := range f.ParamTypes {
		parts[i] = p.String()
	}
	ret := "?"
	if f.ReturnType != nil {
		ret = f.ReturnType.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), ret)
}
func (Function) typeNode() {}

// Built-in primitive type names (spec.md §3.2); array is Named{Name: "array"}
// with the element type erased to Any per §3.2/§9.
const (
	Number = "number"
	Bool   = "bool"
	Char   = "char"
	String = "string"
	Array  = "array"
)

// NumberType, BoolType, CharType, StringType are convenience constructors
// for the built-in primitives.
func NumberType() Type { return Named{Name: Number} }
func BoolType() Type   { return Named{Name: Bool} }
func CharType() Type   { return Named{Name: Char} }
func StringType() Type { return Named{Name: String} }

// ArrayType returns the array type with its element type erased to Any, as
// spec.md §9 describes ("the `any` element type is unchecked").
func ArrayType() Type { return Named{Name: Array, TypeParams: []Type{Any{}}} }

// IsArray reports whether t is the array named type.
func IsArray(t Type) bool {
	n, ok := t.(Named)
	return ok && n.Name == Array
}

// IsStruct reports whether t is a user struct: a Named type whose name is
// not one of the five built-in primitive names.
func IsStruct(t Type) bool {
	n, ok := t.(Named)
	if !ok {
		return false
	}
	switch n.Name {
	case Number, Bool, Char, String, Array:
		return false
	default:
		return true
	}
}

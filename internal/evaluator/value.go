// Package evaluator implements the tree-walking runtime (language spec §3.5,
// §4.4): Value variants, the Environment[*Slot] binding scheme, and
// evaluation of a SourceFile's main entry point. It mirrors internal/analyzer's
// type-switch dispatch style, grounded on funxy's internal/evaluator/evaluator.go
// and object.go/object_primitives.go (an Object sum type with a type switch
// per AST node kind), generalized to Uguisu's own value set.
package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uguisu-dev/uguisu-sub001/internal/ast"
)

// Value is the interface every runtime value variant implements.
type Value interface {
	valueNode()
	String() string
}

// None is the "no value" result: what statements, void built-ins and a
// diverging sub-expression evaluate to, and what MustGet reports for an
// unassigned Slot. A VariableDecl without an initializer does not store None;
// it leaves its Slot empty, and reading it is a runtime error (language spec
// §3.5).
type None struct{}

func (None) valueNode()     {}
func (None) String() string { return "none" }

// Number is the number value (float64, per language spec §3.5).
type Number struct{ V float64 }

func (Number) valueNode() {}
func (n Number) String() string {
	return strconv.FormatFloat(n.V, 'g', -1, 64)
}

// Bool is the boolean value.
type Bool struct{ V bool }

func (Bool) valueNode()     {}
func (b Bool) String() string { return strconv.FormatBool(b.V) }

// Char is a character value holding one Unicode code point.
type Char struct{ V string }

func (Char) valueNode()     {}
func (c Char) String() string { return c.V }

// String is the string value.
type String struct{ V string }

func (String) valueNode()     {}
func (s String) String() string { return s.V }

// Struct is an ordered-map[name→*Slot] instance of a declared struct type.
// It is held by reference (a pointer to Struct), so assigning through one
// alias is visible through every other alias — language spec scenario 3
// ("Mutable struct aliasing").
type Struct struct {
	TypeName string
	Order    []string
	Values   map[string]*Slot
}

func NewStruct(typeName string, order []string) *Struct {
	s := &Struct{TypeName: typeName, Order: append([]string(nil), order...), Values: make(map[string]*Slot)}
	for _, name := range order {
		s.Values[name] = &Slot{}
	}
	return s
}

func (*Struct) valueNode() {}
func (s *Struct) String() string {
	parts := make([]string, 0, len(s.Order))
	for _, name := range s.Order {
		parts = append(parts, fmt.Sprintf("%s: %s", name, s.Values[name].MustGet().String()))
	}
	return fmt.Sprintf("%s{%s}", s.TypeName, strings.Join(parts, ", "))
}

// Array is a resizable, reference-held list of values with an erased `any`
// element type (language spec §3.5/§9 — elements are unchecked).
type Array struct {
	Items []Value
}

func NewArray(items []Value) *Array { return &Array{Items: items} }

func (*Array) valueNode() {}
func (a *Array) String() string {
	parts := make([]string, len(a.Items))
	for i, v := range a.Items {
		parts[i] = v.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

// StructType is the runtime binding for a declared struct name: just enough
// to construct instances (field order) when a StructExpr names it. It is
// never itself a value an expression can produce — the analyzer rejects a
// bare struct name used as an expression (language spec §4.3) — so evalExpr
// never has to handle it.
type StructType struct {
	Name       string
	FieldOrder []string
}

func (*StructType) valueNode()       {}
func (s *StructType) String() string { return fmt.Sprintf("struct %s", s.Name) }

// Function is a user-declared function value: its AST and the environment
// captured at the point of declaration (language spec §3.5's "captured
// environment snapshot" — the only structural cycle the runtime creates,
// since Env may eventually point back to a frame holding this very Function).
type Function struct {
	Decl *ast.FunctionDecl
	Env  *Environment
}

func (*Function) valueNode()       {}
func (f *Function) String() string { return fmt.Sprintf("fn %s(...)", f.Decl.Name) }

// NativeFunc is a host-provided function (language spec §6); Handler runs
// with already-evaluated arguments and returns a Value or a host error.
type NativeFunc struct {
	Name    string
	Handler func(e *Evaluator, args []Value) (Value, error)
}

func (*NativeFunc) valueNode()       {}
func (n *NativeFunc) String() string { return fmt.Sprintf("native fn %s(...)", n.Name) }

// Slot wraps an optional value: empty until the variable/field's first
// assignment, per language spec §3.5 ("A Slot wraps an optional value and
// models a declared-but-unassigned binding").
type Slot struct {
	value Value
	set   bool
}

// NewSlot creates an already-assigned slot.
func NewSlot(v Value) *Slot { return &Slot{value: v, set: true} }

// Get returns the slot's value, or ok=false if it was never assigned.
func (s *Slot) Get() (Value, bool) { return s.value, s.set }

// MustGet returns the slot's value, or None if it was never assigned. Used
// where an unassigned slot needs no error of its own (struct field
// formatting and YAML conversion).
func (s *Slot) MustGet() Value {
	if !s.set {
		return None{}
	}
	return s.value
}

// Set assigns v, marking the slot defined.
func (s *Slot) Set(v Value) { s.value = v; s.set = true }

// Symbol variants (language spec §3.3), mirroring the closed-interface sum
// type idiom internal/types uses for Type, rather than funxy's single
// Symbol struct with a Kind enum (internal/symbols/symbol_table_core.go in
// the funxy pack) — the spec names five genuinely distinct shapes and Go's
// sum-via-interface keeps each one's fields honest instead of leaving unused
// fields on a catch-all struct.
package symbols

import "github.com/uguisu-dev/uguisu-sub001/internal/types"

// Symbol is the interface every symbol variant implements.
type Symbol interface {
	symbolNode()
}

// Param is a function parameter's declared name (type is carried on the
// Fn/NativeFn symbol's Function type, not duplicated here).
type Param struct {
	Name string
}

// FnVar is the element type of Fn.Vars, a local variable declared inside a
// function body (language spec §3.3). The analyzer does not populate
// Fn.Vars; it stays empty.
type FnVar struct {
	Name string
	Ty   types.Type
}

// Fn is a user-declared function. Ty is Unresolved until pass 2 resolves its
// signature, Invalid if resolution failed.
type Fn struct {
	Params []Param
	Ty     types.Type
	Vars   []FnVar
}

func (*Fn) symbolNode() {}

// NativeFn is a host-provided built-in function (language spec §6).
type NativeFn struct {
	Params []Param
	Ty     types.Type
}

func (*NativeFn) symbolNode() {}

// Struct is a user-declared struct type. Fields preserves declaration order
// (spec.md §3.3: "ordered-map[name→Symbol]").
//
// IsNamespace marks the synthetic structs the built-in surface installs
// (spec.md §6: "grouped into pseudo-struct bindings ... whose fields are
// native function values") — these are usable as a plain value (so
// `number.parse` resolves via ordinary FieldAccess analysis) unlike a real
// StructDecl name, which is a type and an error to reference as a bare
// expression.
type Struct struct {
	Name        string
	Fields      *FieldMap
	IsNamespace bool
}

func (*Struct) symbolNode() {}

// Variable is a local variable or struct field binding.
type Variable struct {
	Ty        types.Type
	IsDefined bool
}

func (*Variable) symbolNode() {}

// Expr is attached to call sites and binary-op nodes so the evaluator and
// tests can read the type the analyzer inferred for that expression.
type Expr struct {
	Ty types.Type
}

func (*Expr) symbolNode() {}

// FieldMap is an insertion-ordered name→Symbol map, used for struct fields.
type FieldMap struct {
	order []string
	byKey map[string]Symbol
}

// NewFieldMap creates an empty FieldMap.
func NewFieldMap() *FieldMap {
	return &FieldMap{byKey: make(map[string]Symbol)}
}

// Set inserts or overwrites the symbol bound to name, recording insertion
// order the first time name is seen.
func (m *FieldMap) Set(name string, sym Symbol) {
	if _, exists := m.byKey[name]; !exists {
		m.order = append(m.order, name)
	}
	m.byKey[name] = sym
}

// Get looks up name.
func (m *FieldMap) Get(name string) (Symbol, bool) {
	sym, ok := m.byKey[name]
	return sym, ok
}

// Has reports whether name is bound.
func (m *FieldMap) Has(name string) bool {
	_, ok := m.byKey[name]
	return ok
}

// Names returns field names in declaration order.
func (m *FieldMap) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of fields.
func (m *FieldMap) Len() int { return len(m.order) }

package symbols

import "github.com/uguisu-dev/uguisu-sub001/internal/ast"

// Table is the analyzer's symbol table: AST node → symbol (spec.md §2, §4.3).
// It is separate from the scoped Environment: the Environment resolves a
// *name* to a symbol during analysis, while Table remembers, for every
// declaration/call/binary-op node the analyzer touched, which symbol it
// resolved to — so the evaluator (and tests) can re-read that decision
// without re-running analysis.
type Table struct {
	byNode map[ast.Node]Symbol
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{byNode: make(map[ast.Node]Symbol)}
}

// Bind records the symbol resolved for node; re-binding the same node
// overwrites. Pass 2 does not re-bind: it fills in the Unresolved type on the
// symbol pass 1 bound.
func (t *Table) Bind(node ast.Node, sym Symbol) {
	t.byNode[node] = sym
}

// Lookup returns the symbol bound to node, if any.
func (t *Table) Lookup(node ast.Node) (Symbol, bool) {
	sym, ok := t.byNode[node]
	return sym, ok
}

// Len returns the number of bound nodes.
func (t *Table) Len() int { return len(t.byNode) }

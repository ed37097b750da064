// Package analyzer implements the multi-pass semantic analyzer (language spec
// §2, §4.2, §4.3): declare, resolve, then analyze each function body. It is
// grounded on funxy's internal/analyzer package (analyzer.go + declarations.go
// + inference.go + statements.go), which walks the AST with a type switch
// per node kind and accumulates *diagnostics.DiagnosticError values rather
// than stopping at the first error, so a single run surfaces every problem in
// a program the way funxy's analyzer_errors_test.go exercises it.
package analyzer

import (
	"github.com/uguisu-dev/uguisu-sub001/internal/ast"
	"github.com/uguisu-dev/uguisu-sub001/internal/builtins"
	"github.com/uguisu-dev/uguisu-sub001/internal/diagnostics"
	"github.com/uguisu-dev/uguisu-sub001/internal/symbols"
	"github.com/uguisu-dev/uguisu-sub001/internal/types"
)

// Analyzer holds the state threaded across all three passes for one file.
type Analyzer struct {
	Env   *symbols.Environment[symbols.Symbol]
	Table *symbols.Table

	errors   []*diagnostics.DiagnosticError
	warnings []*diagnostics.DiagnosticError

	currentReturnType types.Type
	loopDepth         int
	warnedArrayElem   bool
}

// New creates an Analyzer with the built-in surface installed at the root
// frame of a fresh Environment.
func New() *Analyzer {
	a := &Analyzer{
		Env:   symbols.NewEnvironment[symbols.Symbol](),
		Table: symbols.NewTable(),
	}
	a.installPrelude()
	return a
}

// installPrelude binds the host surface (language spec §6) into the root
// frame: one native function per top-level entry, one namespace pseudo-struct
// per grouped entry. Namespace struct names are prefixed with "$" so they
// can never collide with a primitive type name or a user struct name — see
// DESIGN.md for why that prefix is safe (identifiers can't start with it).
func (a *Analyzer) installPrelude() {
	fieldsByNamespace := map[string]*symbols.FieldMap{}
	for _, ns := range builtins.Namespaces() {
		fieldsByNamespace[ns] = symbols.NewFieldMap()
	}
	for _, e := range builtins.Catalogue() {
		sig := e.Signature()
		if e.Namespace == "" {
			a.Env.Set(e.Name, &symbols.NativeFn{Ty: sig})
			continue
		}
		fieldsByNamespace[e.Namespace].Set(e.Name, &symbols.Variable{Ty: sig, IsDefined: true})
	}
	for _, ns := range builtins.Namespaces() {
		a.Env.Set(ns, &symbols.Struct{
			Name:        "$" + ns,
			Fields:      fieldsByNamespace[ns],
			IsNamespace: true,
		})
	}
}

// Result is the outcome of analyzing one file (language spec §4.2/§7).
type Result struct {
	Success  bool
	Errors   []*diagnostics.DiagnosticError
	Warnings []*diagnostics.DiagnosticError
}

// AnalyzeFile runs all three passes over file and returns the accumulated
// diagnostics. The Environment is guaranteed to be back at its root frame
// (depth 1) when this returns, whether or not errors were found.
func (a *Analyzer) AnalyzeFile(file *ast.SourceFile) *Result {
	a.declare(file)
	a.resolve(file)
	a.analyzeBodies(file)

	return &Result{
		Success:  len(a.errors) == 0,
		Errors:   a.errors,
		Warnings: a.warnings,
	}
}

// errAt records a positioned error.
func (a *Analyzer) errAt(code diagnostics.ErrorCode, node ast.Node, format string, args ...any) {
	a.errors = append(a.errors, diagnostics.New(code, node.Pos(), format, args...))
}

// warnAt records a positioned warning.
func (a *Analyzer) warnAt(code diagnostics.ErrorCode, node ast.Node, format string, args ...any) {
	a.warnings = append(a.warnings, diagnostics.New(code, node.Pos(), format, args...))
}

// warn records a warning with no source position (e.g. the once-per-run
// array-element warning).
func (a *Analyzer) warn(code diagnostics.ErrorCode, format string, args ...any) {
	a.warnings = append(a.warnings, diagnostics.NewWithoutPos(code, format, args...))
}

// lookupStruct resolves a Named type to the Struct symbol it names, if any.
// A namespace type ("$number") is looked up under its bare binding name.
func (a *Analyzer) lookupStruct(t types.Type) (*symbols.Struct, bool) {
	named, ok := t.(types.Named)
	if !ok {
		return nil, false
	}
	name := named.Name
	if len(name) > 0 && name[0] == '$' {
		name = name[1:]
	}
	sym, ok := a.Env.Get(name)
	if !ok {
		return nil, false
	}
	st, ok := sym.(*symbols.Struct)
	return st, ok
}

// combineBranches merges the types of two branches of a conditional: a
// diverging (Never) branch defers entirely to the other; otherwise the two
// must be compatible, and the left side's type is reported as the result.
func combineBranches(left, right types.Type) (types.Type, bool) {
	if _, ok := left.(types.Never); ok {
		return right, true
	}
	if _, ok := right.(types.Never); ok {
		return left, true
	}
	if types.Compare(left, right) == types.Incompatible {
		return types.Invalid{}, false
	}
	return left, true
}

// isIncompleteType reports whether t is Invalid or Unresolved — used to
// suppress redundant cascading errors once a value is already known-bad.
func isIncompleteType(t types.Type) bool {
	switch t.(type) {
	case types.Invalid, types.Unresolved:
		return true
	default:
		return false
	}
}

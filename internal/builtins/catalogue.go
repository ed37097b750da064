// Package builtins is the shared, pure-data catalogue of the host surface
// (language spec §6): the namespace/name/signature table both the analyzer
// (to seed its prelude Environment[Symbol]) and the evaluator (to seed its
// prelude Environment[Value] with matching handlers) build from. It depends
// only on internal/types so neither of those packages has to depend on the
// other to share this list — grounded on funxy's internal/evaluator/builtins.go,
// which hangs every native function off one flat registration table keyed by
// name.
package builtins

import "github.com/uguisu-dev/uguisu-sub001/internal/types"

// Entry describes one host-provided function. Namespace is "" for the rare
// top-level name (getUnixtime); every other entry hangs off a pseudo-struct
// namespace (number, char, string, array, console, uuid, yaml) whose fields
// are its members, per spec.md §6 ("grouped into pseudo-struct bindings").
type Entry struct {
	Namespace string
	Name      string
	Params    []types.Type
	Return    types.Type
}

// FullName renders the dotted name a diagnostic or doc would use.
func (e Entry) FullName() string {
	if e.Namespace == "" {
		return e.Name
	}
	return e.Namespace + "." + e.Name
}

// Signature builds the Function type the analyzer binds for this entry.
func (e Entry) Signature() types.Function {
	return types.Function{ParamTypes: e.Params, ReturnType: e.Return}
}

func num() types.Type { return types.NumberType() }
func bl() types.Type  { return types.BoolType() }
func ch() types.Type  { return types.CharType() }
func str() types.Type { return types.StringType() }
func arr() types.Type { return types.ArrayType() }
func void() types.Type { return types.Void{} }
func any_() types.Type { return types.Any{} }

// Catalogue returns the full built-in surface: the core table from spec.md §6
// plus the domain-stack additions wired in from the retrieval pack (uuid,
// yaml, console.isInteractive — see SPEC_FULL.md's DOMAIN STACK section).
func Catalogue() []Entry {
	return []Entry{
		{"number", "parse", []types.Type{str()}, num()},
		{"number", "toString", []types.Type{num()}, str()},
		{"number", "assertEq", []types.Type{num(), num()}, void()},

		{"char", "fromNumber", []types.Type{num()}, ch()},
		{"char", "toNumber", []types.Type{ch()}, num()},
		{"char", "toString", []types.Type{ch()}, str()},

		{"string", "concat", []types.Type{str(), str()}, str()},
		{"string", "fromChars", []types.Type{arr()}, str()},
		{"string", "fromArray", []types.Type{arr()}, str()},
		{"string", "toChars", []types.Type{str()}, arr()},
		{"string", "toArray", []types.Type{str()}, arr()},
		{"string", "assertEq", []types.Type{str(), str()}, void()},

		{"array", "insert", []types.Type{arr(), num(), any_()}, void()},
		{"array", "add", []types.Type{arr(), any_()}, void()},
		{"array", "removeAt", []types.Type{arr(), num()}, void()},
		{"array", "count", []types.Type{arr()}, num()},

		{"console", "write", []types.Type{str()}, void()},
		{"console", "writeNum", []types.Type{num()}, void()},
		{"console", "read", nil, str()},
		{"console", "isInteractive", nil, bl()},

		{"uuid", "v4", nil, str()},
		{"yaml", "stringify", []types.Type{any_()}, str()},
		{"yaml", "parse", []types.Type{str()}, any_()},

		{"", "getUnixtime", nil, num()},
	}
}

// Namespaces returns the distinct non-empty namespace names in Catalogue
// order (insertion order of first appearance).
func Namespaces() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range Catalogue() {
		if e.Namespace == "" || seen[e.Namespace] {
			continue
		}
		seen[e.Namespace] = true
		out = append(out, e.Namespace)
	}
	return out
}

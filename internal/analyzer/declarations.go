package analyzer

import (
	"github.com/uguisu-dev/uguisu-sub001/internal/ast"
	"github.com/uguisu-dev/uguisu-sub001/internal/diagnostics"
	"github.com/uguisu-dev/uguisu-sub001/internal/symbols"
	"github.com/uguisu-dev/uguisu-sub001/internal/types"
)

// declare is pass 1 (language spec §4.2): register a Symbol for every
// top-level FunctionDecl/StructDecl with an Unresolved signature, so forward
// references and mutual recursion resolve in pass 2/3 regardless of
// declaration order. Duplicate top-level names are rejected here.
func (a *Analyzer) declare(file *ast.SourceFile) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			if a.Env.HasLocal(d.Name) {
				a.errAt(diagnostics.DuplicateDecl, d, "duplicate declaration of '%s'", d.Name)
				continue
			}
			params := make([]symbols.Param, len(d.Params))
			for i, p := range d.Params {
				params[i] = symbols.Param{Name: p.Name}
			}
			sym := &symbols.Fn{Params: params, Ty: types.Unresolved{}}
			a.Env.Set(d.Name, sym)
			a.Table.Bind(d, sym)
			if d.Exported {
				a.warnAt(diagnostics.WarnExportUnsupported, d, "exported function '%s' is not supported yet", d.Name)
			}
		case *ast.StructDecl:
			if a.Env.HasLocal(d.Name) {
				a.errAt(diagnostics.DuplicateDecl, d, "duplicate declaration of '%s'", d.Name)
				continue
			}
			fields := symbols.NewFieldMap()
			for _, f := range d.Fields {
				// IsDefined: true — struct fields are always present once a
				// value of the struct exists; use-before-assign only applies
				// to local variables, not fields (spec.md §3.3).
				fields.Set(f.Name, &symbols.Variable{Ty: types.Unresolved{}, IsDefined: true})
			}
			sym := &symbols.Struct{Name: d.Name, Fields: fields}
			a.Env.Set(d.Name, sym)
			a.Table.Bind(d, sym)
			if d.Exported {
				a.warnAt(diagnostics.WarnExportUnsupported, d, "exported struct '%s' is not supported yet", d.Name)
			}
		}
	}
}

// resolve is pass 2: turn every TyLabel into a types.Type, replacing the
// Unresolved placeholders pass 1 left on Fn and struct-field symbols.
func (a *Analyzer) resolve(file *ast.SourceFile) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			sym, _ := a.Table.Lookup(d)
			fnSym, ok := sym.(*symbols.Fn)
			if !ok {
				continue
			}
			paramTypes := make([]types.Type, len(d.Params))
			for i, p := range d.Params {
				if p.Ty == nil {
					a.errAt(diagnostics.MissingParamType, d, "parameter '%s' has no declared type", p.Name)
					paramTypes[i] = types.Invalid{}
					continue
				}
				paramTypes[i] = a.resolveTyLabel(p.Ty)
			}
			returnType := types.Type(types.Void{})
			if d.ReturnTy != nil {
				returnType = a.resolveTyLabel(d.ReturnTy)
			}
			fnSym.Ty = types.Function{ParamTypes: paramTypes, ReturnType: returnType}
		case *ast.StructDecl:
			sym, _ := a.Table.Lookup(d)
			stSym, ok := sym.(*symbols.Struct)
			if !ok {
				continue
			}
			for _, f := range d.Fields {
				fieldSym, _ := stSym.Fields.Get(f.Name)
				v, ok := fieldSym.(*symbols.Variable)
				if !ok {
					continue
				}
				v.Ty = a.resolveTyLabel(f.Ty)
			}
		}
	}
}

// resolveTyLabel turns a *ast.TyLabel into a types.Type: one of the five
// built-in primitive names, or the name of a previously declared struct.
func (a *Analyzer) resolveTyLabel(label *ast.TyLabel) types.Type {
	switch label.Name {
	case types.Number:
		return types.NumberType()
	case types.Bool:
		return types.BoolType()
	case types.Char:
		return types.CharType()
	case types.String:
		return types.StringType()
	case types.Array:
		return types.ArrayType()
	default:
		sym, ok := a.Env.Get(label.Name)
		if !ok {
			a.errAt(diagnostics.UnknownTypeName, label, "unknown type '%s'", label.Name)
			return types.Invalid{}
		}
		st, ok := sym.(*symbols.Struct)
		if !ok || st.IsNamespace {
			a.errAt(diagnostics.InvalidTypeName, label, "'%s' is not a type", label.Name)
			return types.Invalid{}
		}
		return types.Named{Name: st.Name}
	}
}

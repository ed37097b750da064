package analyzer

import (
	"unicode/utf8"

	"github.com/uguisu-dev/uguisu-sub001/internal/ast"
	"github.com/uguisu-dev/uguisu-sub001/internal/diagnostics"
	"github.com/uguisu-dev/uguisu-sub001/internal/symbols"
	"github.com/uguisu-dev/uguisu-sub001/internal/types"
)

// analyzeExpr dispatches an expression node to its type rule (language spec
// §4.3/§4.4).
func (a *Analyzer) analyzeExpr(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return types.NumberType()
	case *ast.BoolLiteral:
		return types.BoolType()
	case *ast.CharLiteral:
		return a.analyzeCharLiteral(e)
	case *ast.StringLiteral:
		return types.StringType()
	case *ast.Identifier:
		return a.analyzeIdentifier(e)
	case *ast.FieldAccess:
		return a.analyzeFieldAccess(e)
	case *ast.IndexAccess:
		return a.analyzeIndexAccess(e)
	case *ast.Call:
		return a.analyzeCall(e)
	case *ast.BinaryOp:
		return a.analyzeBinaryOp(e)
	case *ast.UnaryOp:
		return a.analyzeUnaryOp(e)
	case *ast.StructExpr:
		return a.analyzeStructExpr(e)
	case *ast.ArrayNode:
		return a.analyzeArrayNode(e)
	case *ast.IfExpr:
		return a.analyzeIfExpr(e)
	default:
		return types.Invalid{}
	}
}

func (a *Analyzer) analyzeCharLiteral(e *ast.CharLiteral) types.Type {
	if utf8.RuneCountInString(e.Value) != 1 {
		a.errAt(diagnostics.InvalidCharLiteral, e, "a char literal must contain exactly one character, found %q", e.Value)
		return types.Invalid{}
	}
	return types.CharType()
}

func (a *Analyzer) analyzeIdentifier(e *ast.Identifier) types.Type {
	sym, ok := a.Env.Get(e.Name)
	if !ok {
		a.errAt(diagnostics.UnknownIdentifier, e, "unknown identifier '%s'", e.Name)
		return types.Invalid{}
	}
	switch s := sym.(type) {
	case *symbols.Variable:
		if !s.IsDefined {
			a.errAt(diagnostics.UseBeforeAssign, e, "variable is not assigned yet.")
			return types.Invalid{}
		}
		return s.Ty
	case *symbols.Fn:
		return s.Ty
	case *symbols.NativeFn:
		return s.Ty
	case *symbols.Struct:
		if s.IsNamespace {
			return types.Named{Name: s.Name}
		}
		a.errAt(diagnostics.UnknownIdentifier, e, "'%s' is a type, not a value", e.Name)
		return types.Invalid{}
	default:
		return types.Invalid{}
	}
}

func (a *Analyzer) analyzeFieldAccess(e *ast.FieldAccess) types.Type {
	targetTy := a.analyzeExpr(e.Target)
	if !types.IsStruct(targetTy) {
		if !isIncompleteType(targetTy) {
			a.errAt(diagnostics.UnknownField, e, "type '%s' has no field '%s'", targetTy, e.Name)
		}
		return types.Invalid{}
	}
	st, ok := a.lookupStruct(targetTy)
	if !ok {
		return types.Invalid{}
	}
	fieldSym, ok := st.Fields.Get(e.Name)
	if !ok {
		a.errAt(diagnostics.UnknownField, e, "struct '%s' has no field '%s'", st.Name, e.Name)
		return types.Invalid{}
	}
	v := fieldSym.(*symbols.Variable)
	a.Table.Bind(e, v)
	return v.Ty
}

func (a *Analyzer) analyzeIndexAccess(e *ast.IndexAccess) types.Type {
	targetTy := a.analyzeExpr(e.Target)
	if !types.IsArray(targetTy) && !isIncompleteType(targetTy) {
		a.errAt(diagnostics.TypeMismatch, e, "type mismatched. expected 'array', found '%s'", targetTy)
	}

	idxTy := a.analyzeExpr(e.Index)
	if !types.SupportsIndex(idxTy) && !isIncompleteType(idxTy) {
		a.errAt(diagnostics.TypeMismatch, e.Index, "type mismatched. expected 'number', found '%s'", idxTy)
	}

	if !a.warnedArrayElem {
		a.warnedArrayElem = true
		a.warn(diagnostics.WarnArrayElemUnchecked, "array element access is not type-checked; the resulting value has type 'any'")
	}

	elemSym := &symbols.Variable{Ty: types.Any{}, IsDefined: true}
	a.Table.Bind(e, elemSym)
	return types.Any{}
}

func (a *Analyzer) analyzeCall(e *ast.Call) types.Type {
	var calleeTy types.Type

	if ident, ok := e.Callee.(*ast.Identifier); ok {
		sym, ok := a.Env.Get(ident.Name)
		if !ok {
			a.errAt(diagnostics.UnknownIdentifier, ident, "unknown identifier '%s'", ident.Name)
			calleeTy = types.Invalid{}
		} else if st, ok := sym.(*symbols.Struct); ok && !st.IsNamespace {
			a.errAt(diagnostics.StructNotCallable, e, "'%s' is not callable", ident.Name)
			calleeTy = types.Invalid{}
		} else {
			switch s := sym.(type) {
			case *symbols.Fn:
				calleeTy = s.Ty
			case *symbols.NativeFn:
				calleeTy = s.Ty
			case *symbols.Variable:
				if !s.IsDefined {
					a.errAt(diagnostics.UseBeforeAssign, ident, "variable is not assigned yet.")
					calleeTy = types.Invalid{}
				} else {
					calleeTy = s.Ty
				}
			default:
				calleeTy = types.Invalid{}
			}
		}
	} else {
		calleeTy = a.analyzeExpr(e.Callee)
	}

	fnTy, ok := calleeTy.(types.Function)
	if !ok {
		if !isIncompleteType(calleeTy) {
			a.errAt(diagnostics.InvalidCallee, e, "cannot call a value of type '%s'", calleeTy)
		}
		for _, arg := range e.Args {
			a.analyzeExpr(arg)
		}
		return types.Invalid{}
	}

	if len(e.Args) != len(fnTy.ParamTypes) {
		a.errAt(diagnostics.ArgCountMismatch, e, "expected %d argument(s), found %d", len(fnTy.ParamTypes), len(e.Args))
	}
	for i, argExpr := range e.Args {
		argTy := a.analyzeExpr(argExpr)
		if types.Compare(argTy, types.Void{}) == types.Compatible {
			a.errAt(diagnostics.VoidAsExpression, argExpr, "cannot pass a void value as an argument")
		}
		if i < len(fnTy.ParamTypes) && types.Compare(argTy, fnTy.ParamTypes[i]) == types.Incompatible {
			a.errAt(diagnostics.TypeMismatch, argExpr, "type mismatched. expected '%s', found '%s'", fnTy.ParamTypes[i], argTy)
		}
	}

	a.Table.Bind(e, &symbols.Expr{Ty: fnTy.ReturnType})
	return fnTy.ReturnType
}

func (a *Analyzer) analyzeBinaryOp(e *ast.BinaryOp) types.Type {
	leftTy := a.analyzeExpr(e.Left)
	rightTy := a.analyzeExpr(e.Right)

	checkOperand := func(t types.Type, node ast.Node) bool {
		if _, ok := t.(types.Void); ok {
			a.errAt(diagnostics.VoidAsExpression, node, "cannot use a void value in an expression")
			return false
		}
		return true
	}
	leftOK := checkOperand(leftTy, e.Left)
	rightOK := checkOperand(rightTy, e.Right)

	var resultTy types.Type

	switch e.Operator {
	case ast.OpAnd, ast.OpOr:
		if leftOK && !types.SupportsLogical(leftTy) && !isIncompleteType(leftTy) {
			a.errAt(diagnostics.TypeMismatch, e.Left, "type mismatched. expected 'bool', found '%s'", leftTy)
		}
		if rightOK && !types.SupportsLogical(rightTy) && !isIncompleteType(rightTy) {
			a.errAt(diagnostics.TypeMismatch, e.Right, "type mismatched. expected 'bool', found '%s'", rightTy)
		}
		resultTy = types.BoolType()

	case ast.OpEq, ast.OpNe:
		if types.IsStruct(leftTy) || types.IsStruct(rightTy) {
			a.errAt(diagnostics.TypeMismatch, e, "struct values are not comparable with '=='/'!='")
		} else if types.Compare(leftTy, rightTy) == types.Incompatible {
			a.errAt(diagnostics.TypeMismatch, e, "type mismatched. cannot compare '%s' with '%s'", leftTy, rightTy)
		}
		resultTy = types.BoolType()

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if leftOK && !types.SupportsOrdering(leftTy) && !isIncompleteType(leftTy) {
			a.errAt(diagnostics.TypeMismatch, e.Left, "type mismatched. expected 'number', found '%s'", leftTy)
		}
		if rightOK && !types.SupportsOrdering(rightTy) && !isIncompleteType(rightTy) {
			a.errAt(diagnostics.TypeMismatch, e.Right, "type mismatched. expected 'number', found '%s'", rightTy)
		}
		resultTy = types.BoolType()

	default: // OpAdd, OpSub, OpMul, OpDiv, OpMod
		if leftOK && !types.SupportsArithmetic(leftTy) && !isIncompleteType(leftTy) {
			a.errAt(diagnostics.TypeMismatch, e.Left, "type mismatched. expected 'number', found '%s'", leftTy)
		}
		if rightOK && !types.SupportsArithmetic(rightTy) && !isIncompleteType(rightTy) {
			a.errAt(diagnostics.TypeMismatch, e.Right, "type mismatched. expected 'number', found '%s'", rightTy)
		}
		resultTy = types.NumberType()
	}

	a.Table.Bind(e, &symbols.Expr{Ty: resultTy})
	return resultTy
}

func (a *Analyzer) analyzeUnaryOp(e *ast.UnaryOp) types.Type {
	operandTy := a.analyzeExpr(e.Expr)
	if !types.SupportsLogical(operandTy) && !isIncompleteType(operandTy) {
		a.errAt(diagnostics.TypeMismatch, e.Expr, "type mismatched. expected 'bool', found '%s'", operandTy)
	}
	return types.BoolType()
}

func (a *Analyzer) analyzeStructExpr(e *ast.StructExpr) types.Type {
	sym, ok := a.Env.Get(e.Name)
	if !ok {
		a.errAt(diagnostics.UnknownIdentifier, e, "unknown struct '%s'", e.Name)
		for _, f := range e.Fields {
			a.analyzeExpr(f.Body)
		}
		return types.Invalid{}
	}
	st, ok := sym.(*symbols.Struct)
	if !ok || st.IsNamespace {
		a.errAt(diagnostics.InvalidTypeName, e, "'%s' is not a struct", e.Name)
		for _, f := range e.Fields {
			a.analyzeExpr(f.Body)
		}
		return types.Invalid{}
	}

	seen := map[string]bool{}
	for _, f := range e.Fields {
		if seen[f.Name] {
			a.errAt(diagnostics.DuplicateStructField, e, "duplicate field '%s' in struct literal", f.Name)
		}
		seen[f.Name] = true

		bodyTy := a.analyzeExpr(f.Body)
		if types.Compare(bodyTy, types.Void{}) == types.Compatible {
			a.errAt(diagnostics.VoidAsExpression, f.Body, "cannot initialize a field with a void value")
		}

		fieldSym, ok := st.Fields.Get(f.Name)
		if !ok {
			a.errAt(diagnostics.UnknownField, e, "struct '%s' has no field '%s'", st.Name, f.Name)
			continue
		}
		declaredTy := fieldSym.(*symbols.Variable).Ty
		if types.Compare(bodyTy, declaredTy) == types.Incompatible {
			a.errAt(diagnostics.TypeMismatch, f.Body, "type mismatched. expected '%s', found '%s'", declaredTy, bodyTy)
		}
	}
	for _, name := range st.Fields.Names() {
		if !seen[name] {
			a.errAt(diagnostics.MissingStructField, e, "missing field '%s' in struct literal for '%s'", name, st.Name)
		}
	}

	return types.Named{Name: st.Name}
}

func (a *Analyzer) analyzeArrayNode(e *ast.ArrayNode) types.Type {
	for _, item := range e.Items {
		itemTy := a.analyzeExpr(item)
		if types.Compare(itemTy, types.Void{}) == types.Compatible {
			a.errAt(diagnostics.VoidAsExpression, item, "cannot store a void value in an array")
		}
	}
	return types.ArrayType()
}

func (a *Analyzer) analyzeIfExpr(e *ast.IfExpr) types.Type {
	condTy := a.analyzeExpr(e.Cond)
	if !types.SupportsLogical(condTy) && !isIncompleteType(condTy) {
		a.errAt(diagnostics.TypeMismatch, e.Cond, "type mismatched. expected 'bool', found '%s'", condTy)
	}

	a.Env.Enter()
	thenTy := a.analyzeBlock(e.ThenBlock)
	a.Env.Leave()

	a.Env.Enter()
	elseTy := a.analyzeBlock(e.ElseBlock)
	a.Env.Leave()

	result, ok := combineBranches(thenTy, elseTy)
	if !ok {
		a.errAt(diagnostics.TypeMismatch, e, "if-expression branches have incompatible types ('%s' vs '%s')", thenTy, elseTy)
		return types.Invalid{}
	}
	return result
}

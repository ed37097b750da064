package analyzer

import (
	"github.com/uguisu-dev/uguisu-sub001/internal/ast"
	"github.com/uguisu-dev/uguisu-sub001/internal/diagnostics"
	"github.com/uguisu-dev/uguisu-sub001/internal/symbols"
	"github.com/uguisu-dev/uguisu-sub001/internal/types"
)

// analyzeBodies is pass 3: analyze each function's body in its own frame,
// with its parameters bound as defined local variables.
func (a *Analyzer) analyzeBodies(file *ast.SourceFile) {
	for _, fn := range file.Functions() {
		sym, ok := a.Table.Lookup(fn)
		if !ok {
			continue
		}
		fnSym, ok := sym.(*symbols.Fn)
		if !ok {
			continue
		}
		fnTy, ok := fnSym.Ty.(types.Function)
		if !ok {
			continue // signature resolution already failed; nothing more to check
		}

		a.Env.Enter()
		for i, p := range fn.Params {
			a.Env.Set(p.Name, &symbols.Variable{Ty: fnTy.ParamTypes[i], IsDefined: true})
		}

		prevReturn := a.currentReturnType
		a.currentReturnType = fnTy.ReturnType

		blockTy := a.analyzeBlock(fn.Body)
		if types.Compare(blockTy, fnTy.ReturnType) == types.Incompatible {
			a.errAt(diagnostics.TypeMismatch, fn, "type mismatched. expected '%s', found '%s'", fnTy.ReturnType, blockTy)
		}

		a.currentReturnType = prevReturn
		a.Env.Leave()
	}
}

// analyzeBlock analyzes each step in order (language spec §4.3: "Blocks
// produce a type"). Every non-final step must be compatible with Void; the
// final step's type is the block's type. An empty block is Void.
func (a *Analyzer) analyzeBlock(steps []ast.Step) types.Type {
	result := types.Type(types.Void{})
	for i, step := range steps {
		ty := a.analyzeStep(step)
		if i == len(steps)-1 {
			result = ty
			continue
		}
		if types.Compare(ty, types.Void{}) != types.Compatible {
			a.errAt(diagnostics.VoidAsExpression, step, "value of type '%s' must be used", ty)
		}
	}
	return result
}

// analyzeStep dispatches a single block element to statement or expression
// analysis depending on its concrete kind.
func (a *Analyzer) analyzeStep(step ast.Step) types.Type {
	switch s := step.(type) {
	case *ast.VariableDecl:
		return a.analyzeVariableDecl(s)
	case *ast.AssignStatement:
		return a.analyzeAssignStatement(s)
	case *ast.IfStatement:
		return a.analyzeIfStatement(s)
	case *ast.LoopStatement:
		return a.analyzeLoopStatement(s)
	case *ast.ReturnStatement:
		return a.analyzeReturnStatement(s)
	case *ast.BreakStatement:
		return a.analyzeBreakStatement(s)
	case *ast.ExprStatement:
		return a.analyzeExpr(s.Expr)
	case ast.Expr:
		return a.analyzeExpr(s)
	default:
		return types.Invalid{}
	}
}

func (a *Analyzer) analyzeVariableDecl(s *ast.VariableDecl) types.Type {
	var declaredTy types.Type = types.Unresolved{}
	hasAnnotation := s.Ty != nil
	if hasAnnotation {
		declaredTy = a.resolveTyLabel(s.Ty)
	}

	isDefined := s.Body != nil
	if s.Body != nil {
		bodyTy := a.analyzeExpr(s.Body)
		if types.Compare(bodyTy, types.Void{}) == types.Compatible {
			a.errAt(diagnostics.VoidAsExpression, s.Body, "cannot initialize a variable with a void value")
		}
		if _, unresolved := declaredTy.(types.Unresolved); unresolved {
			declaredTy = bodyTy
		} else if hasAnnotation && types.Compare(bodyTy, declaredTy) == types.Incompatible {
			a.errAt(diagnostics.TypeMismatch, s.Body, "type mismatched. expected '%s', found '%s'", declaredTy, bodyTy)
		}
	}

	if a.Env.HasLocal(s.Name) {
		a.errAt(diagnostics.DuplicateDecl, s, "duplicate declaration of '%s'", s.Name)
	}
	varSym := &symbols.Variable{Ty: declaredTy, IsDefined: isDefined}
	a.Env.Set(s.Name, varSym)
	a.Table.Bind(s, varSym)
	return types.Void{}
}

func (a *Analyzer) analyzeAssignStatement(s *ast.AssignStatement) types.Type {
	bodyTy := a.analyzeExpr(s.Body)
	if types.Compare(bodyTy, types.Void{}) == types.Compatible {
		a.errAt(diagnostics.VoidAsExpression, s.Body, "cannot assign a void value")
	}

	targetTy, sym, wasUndefined := a.analyzeAssignTarget(s.Target)

	if wasUndefined {
		if v, ok := sym.(*symbols.Variable); ok {
			v.Ty = bodyTy
			v.IsDefined = true
		}
		return types.Void{}
	}

	if s.Mode == ast.AssignSet {
		if types.Compare(bodyTy, targetTy) == types.Incompatible {
			a.errAt(diagnostics.TypeMismatch, s, "type mismatched. expected '%s', found '%s'", targetTy, bodyTy)
		}
		return types.Void{}
	}

	if !types.SupportsArithmetic(targetTy) || !types.SupportsArithmetic(bodyTy) {
		if !isIncompleteType(targetTy) && !isIncompleteType(bodyTy) {
			a.errAt(diagnostics.TypeMismatch, s, "compound assignment requires both operands to be 'number'")
		}
	}
	return types.Void{}
}

// analyzeAssignTarget resolves the L-value of an assignment. Unlike a read
// (analyzeExpr on the same node kinds), an undefined Variable target is not
// an error here: it is the variable's first assignment, and the caller
// adopts the assigned value's type (language spec §4.3).
func (a *Analyzer) analyzeAssignTarget(target ast.ReferenceExpr) (types.Type, symbols.Symbol, bool) {
	switch t := target.(type) {
	case *ast.Identifier:
		sym, ok := a.Env.Get(t.Name)
		if !ok {
			a.errAt(diagnostics.UnknownIdentifier, t, "unknown identifier '%s'", t.Name)
			return types.Invalid{}, nil, false
		}
		v, ok := sym.(*symbols.Variable)
		if !ok {
			a.errAt(diagnostics.InvalidAssignTarget, t, "cannot assign to '%s'", t.Name)
			return types.Invalid{}, nil, false
		}
		if !v.IsDefined {
			return v.Ty, v, true
		}
		return v.Ty, v, false

	case *ast.FieldAccess:
		targetTy := a.analyzeExpr(t.Target)
		if !types.IsStruct(targetTy) {
			if !isIncompleteType(targetTy) {
				a.errAt(diagnostics.UnknownField, t, "type '%s' has no field '%s'", targetTy, t.Name)
			}
			return types.Invalid{}, nil, false
		}
		st, ok := a.lookupStruct(targetTy)
		if !ok {
			return types.Invalid{}, nil, false
		}
		fieldSym, ok := st.Fields.Get(t.Name)
		if !ok {
			a.errAt(diagnostics.UnknownField, t, "struct '%s' has no field '%s'", st.Name, t.Name)
			return types.Invalid{}, nil, false
		}
		v := fieldSym.(*symbols.Variable)
		return v.Ty, v, false

	case *ast.IndexAccess:
		a.errAt(diagnostics.InvalidAssignTarget, t, "an array element is not a valid assignment target")
		a.analyzeExpr(t.Target)
		a.analyzeExpr(t.Index)
		return types.Invalid{}, nil, false

	default:
		a.errAt(diagnostics.InvalidAssignTarget, target, "invalid assignment target")
		return types.Invalid{}, nil, false
	}
}

func (a *Analyzer) analyzeIfStatement(s *ast.IfStatement) types.Type {
	condTy := a.analyzeExpr(s.Cond)
	if !types.SupportsLogical(condTy) && !isIncompleteType(condTy) {
		a.errAt(diagnostics.TypeMismatch, s.Cond, "type mismatched. expected 'bool', found '%s'", condTy)
	}

	a.Env.Enter()
	thenTy := a.analyzeBlock(s.ThenBlock)
	a.Env.Leave()

	elseTy := types.Type(types.Void{})
	if s.ElseBlock != nil {
		a.Env.Enter()
		elseTy = a.analyzeBlock(s.ElseBlock)
		a.Env.Leave()
	}

	result, ok := combineBranches(thenTy, elseTy)
	if !ok {
		a.errAt(diagnostics.TypeMismatch, s, "if-statement branches have incompatible types ('%s' vs '%s')", thenTy, elseTy)
		return types.Void{}
	}
	if types.Compare(result, types.Void{}) != types.Compatible {
		a.errAt(diagnostics.VoidAsExpression, s, "value of type '%s' must be used", result)
		return types.Void{}
	}
	return result
}

func (a *Analyzer) analyzeLoopStatement(s *ast.LoopStatement) types.Type {
	a.loopDepth++
	a.Env.Enter()
	blockTy := a.analyzeBlock(s.Block)
	a.Env.Leave()
	a.loopDepth--

	if types.Compare(blockTy, types.Void{}) != types.Compatible {
		a.errAt(diagnostics.VoidAsExpression, s, "value of type '%s' must be used", blockTy)
	}
	return types.Void{}
}

func (a *Analyzer) analyzeReturnStatement(s *ast.ReturnStatement) types.Type {
	exprTy := types.Type(types.Void{})
	if s.Expr != nil {
		exprTy = a.analyzeExpr(s.Expr)
		if types.Compare(exprTy, types.Void{}) == types.Compatible {
			a.errAt(diagnostics.VoidAsExpression, s.Expr, "cannot return a void value")
		}
	}
	if a.currentReturnType != nil && types.Compare(exprTy, a.currentReturnType) == types.Incompatible {
		a.errAt(diagnostics.TypeMismatch, s, "type mismatched. expected '%s', found '%s'", a.currentReturnType, exprTy)
	}
	return types.Never{}
}

func (a *Analyzer) analyzeBreakStatement(s *ast.BreakStatement) types.Type {
	if a.loopDepth == 0 {
		a.errAt(diagnostics.BreakOutsideLoop, s, "invalid break statement.")
	}
	return types.Never{}
}

package evaluator

import "github.com/uguisu-dev/uguisu-sub001/internal/ast"

// evalExpr evaluates an expression to a Value (language spec §4.4).
func (e *Evaluator) evalExpr(expr ast.Expr) (Value, error) {
	switch x := expr.(type) {
	case *ast.NumberLiteral:
		return Number{V: x.Value}, nil
	case *ast.BoolLiteral:
		return Bool{V: x.Value}, nil
	case *ast.CharLiteral:
		return Char{V: x.Value}, nil
	case *ast.StringLiteral:
		return String{V: x.Value}, nil
	case *ast.Identifier:
		return e.evalIdentifier(x)
	case *ast.FieldAccess:
		return e.evalFieldAccess(x)
	case *ast.IndexAccess:
		return e.evalIndexAccess(x)
	case *ast.Call:
		return e.evalCall(x)
	case *ast.BinaryOp:
		return e.evalBinaryOp(x)
	case *ast.UnaryOp:
		return e.evalUnaryOp(x)
	case *ast.StructExpr:
		return e.evalStructExpr(x)
	case *ast.ArrayNode:
		return e.evalArrayNode(x)
	case *ast.IfExpr:
		return e.evalIfExpr(x)
	default:
		return nil, runtimeErrorf("unsupported expression node %T", expr)
	}
}

func (e *Evaluator) evalIdentifier(x *ast.Identifier) (Value, error) {
	slot, ok := e.Env.Get(x.Name)
	if !ok {
		return nil, runtimeErrorf("unknown identifier '%s'", x.Name)
	}
	v, ok := slot.Get()
	if !ok {
		return nil, runtimeErrorf("variable is not assigned yet.")
	}
	return v, nil
}

func (e *Evaluator) evalFieldAccess(x *ast.FieldAccess) (Value, error) {
	targetVal, err := e.evalExpr(x.Target)
	if err != nil {
		return nil, err
	}
	st, ok := targetVal.(*Struct)
	if !ok {
		return nil, runtimeErrorf("cannot read field '%s' of a non-struct value", x.Name)
	}
	slot, ok := st.Values[x.Name]
	if !ok {
		return nil, runtimeErrorf("struct '%s' has no field '%s'", st.TypeName, x.Name)
	}
	v, ok := slot.Get()
	if !ok {
		return nil, runtimeErrorf("field '%s' is not assigned yet.", x.Name)
	}
	return v, nil
}

func (e *Evaluator) evalIndexAccess(x *ast.IndexAccess) (Value, error) {
	targetVal, err := e.evalExpr(x.Target)
	if err != nil {
		return nil, err
	}
	if e.diverging {
		return None{}, nil
	}
	arr, ok := targetVal.(*Array)
	if !ok {
		return nil, runtimeErrorf("cannot index a non-array value")
	}
	idxVal, err := e.evalExpr(x.Index)
	if err != nil {
		return nil, err
	}
	idxNum, ok := idxVal.(Number)
	if !ok {
		return nil, runtimeErrorf("array index must be a number")
	}
	idx := int(idxNum.V)
	if idx < 0 || idx >= len(arr.Items) {
		return nil, runtimeErrorf("array index %d out of range (length %d)", idx, len(arr.Items))
	}
	return arr.Items[idx], nil
}

func (e *Evaluator) evalCall(x *ast.Call) (Value, error) {
	calleeVal, err := e.evalExpr(x.Callee)
	if err != nil {
		return nil, err
	}
	if e.diverging {
		return None{}, nil
	}

	args := make([]Value, len(x.Args))
	for i, a := range x.Args {
		v, err := e.evalExpr(a)
		if err != nil {
			return nil, err
		}
		if e.diverging {
			return None{}, nil
		}
		args[i] = v
	}

	switch fn := calleeVal.(type) {
	case *Function:
		return e.callUserFunction(fn, args)
	case *NativeFunc:
		return fn.Handler(e, args)
	default:
		return nil, runtimeErrorf("value is not callable")
	}
}

func (e *Evaluator) evalUnaryOp(x *ast.UnaryOp) (Value, error) {
	v, err := e.evalExpr(x.Expr)
	if err != nil {
		return nil, err
	}
	b, ok := v.(Bool)
	if !ok {
		return nil, runtimeErrorf("'!' requires a bool operand")
	}
	return Bool{V: !b.V}, nil
}

func (e *Evaluator) evalStructExpr(x *ast.StructExpr) (Value, error) {
	slot, ok := e.Env.Get(x.Name)
	if !ok {
		return nil, runtimeErrorf("unknown struct '%s'", x.Name)
	}
	typeVal, _ := slot.Get()
	st, ok := typeVal.(*StructType)
	if !ok {
		return nil, runtimeErrorf("'%s' is not a struct type", x.Name)
	}

	instance := NewStruct(st.Name, st.FieldOrder)
	for _, f := range x.Fields {
		v, err := e.evalExpr(f.Body)
		if err != nil {
			return nil, err
		}
		if e.diverging {
			return None{}, nil
		}
		fieldSlot, ok := instance.Values[f.Name]
		if !ok {
			fieldSlot = &Slot{}
			instance.Values[f.Name] = fieldSlot
		}
		fieldSlot.Set(v)
	}
	return instance, nil
}

func (e *Evaluator) evalArrayNode(x *ast.ArrayNode) (Value, error) {
	items := make([]Value, len(x.Items))
	for i, it := range x.Items {
		v, err := e.evalExpr(it)
		if err != nil {
			return nil, err
		}
		if e.diverging {
			return None{}, nil
		}
		items[i] = v
	}
	return NewArray(items), nil
}

// evalIfExpr evaluates whichever branch the condition selects. If that
// branch's block ends in a return or break (legal: the analyzer's
// combineBranches treats a Never-typed branch as deferring entirely to the
// other), the divergence can't be expressed through evalExpr's plain
// (Value, error) signature — so it's latched on the Evaluator (diverging,
// etc.) for the nearest enclosing evalBlock to pick up and propagate,
// exactly as if a bare return/break statement had appeared at this point.
func (e *Evaluator) evalIfExpr(x *ast.IfExpr) (Value, error) {
	cond, err := e.evalExpr(x.Cond)
	if err != nil {
		return nil, err
	}
	if e.diverging {
		return None{}, nil
	}

	var f flow
	e.Env.Enter()
	if asBool(cond) {
		f, err = e.evalBlock(x.ThenBlock)
	} else {
		f, err = e.evalBlock(x.ElseBlock)
	}
	e.Env.Leave()
	if err != nil {
		return nil, err
	}
	if f.diverges() {
		e.diverging = true
		e.divergeKind = f.kind
		e.divergeValue = f.value
		return None{}, nil
	}
	return f.value, nil
}

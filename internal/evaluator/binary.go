package evaluator

import "github.com/uguisu-dev/uguisu-sub001/internal/ast"

// evalBinaryOp evaluates both operands then applies the operator (language
// spec §4.4). && and || are not short-circuited here: the analyzer already
// requires both operands to be bool-compatible expressions with no side
// effect ordering guarantee called out in the spec, and evaluating both
// keeps this symmetric with every other binary operator.
func (e *Evaluator) evalBinaryOp(x *ast.BinaryOp) (Value, error) {
	left, err := e.evalExpr(x.Left)
	if err != nil {
		return nil, err
	}
	if e.diverging {
		return None{}, nil
	}
	right, err := e.evalExpr(x.Right)
	if err != nil {
		return nil, err
	}
	if e.diverging {
		return None{}, nil
	}

	switch x.Operator {
	case ast.OpAnd:
		return Bool{V: asBool(left) && asBool(right)}, nil
	case ast.OpOr:
		return Bool{V: asBool(left) || asBool(right)}, nil
	case ast.OpEq:
		return Bool{V: valuesEqual(left, right)}, nil
	case ast.OpNe:
		return Bool{V: !valuesEqual(left, right)}, nil
	}

	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if !lok || !rok {
		return nil, runtimeErrorf("operator requires number operands")
	}
	switch x.Operator {
	case ast.OpLt:
		return Bool{V: ln.V < rn.V}, nil
	case ast.OpLe:
		return Bool{V: ln.V <= rn.V}, nil
	case ast.OpGt:
		return Bool{V: ln.V > rn.V}, nil
	case ast.OpGe:
		return Bool{V: ln.V >= rn.V}, nil
	case ast.OpAdd:
		return Number{V: ln.V + rn.V}, nil
	case ast.OpSub:
		return Number{V: ln.V - rn.V}, nil
	case ast.OpMul:
		return Number{V: ln.V * rn.V}, nil
	case ast.OpDiv:
		return Number{V: ln.V / rn.V}, nil
	case ast.OpMod:
		return Number{V: float64(int64(ln.V) % int64(rn.V))}, nil
	default:
		return nil, runtimeErrorf("unsupported binary operator")
	}
}

// valuesEqual compares two primitive values by kind and value (the analyzer
// rejects struct-vs-struct comparisons entirely, language spec §9).
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av.V == bv.V
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.V == bv.V
	case Char:
		bv, ok := b.(Char)
		return ok && av.V == bv.V
	case String:
		bv, ok := b.(String)
		return ok && av.V == bv.V
	default:
		return a == b
	}
}

package evaluator

import "github.com/uguisu-dev/uguisu-sub001/internal/ast"

// evalAssignStatement evaluates the right-hand side, then writes it into the
// Slot the target resolves to (language spec §4.4). Compound assignments
// (+=, -=, ...) read the current value first since they combine it with the
// right-hand side.
func (e *Evaluator) evalAssignStatement(s *ast.AssignStatement) (flow, error) {
	slot, err := e.resolveTargetSlot(s.Target)
	if err != nil {
		return flow{}, err
	}

	rhs, err := e.evalExpr(s.Body)
	if err != nil {
		return flow{}, err
	}

	if s.Mode == ast.AssignSet {
		slot.Set(rhs)
		return complete(None{}), nil
	}

	current, ok := slot.Get()
	if !ok {
		return flow{}, runtimeErrorf("variable is not assigned yet.")
	}
	combined, err := applyCompound(s.Mode, current, rhs)
	if err != nil {
		return flow{}, err
	}
	slot.Set(combined)
	return complete(None{}), nil
}

func applyCompound(mode ast.AssignMode, left, right Value) (Value, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return nil, runtimeErrorf("compound assignment requires number operands")
	}
	switch mode {
	case ast.AssignAdd:
		return Number{V: l.V + r.V}, nil
	case ast.AssignSub:
		return Number{V: l.V - r.V}, nil
	case ast.AssignMul:
		return Number{V: l.V * r.V}, nil
	case ast.AssignDiv:
		return Number{V: l.V / r.V}, nil
	case ast.AssignMod:
		return Number{V: float64(int64(l.V) % int64(r.V))}, nil
	default:
		return nil, runtimeErrorf("unsupported assignment mode")
	}
}

// resolveTargetSlot returns the Slot a reference expression's assignment
// writes into. A declared-but-unassigned variable already has an empty Slot
// from its VariableDecl; an Identifier with no binding at all gets a new Slot
// in the current frame.
func (e *Evaluator) resolveTargetSlot(target ast.ReferenceExpr) (*Slot, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		slot, ok := e.Env.Get(t.Name)
		if !ok {
			slot = &Slot{}
			e.Env.Set(t.Name, slot)
		}
		return slot, nil

	case *ast.FieldAccess:
		targetVal, err := e.evalExpr(t.Target)
		if err != nil {
			return nil, err
		}
		st, ok := targetVal.(*Struct)
		if !ok {
			return nil, runtimeErrorf("cannot assign field '%s' on a non-struct value", t.Name)
		}
		slot, ok := st.Values[t.Name]
		if !ok {
			slot = &Slot{}
			st.Values[t.Name] = slot
			st.Order = append(st.Order, t.Name)
		}
		return slot, nil

	default:
		return nil, runtimeErrorf("invalid assignment target")
	}
}

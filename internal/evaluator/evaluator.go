package evaluator

import (
	"fmt"

	"github.com/uguisu-dev/uguisu-sub001/internal/ast"
)

// RuntimeError is a fatal evaluation failure (language spec §4.4): out of
// the analyzer's reach because it depends on a concrete value, not a static
// type (e.g. an array index past the end, a slot read before assignment
// slipping past analysis on a path analysis could not prove unreachable).
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func runtimeErrorf(format string, args ...any) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// Evaluator walks a SourceFile's AST, evaluating expressions and executing
// statements against a root Environment seeded with the built-in surface
// (internal/evaluator/builtins.go).
type Evaluator struct {
	Env    *Environment
	Stdout func(string)
	Stdin  func() string

	// diverging/divergeKind/divergeValue are the side-channel an IfExpr uses
	// to hand a Return/Break that occurred inside one of its branches back up
	// through the plain evalExpr chain, which (unlike evalStep/evalBlock)
	// cannot return a flow directly. evalBlock checks this flag after every
	// step and unwinds instead of continuing, so a return/break still
	// reaches its enclosing loop/function exactly as if it had appeared as a
	// bare statement there — without resorting to a host-language panic
	// (language spec §9 Design Notes).
	diverging   bool
	divergeKind flowKind
	divergeValue Value
}

// checkDiverge reports whether a nested IfExpr branch just signaled a
// return/break, clearing the signal and returning true if so. Call sites
// evaluating a sequence of sub-expressions (call args, array items, struct
// fields, binary operands) check this between evaluations and stop early.
func (e *Evaluator) checkDiverge() (flow, bool) {
	if !e.diverging {
		return flow{}, false
	}
	f := flow{kind: e.divergeKind, value: e.divergeValue}
	e.diverging = false
	return f, true
}

// New creates an Evaluator with the host surface installed at the root
// frame, Stdout wired to fmt.Print and Stdin to a function that returns an
// empty string (both overridable for tests and for the host CLI, per the
// EXTERNAL INTERFACES contract).
func New() *Evaluator {
	e := &Evaluator{
		Env:    NewEnvironment(),
		Stdout: func(s string) { fmt.Print(s) },
		Stdin:  func() string { return "" },
	}
	e.installBuiltins()
	return e
}

// EvalFile declares every top-level function/struct as a runtime value, then
// calls `main` with no arguments (language spec §4.4/§7 entry point).
func (e *Evaluator) EvalFile(file *ast.SourceFile) (Value, error) {
	structOrder := map[string][]string{}
	for _, st := range file.Structs() {
		order := make([]string, len(st.Fields))
		for i, f := range st.Fields {
			order[i] = f.Name
		}
		structOrder[st.Name] = order
		e.Env.Set(st.Name, NewSlot(&StructType{Name: st.Name, FieldOrder: order}))
	}
	for _, fn := range file.Functions() {
		e.Env.Set(fn.Name, NewSlot(&Function{Decl: fn, Env: e.Env}))
	}

	mainSlot, ok := e.Env.Get("main")
	if !ok {
		return nil, runtimeErrorf("no 'main' function declared")
	}
	mainVal, _ := mainSlot.Get()
	fn, ok := mainVal.(*Function)
	if !ok {
		return nil, runtimeErrorf("'main' is not a function")
	}
	return e.callUserFunction(fn, nil)
}

// callUserFunction runs a user function's body in a fresh frame captured
// from its declaring environment, binding each parameter to its argument.
func (e *Evaluator) callUserFunction(fn *Function, args []Value) (Value, error) {
	callEnv := NewChildEnvironment(fn.Env)
	for i, p := range fn.Decl.Params {
		if i < len(args) {
			callEnv.Set(p.Name, NewSlot(args[i]))
		} else {
			callEnv.Set(p.Name, &Slot{})
		}
	}

	prevEnv := e.Env
	e.Env = callEnv
	f, err := e.evalBlock(fn.Decl.Body)
	e.Env = prevEnv
	if err != nil {
		return nil, err
	}
	if f.kind == flowReturn {
		return f.value, nil
	}
	return f.value, nil
}

// evalBlock runs steps in order, short-circuiting on Return/Break. An empty
// block yields None; otherwise a block that completes normally yields the
// last step's value (which is how an IfExpr branch produces its value).
func (e *Evaluator) evalBlock(steps []ast.Step) (flow, error) {
	result := complete(None{})
	for _, step := range steps {
		f, err := e.evalStep(step)
		if err != nil {
			return flow{}, err
		}
		if diverged, ok := e.checkDiverge(); ok {
			return diverged, nil
		}
		if f.diverges() {
			return f, nil
		}
		result = f
	}
	return result, nil
}

func (e *Evaluator) evalStep(step ast.Step) (flow, error) {
	switch s := step.(type) {
	case *ast.VariableDecl:
		return e.evalVariableDecl(s)
	case *ast.AssignStatement:
		return e.evalAssignStatement(s)
	case *ast.IfStatement:
		return e.evalIfStatement(s)
	case *ast.LoopStatement:
		return e.evalLoopStatement(s)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(s)
	case *ast.BreakStatement:
		return doBreak(), nil
	case *ast.ExprStatement:
		v, err := e.evalExpr(s.Expr)
		if err != nil {
			return flow{}, err
		}
		return complete(v), nil
	case ast.Expr:
		v, err := e.evalExpr(s)
		if err != nil {
			return flow{}, err
		}
		return complete(v), nil
	default:
		return flow{}, runtimeErrorf("unsupported step node %T", step)
	}
}

func (e *Evaluator) evalVariableDecl(s *ast.VariableDecl) (flow, error) {
	if s.Body == nil {
		e.Env.Set(s.Name, &Slot{})
		return complete(None{}), nil
	}
	v, err := e.evalExpr(s.Body)
	if err != nil {
		return flow{}, err
	}
	e.Env.Set(s.Name, NewSlot(v))
	return complete(None{}), nil
}

func (e *Evaluator) evalIfStatement(s *ast.IfStatement) (flow, error) {
	cond, err := e.evalExpr(s.Cond)
	if err != nil {
		return flow{}, err
	}
	if asBool(cond) {
		e.Env.Enter()
		f, err := e.evalBlock(s.ThenBlock)
		e.Env.Leave()
		return f, err
	}
	if s.ElseBlock != nil {
		e.Env.Enter()
		f, err := e.evalBlock(s.ElseBlock)
		e.Env.Leave()
		return f, err
	}
	return complete(None{}), nil
}

func (e *Evaluator) evalLoopStatement(s *ast.LoopStatement) (flow, error) {
	for {
		e.Env.Enter()
		f, err := e.evalBlock(s.Block)
		e.Env.Leave()
		if err != nil {
			return flow{}, err
		}
		switch f.kind {
		case flowBreak:
			return complete(None{}), nil
		case flowReturn:
			return f, nil
		}
	}
}

func (e *Evaluator) evalReturnStatement(s *ast.ReturnStatement) (flow, error) {
	if s.Expr == nil {
		return doReturn(None{}), nil
	}
	v, err := e.evalExpr(s.Expr)
	if err != nil {
		return flow{}, err
	}
	return doReturn(v), nil
}

func asBool(v Value) bool {
	b, ok := v.(Bool)
	return ok && b.V
}

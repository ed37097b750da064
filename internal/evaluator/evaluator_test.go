package evaluator

import (
	"strings"
	"testing"

	"github.com/uguisu-dev/uguisu-sub001/internal/ast"
	"github.com/uguisu-dev/uguisu-sub001/internal/token"
)

func pos() token.Position { return token.Position{Line: 1, Column: 1} }

func ty(name string) *ast.TyLabel { return &ast.TyLabel{Position: pos(), Name: name} }

func ident(name string) *ast.Identifier { return &ast.Identifier{Position: pos(), Name: name} }

func num(v float64) *ast.NumberLiteral { return &ast.NumberLiteral{Position: pos(), Value: v} }

// TestHelloWritesToStdout runs scenario 1 ("Hello"): console.write("hello")
// must reach the captured stdout sink exactly once.
func TestHelloWritesToStdout(t *testing.T) {
	file := &ast.SourceFile{
		Decls: []ast.Decl{
			&ast.FunctionDecl{Position: pos(), Name: "main", Body: []ast.Step{
				&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
					Position: pos(),
					Callee:   &ast.FieldAccess{Position: pos(), Target: ident("console"), Name: "write"},
					Args:     []ast.Expr{&ast.StringLiteral{Position: pos(), Value: "hello"}},
				}},
			}},
		},
	}

	var out strings.Builder
	e := New()
	e.Stdout = func(s string) { out.WriteString(s) }
	if _, err := e.EvalFile(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "hello" {
		t.Fatalf("expected stdout %q, got %q", "hello", out.String())
	}
}

// TestRecursionFactorial runs scenario 2 (fact(5) == 120) and checks the
// function evaluates without an assertion failure.
func TestRecursionFactorial(t *testing.T) {
	factBody := []ast.Step{
		&ast.IfStatement{
			Position: pos(),
			Cond: &ast.BinaryOp{Position: pos(), Operator: ast.OpLe, Left: ident("n"), Right: num(1)},
			ThenBlock: []ast.Step{
				&ast.ReturnStatement{Position: pos(), Expr: num(1)},
			},
		},
		&ast.ReturnStatement{
			Position: pos(),
			Expr: &ast.BinaryOp{
				Position: pos(), Operator: ast.OpMul,
				Left: ident("n"),
				Right: &ast.Call{
					Position: pos(), Callee: ident("fact"),
					Args: []ast.Expr{&ast.BinaryOp{Position: pos(), Operator: ast.OpSub, Left: ident("n"), Right: num(1)}},
				},
			},
		},
	}
	file := &ast.SourceFile{
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Position: pos(), Name: "fact",
				Params: []ast.FnDeclParam{{Name: "n", Ty: ty("number")}}, ReturnTy: ty("number"),
				Body: factBody,
			},
			&ast.FunctionDecl{Position: pos(), Name: "main", Body: []ast.Step{
				&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
					Position: pos(),
					Callee:   &ast.FieldAccess{Position: pos(), Target: ident("number"), Name: "assertEq"},
					Args: []ast.Expr{
						&ast.Call{Position: pos(), Callee: ident("fact"), Args: []ast.Expr{num(5)}},
						num(120),
					},
				}},
			}},
		},
	}
	e := New()
	e.Stdout = func(string) {}
	if _, err := e.EvalFile(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestMutableStructAliasing runs scenario 3: a struct passed to a function
// is mutated in place and the caller observes the change (structs are
// reference-held, not copied, language spec §3.5).
func TestMutableStructAliasing(t *testing.T) {
	file := &ast.SourceFile{
		Decls: []ast.Decl{
			&ast.StructDecl{Position: pos(), Name: "P", Fields: []ast.StructDeclField{{Name: "x", Ty: ty("number")}}},
			&ast.FunctionDecl{
				Position: pos(), Name: "bump",
				Params: []ast.FnDeclParam{{Name: "p", Ty: ty("P")}},
				Body: []ast.Step{
					&ast.AssignStatement{
						Position: pos(),
						Target:   &ast.FieldAccess{Position: pos(), Target: ident("p"), Name: "x"},
						Mode:     ast.AssignSet,
						Body: &ast.BinaryOp{
							Position: pos(), Operator: ast.OpAdd,
							Left: &ast.FieldAccess{Position: pos(), Target: ident("p"), Name: "x"}, Right: num(1),
						},
					},
				},
			},
			&ast.FunctionDecl{Position: pos(), Name: "main", Body: []ast.Step{
				&ast.VariableDecl{Position: pos(), Name: "p", Body: &ast.StructExpr{
					Position: pos(), Name: "P", Fields: []ast.StructFieldInit{{Name: "x", Body: num(1)}},
				}},
				&ast.ExprStatement{Position: pos(), Expr: &ast.Call{Position: pos(), Callee: ident("bump"), Args: []ast.Expr{ident("p")}}},
				&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
					Position: pos(),
					Callee:   &ast.FieldAccess{Position: pos(), Target: ident("number"), Name: "assertEq"},
					Args:     []ast.Expr{&ast.FieldAccess{Position: pos(), Target: ident("p"), Name: "x"}, num(2)},
				}},
			}},
		},
	}
	e := New()
	e.Stdout = func(string) {}
	if _, err := e.EvalFile(file); err != nil {
		t.Fatalf("unexpected error (aliasing broken?): %v", err)
	}
}

// TestLoopBreak exercises LoopStatement + BreakStatement control flow: a
// counter incremented until it reaches 3, then the loop exits via break.
func TestLoopBreak(t *testing.T) {
	file := &ast.SourceFile{
		Decls: []ast.Decl{
			&ast.FunctionDecl{Position: pos(), Name: "main", Body: []ast.Step{
				&ast.VariableDecl{Position: pos(), Name: "i", Body: num(0)},
				&ast.LoopStatement{Position: pos(), Block: []ast.Step{
					&ast.IfStatement{
						Position: pos(),
						Cond:     &ast.BinaryOp{Position: pos(), Operator: ast.OpGe, Left: ident("i"), Right: num(3)},
						ThenBlock: []ast.Step{
							&ast.BreakStatement{Position: pos()},
						},
					},
					&ast.AssignStatement{
						Position: pos(), Target: ident("i"), Mode: ast.AssignAdd, Body: num(1),
					},
				}},
				&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
					Position: pos(),
					Callee:   &ast.FieldAccess{Position: pos(), Target: ident("number"), Name: "assertEq"},
					Args:     []ast.Expr{ident("i"), num(3)},
				}},
			}},
		},
	}
	e := New()
	e.Stdout = func(string) {}
	if _, err := e.EvalFile(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestReturnInsideIfExprBranchPropagates exercises the diverging side-channel
// evalIfExpr latches when one branch of an if-expression used inside a
// larger expression returns from the enclosing function early.
func TestReturnInsideIfExprBranchPropagates(t *testing.T) {
	file := &ast.SourceFile{
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Position: pos(), Name: "pick", ReturnTy: ty("number"),
				Params: []ast.FnDeclParam{{Name: "n", Ty: ty("number")}},
				Body: []ast.Step{
					&ast.VariableDecl{
						Position: pos(), Name: "v",
						Body: &ast.IfExpr{
							Position: pos(),
							Cond:     &ast.BinaryOp{Position: pos(), Operator: ast.OpLt, Left: ident("n"), Right: num(0)},
							ThenBlock: []ast.Step{
								&ast.ReturnStatement{Position: pos(), Expr: num(-1)},
							},
							ElseBlock: []ast.Step{num(1)},
						},
					},
					&ast.ReturnStatement{Position: pos(), Expr: ident("v")},
				},
			},
			&ast.FunctionDecl{Position: pos(), Name: "main", Body: []ast.Step{
				&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
					Position: pos(),
					Callee:   &ast.FieldAccess{Position: pos(), Target: ident("number"), Name: "assertEq"},
					Args: []ast.Expr{
						&ast.Call{Position: pos(), Callee: ident("pick"), Args: []ast.Expr{num(-5)}},
						num(-1),
					},
				}},
			}},
		},
	}
	e := New()
	e.Stdout = func(string) {}
	if _, err := e.EvalFile(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

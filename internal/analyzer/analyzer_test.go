package analyzer

import (
	"testing"

	"github.com/uguisu-dev/uguisu-sub001/internal/ast"
	"github.com/uguisu-dev/uguisu-sub001/internal/diagnostics"
	"github.com/uguisu-dev/uguisu-sub001/internal/token"
)

func pos() token.Position { return token.Position{Line: 1, Column: 1} }

func ty(name string) *ast.TyLabel { return &ast.TyLabel{Position: pos(), Name: name} }

func ident(name string) *ast.Identifier { return &ast.Identifier{Position: pos(), Name: name} }

func mainFn(body []ast.Step) *ast.SourceFile {
	return &ast.SourceFile{
		Filename: "test.ugsu",
		Decls: []ast.Decl{
			&ast.FunctionDecl{Position: pos(), Name: "main", Body: body},
		},
	}
}

func expectSuccess(t *testing.T, file *ast.SourceFile) *Result {
	t.Helper()
	res := New().AnalyzeFile(file)
	if !res.Success {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	return res
}

func expectError(t *testing.T, file *ast.SourceFile, code diagnostics.ErrorCode, message string) *Result {
	t.Helper()
	res := New().AnalyzeFile(file)
	if res.Success {
		t.Fatalf("expected failure, got success")
	}
	for _, e := range res.Errors {
		if e.Code == code && e.Message == message {
			return res
		}
	}
	t.Fatalf("expected error %s %q, got: %v", code, message, res.Errors)
	return res
}

// Scenario 1: Hello.
func TestHello(t *testing.T) {
	file := mainFn([]ast.Step{
		&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
			Position: pos(),
			Callee:   &ast.FieldAccess{Position: pos(), Target: ident("console"), Name: "write"},
			Args:     []ast.Expr{&ast.StringLiteral{Position: pos(), Value: "hello"}},
		}},
	})
	expectSuccess(t, file)
}

// Scenario 2: Recursion (fact).
func TestRecursion(t *testing.T) {
	factBody := []ast.Step{
		&ast.IfStatement{
			Position: pos(),
			Cond: &ast.BinaryOp{
				Position: pos(), Operator: ast.OpLe,
				Left:  ident("n"),
				Right: &ast.NumberLiteral{Position: pos(), Value: 1},
			},
			ThenBlock: []ast.Step{
				&ast.ReturnStatement{Position: pos(), Expr: &ast.NumberLiteral{Position: pos(), Value: 1}},
			},
		},
		&ast.ReturnStatement{
			Position: pos(),
			Expr: &ast.BinaryOp{
				Position: pos(), Operator: ast.OpMul,
				Left: ident("n"),
				Right: &ast.Call{
					Position: pos(),
					Callee:   ident("fact"),
					Args: []ast.Expr{&ast.BinaryOp{
						Position: pos(), Operator: ast.OpSub,
						Left:  ident("n"),
						Right: &ast.NumberLiteral{Position: pos(), Value: 1},
					}},
				},
			},
		},
	}

	file := &ast.SourceFile{
		Filename: "test.ugsu",
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Position: pos(), Name: "fact",
				Params:   []ast.FnDeclParam{{Name: "n", Ty: ty("number")}},
				ReturnTy: ty("number"),
				Body:     factBody,
			},
			&ast.FunctionDecl{
				Position: pos(), Name: "main",
				Body: []ast.Step{
					&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
						Position: pos(),
						Callee:   &ast.FieldAccess{Position: pos(), Target: ident("number"), Name: "assertEq"},
						Args: []ast.Expr{
							&ast.Call{Position: pos(), Callee: ident("fact"), Args: []ast.Expr{&ast.NumberLiteral{Position: pos(), Value: 5}}},
							&ast.NumberLiteral{Position: pos(), Value: 120},
						},
					}},
				},
			},
		},
	}
	expectSuccess(t, file)
}

// Scenario 3: Mutable struct aliasing.
func TestMutableStructAliasing(t *testing.T) {
	file := &ast.SourceFile{
		Filename: "test.ugsu",
		Decls: []ast.Decl{
			&ast.StructDecl{
				Position: pos(), Name: "P",
				Fields: []ast.StructDeclField{{Name: "x", Ty: ty("number")}},
			},
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
							Left:  &ast.FieldAccess{Position: pos(), Target: ident("p"), Name: "x"},
							Right: &ast.NumberLiteral{Position: pos(), Value: 1},
						},
					},
				},
			},
			&ast.FunctionDecl{
				Position: pos(), Name: "main",
				Body: []ast.Step{
					&ast.VariableDecl{
						Position: pos(), Name: "p",
						Body: &ast.StructExpr{
							Position: pos(), Name: "P",
							Fields: []ast.StructFieldInit{{Name: "x", Body: &ast.NumberLiteral{Position: pos(), Value: 1}}},
						},
					},
					&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
						Position: pos(), Callee: ident("bump"), Args: []ast.Expr{ident("p")},
					}},
					&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
						Position: pos(),
						Callee:   &ast.FieldAccess{Position: pos(), Target: ident("number"), Name: "assertEq"},
						Args: []ast.Expr{
							&ast.FieldAccess{Position: pos(), Target: ident("p"), Name: "x"},
							&ast.NumberLiteral{Position: pos(), Value: 2},
						},
					}},
				},
			},
		},
	}
	expectSuccess(t, file)
}

// Scenario 4: Type error surfacing.
func TestTypeErrorSurfacing(t *testing.T) {
	file := mainFn([]ast.Step{
		&ast.VariableDecl{
			Position: pos(), Name: "x", Ty: ty("number"),
			Body: &ast.BoolLiteral{Position: pos(), Value: true},
		},
	})
	res := expectError(t, file, diagnostics.TypeMismatch, "type mismatched. expected 'number', found 'bool'")
	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(res.Errors), res.Errors)
	}
}

// Scenario 5: Break outside loop.
func TestBreakOutsideLoop(t *testing.T) {
	file := mainFn([]ast.Step{
		&ast.BreakStatement{Position: pos()},
	})
	expectError(t, file, diagnostics.BreakOutsideLoop, "invalid break statement.")
}

// Scenario 6: Use-before-assign.
func TestUseBeforeAssign(t *testing.T) {
	file := mainFn([]ast.Step{
		&ast.VariableDecl{Position: pos(), Name: "x", Ty: ty("number")},
		&ast.ExprStatement{Position: pos(), Expr: &ast.Call{
			Position: pos(),
			Callee:   &ast.FieldAccess{Position: pos(), Target: ident("console"), Name: "writeNum"},
			Args:     []ast.Expr{ident("x")},
		}},
	})
	expectError(t, file, diagnostics.UseBeforeAssign, "variable is not assigned yet.")
}

func TestEnvironmentReturnsToRootAfterAnalysis(t *testing.T) {
	a := New()
	file := mainFn([]ast.Step{
		&ast.VariableDecl{Position: pos(), Name: "x", Body: &ast.NumberLiteral{Position: pos(), Value: 1}},
	})
	a.AnalyzeFile(file)
	if !a.Env.AtRoot() {
		t.Fatalf("expected environment back at root frame, depth=%d", a.Env.Depth())
	}
}

func TestDuplicateTopLevelDeclaration(t *testing.T) {
	file := &ast.SourceFile{
		Decls: []ast.Decl{
			&ast.FunctionDecl{Position: pos(), Name: "f", Body: nil},
			&ast.FunctionDecl{Position: pos(), Name: "f", Body: nil},
		},
	}
	expectError(t, file, diagnostics.DuplicateDecl, "duplicate declaration of 'f'")
}

func TestArgCountMismatch(t *testing.T) {
	file := &ast.SourceFile{
		Decls: []ast.Decl{
			&ast.FunctionDecl{Position: pos(), Name: "f", Params: []ast.FnDeclParam{{Name: "a", Ty: ty("number")}}},
			&ast.FunctionDecl{Position: pos(), Name: "main", Body: []ast.Step{
				&ast.ExprStatement{Position: pos(), Expr: &ast.Call{Position: pos(), Callee: ident("f"), Args: nil}},
			}},
		},
	}
	expectError(t, file, diagnostics.ArgCountMismatch, "expected 1 argument(s), found 0")
}

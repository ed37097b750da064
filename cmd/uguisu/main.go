// Command uguisu is a thin reference CLI proving the core packages wire
// together end to end (language spec §7): since lexing/parsing is out of
// scope, it runs one embedded demo program built directly as an *ast.*
// literal, runs the analyzer then the evaluator, and prints diagnostics the
// way §7 describes. This is not a general-purpose interpreter entry point.
package main

import (
	"fmt"
	"os"

	"github.com/uguisu-dev/uguisu-sub001/internal/analyzer"
	"github.com/uguisu-dev/uguisu-sub001/internal/ast"
	"github.com/uguisu-dev/uguisu-sub001/internal/evaluator"
	"github.com/uguisu-dev/uguisu-sub001/internal/token"
)

func main() {
	os.Exit(run())
}

func run() int {
	file := demoProgram()

	result := analyzer.New().AnalyzeFile(file)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w.Error())
	}
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "Syntax Error: %s\n", e.Error())
		}
		return 1
	}

	e := evaluator.New()
	if _, err := e.EvalFile(file); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// demoProgram is scenario 2 from language spec §8 ("Recursion"): a
// factorial function, checked with number.assertEq and reported via
// console.write on success.
func demoProgram() *ast.SourceFile {
	p := func() token.Position { return token.Position{Line: 1, Column: 1} }
	ident := func(name string) *ast.Identifier { return &ast.Identifier{Position: p(), Name: name} }
	num := func(v float64) *ast.NumberLiteral { return &ast.NumberLiteral{Position: p(), Value: v} }
	ty := func(name string) *ast.TyLabel { return &ast.TyLabel{Position: p(), Name: name} }

	factBody := []ast.Step{
		&ast.IfStatement{
			Position: p(),
			Cond:     &ast.BinaryOp{Position: p(), Operator: ast.OpLe, Left: ident("n"), Right: num(1)},
			ThenBlock: []ast.Step{
				&ast.ReturnStatement{Position: p(), Expr: num(1)},
			},
		},
		&ast.ReturnStatement{
			Position: p(),
			Expr: &ast.BinaryOp{
				Position: p(), Operator: ast.OpMul,
				Left: ident("n"),
				Right: &ast.Call{
					Position: p(), Callee: ident("fact"),
					Args: []ast.Expr{&ast.BinaryOp{Position: p(), Operator: ast.OpSub, Left: ident("n"), Right: num(1)}},
				},
			},
		},
	}

	return &ast.SourceFile{
		Filename: "demo.ugsu",
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Position: p(), Name: "fact",
				Params:   []ast.FnDeclParam{{Name: "n", Ty: ty("number")}},
				ReturnTy: ty("number"),
				Body:     factBody,
			},
			&ast.FunctionDecl{
				Position: p(), Name: "main",
				Body: []ast.Step{
					&ast.ExprStatement{Position: p(), Expr: &ast.Call{
						Position: p(),
						Callee:   &ast.FieldAccess{Position: p(), Target: ident("number"), Name: "assertEq"},
						Args: []ast.Expr{
							&ast.Call{Position: p(), Callee: ident("fact"), Args: []ast.Expr{num(5)}},
							num(120),
						},
					}},
					&ast.ExprStatement{Position: p(), Expr: &ast.Call{
						Position: p(),
						Callee:   &ast.FieldAccess{Position: p(), Target: ident("console"), Name: "write"},
						Args:     []ast.Expr{&ast.StringLiteral{Position: p(), Value: "ok\n"}},
					}},
				},
			},
		},
	}
}

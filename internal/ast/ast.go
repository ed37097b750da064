// Package ast defines the closed node set consumed by the analyzer and the
// evaluator (language spec §3.1). The lexer/parser that produces these trees
// is out of scope for this repository; nodes are built directly (by a parser
// elsewhere, or by hand in tests).
package ast

import "github.com/uguisu-dev/uguisu-sub001/internal/token"

// Node is the base interface every AST node implements. Positions exist only
// for diagnostics; nodes are immutable once built and form a tree (no
// sharing, no cycles).
type Node interface {
	Pos() token.Position
}

// Decl is a file-level declaration: FunctionDecl or StructDecl.
type Decl interface {
	Node
	declNode()
}

// Step is either a Stmt or an Expr appearing inside a block (GLOSSARY: Step).
type Step interface {
	Node
}

// Stmt is a statement.
type Stmt interface {
	Step
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Step
	exprNode()
}

// ReferenceExpr is an expression producing an L-value (GLOSSARY): Identifier,
// FieldAccess, or IndexAccess.
type ReferenceExpr interface {
	Expr
	referenceExprNode()
}

// TyLabel is a type-name token attached to declarations and parameters.
type TyLabel struct {
	Position token.Position
	Name     string
}

func (t *TyLabel) Pos() token.Position { return t.Position }

// ---- File-level declarations -----------------------------------------

// FnDeclParam is a single parameter in a FunctionDecl.
type FnDeclParam struct {
	Name string
	Ty   *TyLabel // nil if the parameter type annotation was omitted
}

// FunctionDecl declares a named function.
type FunctionDecl struct {
	Position   token.Position
	Name       string
	Params     []FnDeclParam
	ReturnTy   *TyLabel // nil if no return type was written
	Body       []Step
	Exported   bool
}

func (d *FunctionDecl) Pos() token.Position { return d.Position }
func (d *FunctionDecl) declNode()           {}

// StructDeclField is a single field in a StructDecl.
type StructDeclField struct {
	Name string
	Ty   *TyLabel
}

// StructDecl declares a struct type.
type StructDecl struct {
	Position token.Position
	Name     string
	Fields   []StructDeclField
	Exported bool
}

func (d *StructDecl) Pos() token.Position { return d.Position }
func (d *StructDecl) declNode()           {}

// ---- Statements --------------------------------------------------------

// VariableDecl declares a local variable, optionally typed and/or initialized.
type VariableDecl struct {
	Position token.Position
	Name     string
	Ty       *TyLabel // nil if omitted
	Body     Expr     // nil if omitted
}

func (s *VariableDecl) Pos() token.Position { return s.Position }
func (s *VariableDecl) stmtNode()           {}

// AssignMode enumerates the compound-assignment operators.
type AssignMode int

const (
	AssignSet AssignMode = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
)

// AssignStatement assigns to a reference expression.
type AssignStatement struct {
	Position token.Position
	Target   ReferenceExpr
	Mode     AssignMode
	Body     Expr
}

func (s *AssignStatement) Pos() token.Position { return s.Position }
func (s *AssignStatement) stmtNode()           {}

// IfStatement is an if used as a statement (result discarded).
type IfStatement struct {
	Position  token.Position
	Cond      Expr
	ThenBlock []Step
	ElseBlock []Step // nil if no else
}

func (s *IfStatement) Pos() token.Position { return s.Position }
func (s *IfStatement) stmtNode()           {}

// LoopStatement is an unconditional loop, exited via break/return.
type LoopStatement struct {
	Position token.Position
	Block    []Step
}

func (s *LoopStatement) Pos() token.Position { return s.Position }
func (s *LoopStatement) stmtNode()           {}

// ReturnStatement returns from the enclosing function.
type ReturnStatement struct {
	Position token.Position
	Expr     Expr // nil if bare `return;`
}

func (s *ReturnStatement) Pos() token.Position { return s.Position }
func (s *ReturnStatement) stmtNode()           {}

// BreakStatement exits the enclosing loop.
type BreakStatement struct {
	Position token.Position
}

func (s *BreakStatement) Pos() token.Position { return s.Position }
func (s *BreakStatement) stmtNode()           {}

// ExprStatement wraps an expression used as a statement.
type ExprStatement struct {
	Position token.Position
	Expr     Expr
}

func (s *ExprStatement) Pos() token.Position { return s.Position }
func (s *ExprStatement) stmtNode()           {}

// ---- Expressions --------------------------------------------------------

// NumberLiteral is a numeric literal.
type NumberLiteral struct {
	Position token.Position
	Value    float64
}

func (e *NumberLiteral) Pos() token.Position { return e.Position }
func (e *NumberLiteral) exprNode()           {}

// BoolLiteral is a boolean literal.
type BoolLiteral struct {
	Position token.Position
	Value    bool
}

func (e *BoolLiteral) Pos() token.Position { return e.Position }
func (e *BoolLiteral) exprNode()           {}

// CharLiteral is a character literal; the analyzer accepts it only if Value
// is exactly one Unicode code point, so a grapheme cluster made of several
// code points (e.g. a letter plus a combining mark) is rejected.
type CharLiteral struct {
	Position token.Position
	Value    string
}

func (e *CharLiteral) Pos() token.Position { return e.Position }
func (e *CharLiteral) exprNode()           {}

// StringLiteral is a string literal.
type StringLiteral struct {
	Position token.Position
	Value    string
}

func (e *StringLiteral) Pos() token.Position { return e.Position }
func (e *StringLiteral) exprNode()           {}

// Identifier references a name in scope.
type Identifier struct {
	Position token.Position
	Name     string
}

func (e *Identifier) Pos() token.Position  { return e.Position }
func (e *Identifier) exprNode()            {}
func (e *Identifier) referenceExprNode()   {}

// FieldAccess accesses a struct field.
type FieldAccess struct {
	Position token.Position
	Target   Expr
	Name     string
}

func (e *FieldAccess) Pos() token.Position { return e.Position }
func (e *FieldAccess) exprNode()           {}
func (e *FieldAccess) referenceExprNode()  {}

// IndexAccess indexes an array.
type IndexAccess struct {
	Position token.Position
	Target   Expr
	Index    Expr
}

func (e *IndexAccess) Pos() token.Position { return e.Position }
func (e *IndexAccess) exprNode()           {}
func (e *IndexAccess) referenceExprNode()  {}

// Call invokes a function.
type Call struct {
	Position token.Position
	Callee   Expr
	Args     []Expr
}

func (e *Call) Pos() token.Position { return e.Position }
func (e *Call) exprNode()           {}

// BinaryOperator enumerates the binary operator classes (spec.md §4.3).
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

// BinaryOp is a binary operator expression.
type BinaryOp struct {
	Position token.Position
	Operator BinaryOperator
	Left     Expr
	Right    Expr
}

func (e *BinaryOp) Pos() token.Position { return e.Position }
func (e *BinaryOp) exprNode()           {}

// UnaryOp is the logical-not operator (the only unary operator, spec.md §3.1).
type UnaryOp struct {
	Position token.Position
	Expr     Expr
}

func (e *UnaryOp) Pos() token.Position { return e.Position }
func (e *UnaryOp) exprNode()           {}

// StructFieldInit is one `name: body` pair in a StructExpr.
type StructFieldInit struct {
	Name string
	Body Expr
}

// StructExpr constructs a struct value.
type StructExpr struct {
	Position token.Position
	Name     string
	Fields   []StructFieldInit
}

func (e *StructExpr) Pos() token.Position { return e.Position }
func (e *StructExpr) exprNode()           {}

// ArrayNode constructs an array value.
type ArrayNode struct {
	Position token.Position
	Items    []Expr
}

func (e *ArrayNode) Pos() token.Position { return e.Position }
func (e *ArrayNode) exprNode()           {}

// IfExpr is an if used as an expression (both branches must produce a value).
type IfExpr struct {
	Position  token.Position
	Cond      Expr
	ThenBlock []Step
	ElseBlock []Step
}

func (e *IfExpr) Pos() token.Position { return e.Position }
func (e *IfExpr) exprNode()           {}

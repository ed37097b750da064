// Package diagnostics defines the analyzer's structured error and warning
// values. Each carries a stable ErrorCode so callers (and tests) can assert
// on the *kind* of failure rather than matching message text — the shape
// funxy's own analyzer tests rely on (`*diagnostics.DiagnosticError` with a
// `.Code` field of type `diagnostics.ErrorCode`, per
// internal/analyzer/analyzer_errors_test.go in the funxy pack), implemented
// here for real since the funxy diagnostics package itself wasn't part of
// this retrieval.
package diagnostics

import (
	"fmt"

	"github.com/uguisu-dev/uguisu-sub001/internal/token"
)

// ErrorCode is a closed set of analyzer error/warning kinds (language spec §7).
type ErrorCode string

const (
	DuplicateDecl        ErrorCode = "E-DUP-DECL"
	UnknownIdentifier    ErrorCode = "E-UNKNOWN-IDENT"
	UnknownField         ErrorCode = "E-UNKNOWN-FIELD"
	UnknownTypeName      ErrorCode = "E-UNKNOWN-TYPE"
	InvalidTypeName      ErrorCode = "E-INVALID-TYPE-NAME"
	InvalidAssignTarget  ErrorCode = "E-INVALID-ASSIGN-TARGET"
	MissingParamType     ErrorCode = "E-MISSING-PARAM-TYPE"
	ArgCountMismatch     ErrorCode = "E-ARGC-MISMATCH"
	TypeMismatch         ErrorCode = "E-TYPE-MISMATCH"
	UseBeforeAssign      ErrorCode = "E-USE-BEFORE-ASSIGN"
	VoidAsExpression     ErrorCode = "E-VOID-AS-EXPR"
	BreakOutsideLoop     ErrorCode = "E-BREAK-OUTSIDE-LOOP"
	DuplicateStructField ErrorCode = "E-DUP-FIELD"
	MissingStructField   ErrorCode = "E-MISSING-FIELD"
	InvalidCharLiteral   ErrorCode = "E-INVALID-CHAR-LITERAL"
	InvalidCallee        ErrorCode = "E-INVALID-CALLEE"
	StructNotCallable    ErrorCode = "E-STRUCT-NOT-CALLABLE"

	WarnExportUnsupported  ErrorCode = "W-EXPORT-UNSUPPORTED"
	WarnArrayElemUnchecked ErrorCode = "W-ARRAY-ELEM-UNCHECKED"
)

// DiagnosticError is an accumulated analyzer error or warning.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	Pos     token.Position
	HasPos  bool
}

// Error formats the message as "<text> (line:column)" when a node position
// is available, per spec.md §6.
func (e *DiagnosticError) Error() string {
	if e.HasPos {
		return fmt.Sprintf("%s %s", e.Message, e.Pos.String())
	}
	return e.Message
}

// New builds a DiagnosticError carrying a source position.
func New(code ErrorCode, pos token.Position, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		HasPos:  true,
	}
}

// NewWithoutPos builds a DiagnosticError with no source position (used for
// warnings that aren't anchored to a single node, e.g. the array-element
// warning which is emitted once per analysis run).
func NewWithoutPos(code ErrorCode, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

package evaluator

import "github.com/uguisu-dev/uguisu-sub001/internal/symbols"

// Environment is the runtime name→*Slot scope, the T=*Slot instantiation of
// the generic frame-stack internal/symbols.Environment shares with the
// analyzer's T=symbols.Symbol instantiation (language spec §3.4: "shared in
// shape, not content, between static analysis and evaluation"). Using the
// same generic type for both guarantees the balanced-enter/leave and
// captured-environment-snapshot behavior is implemented exactly once.
type Environment = symbols.Environment[*Slot]

// NewEnvironment creates a fresh root environment.
func NewEnvironment() *Environment { return symbols.NewEnvironment[*Slot]() }

// NewChildEnvironment snapshots base for a closure capture.
func NewChildEnvironment(base *Environment) *Environment { return symbols.NewChild(base) }

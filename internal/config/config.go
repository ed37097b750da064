// Package config holds small cross-cutting toggles and built-in name
// constants, in the shape of funxy's internal/config (IsTestMode/IsLSPMode,
// config.ListTypeName, config.PrintFuncName, ...). No other package in this
// repository imports it: the analyzer uses internal/types's primitive names,
// both the analyzer and the evaluator take namespace names from
// internal/builtins, and the evaluator looks up "main" by a literal.
package config

// IsTestMode is carried from funxy's config.IsTestMode for parity of
// convention; nothing in this repository reads or sets it.
var IsTestMode = false

// Built-in primitive and composite type names (spec.md §3.2).
const (
	TypeNumber = "number"
	TypeBool   = "bool"
	TypeChar   = "char"
	TypeString = "string"
	TypeArray  = "array"
)

// Built-in pseudo-struct (namespace) names exposed in the root environment
// (spec.md §6).
const (
	NamespaceNumber  = "number"
	NamespaceChar    = "char"
	NamespaceString  = "string"
	NamespaceArray   = "array"
	NamespaceConsole = "console"
	NamespaceUUID    = "uuid"
	NamespaceYAML    = "yaml"
)

// EntryPointName is the function the evaluator invokes to start a program.
const EntryPointName = "main"

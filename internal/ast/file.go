package ast

import "github.com/uguisu-dev/uguisu-sub001/internal/token"

// SourceFile is the root node produced by the parser (spec.md §6): a flat
// list of top-level declarations plus the originating filename.
type SourceFile struct {
	Filename string
	Decls    []Decl
}

func (f *SourceFile) Pos() token.Position { return token.Position{Line: 1, Column: 1} }

// Functions returns the FunctionDecl subset of Decls, preserving order.
func (f *SourceFile) Functions() []*FunctionDecl {
	var out []*FunctionDecl
	for _, d := range f.Decls {
		if fn, ok := d.(*FunctionDecl); ok {
			out = append(out, fn)
		}
	}
	return out
}

// Structs returns the StructDecl subset of Decls, preserving order.
func (f *SourceFile) Structs() []*StructDecl {
	var out []*StructDecl
	for _, d := range f.Decls {
		if st, ok := d.(*StructDecl); ok {
			out = append(out, st)
		}
	}
	return out
}

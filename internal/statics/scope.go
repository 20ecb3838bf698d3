package statics

import (
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/ty"
)

// scope is read access to "everything declared so far": the cross-file
// Import plus this file's own, still-being-built Env. Env always wins
// on a name collision, matching how a file's own fresh declaration of a
// name shadows an imported one while that file is being checked — the
// collision itself is what item-level duplicate checking reports.
type scope struct {
	imp *Import
	env *Env
}

func (s scope) typeDef(name hir.Name) (ty.Ty, bool) {
	if t, ok := s.env.TypeDefs[name]; ok {
		return t, true
	}
	t, ok := s.imp.TypeDefs[name]
	return t, ok
}

func (s scope) fn(name hir.Name) (FnSig, bool) {
	if f, ok := s.env.Fns[name]; ok {
		return f, true
	}
	f, ok := s.imp.Fns[name]
	return f, ok
}

// structFields reports a struct's field table, treating a forward
// declaration (registered with a nil field map) the same as not found:
// neither its size nor its fields are known until a defining occurrence
// is seen.
func (s scope) structFields(name hir.Name) (map[hir.Name]ty.Ty, bool) {
	if f, ok := s.env.Structs[name]; ok && f != nil {
		return f, true
	}
	f, ok := s.imp.Structs[name]
	return f, ok && f != nil
}

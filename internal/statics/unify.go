package statics

import "github.com/azdavis/c0ls/internal/ty"

// unify unifies expected and found, reporting MismatchedTys at id if
// they don't agree, and returning Ty.Error in that case so the caller
// still has something to hand back up without cascading further errors.
func unify(cx *Cx, id Id, expected, found ty.Ty) ty.Ty {
	if t, ok := unifyImpl(cx, expected, found); ok {
		return t
	}
	cx.Errors = append(cx.Errors, Error{ID: id, Kind: MismatchedTys, WantTy: expected, Ty: found})
	return ty.Error
}

// unifyImpl is unify without error reporting, used to implement unify
// itself and to let binary operators try several candidate "expected"
// types (see binOpTys's []Ty param lists) before giving up.
func unifyImpl(cx *Cx, expected, found ty.Ty) (ty.Ty, bool) {
	return cx.Tys.Unify(expected, found)
}

// noVoid reports InvalidVoidTy at id if t is void.
func noVoid(cx *Cx, id Id, t ty.Ty) {
	if cx.Tys.Get(t).Kind == ty.KVoid {
		cx.error(id, InvalidVoidTy)
	}
}

// noStruct reports InvalidStructTy at id if t is a struct type: structs
// may only ever be accessed through a pointer, never held, passed, or
// returned by value.
func noStruct(cx *Cx, id Id, t ty.Ty) {
	if cx.Tys.Get(t).Kind == ty.KStruct {
		cx.error(id, InvalidStructTy)
	}
}

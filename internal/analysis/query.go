package analysis

import (
	"github.com/azdavis/c0ls/internal/cst"
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/lex"
	"github.com/azdavis/c0ls/internal/statics"
	"github.com/azdavis/c0ls/internal/textpos"
	"github.com/azdavis/c0ls/internal/ty"
	"github.com/azdavis/c0ls/internal/uri"
)

// Hover returns the display string for whatever is at pos in uriStr, or
// false if there's nothing to show (no token there, or the build is in
// a degraded cycle state).
func (db *Db) Hover(uriStr string, pos textpos.Position) (string, bool) {
	if db.cycle != nil {
		return "", false
	}
	_, fd, ok := db.fileByURI(uriStr)
	if !ok {
		return "", false
	}
	tok := tokenAt(fd.cstRoot, fd.pos.TextSize(pos))
	if tok == nil {
		return "", false
	}

	if eid, ok := ancestorExpr(fd, tok); ok {
		e := fd.hirRoot.Arenas.Expr.Get(eid)
		if e.Kind == hir.ExprCall {
			if sig, ok := scopeOf(db.finalImport, fd.env).fn(e.Name); ok {
				return renderFnSig(db, string(e.Name), sig), true
			}
		}
		if t, ok := fd.env.ExprTys[eid]; ok {
			return db.tys.Display(t), true
		}
	}
	if tid, ok := ancestorTy(fd, tok); ok {
		t := statics.ResolveTyDisplay(db.tys, db.finalImport, fd.env, fd.hirRoot.Arenas, tid)
		return db.tys.Display(t), true
	}
	return "", false
}

// GoToDef resolves the identifier at pos in uriStr to the location of
// its defining declaration, searching the file's own Env first and then
// the build's final cross-file Import (the "latest matching item" that
// Import's merge policy settles on) — matching how checking itself
// resolves a name.
func (db *Db) GoToDef(uriStr string, pos textpos.Position) (defURI string, defRange textpos.Range, ok bool) {
	if db.cycle != nil {
		return "", textpos.Range{}, false
	}
	selfID, fd, found := db.fileByURI(uriStr)
	if !found {
		return "", textpos.Range{}, false
	}
	tok := tokenAt(fd.cstRoot, fd.pos.TextSize(pos))
	if tok == nil || tok.Token != lex.Ident {
		return "", textpos.Range{}, false
	}

	if eid, ok2 := ancestorExpr(fd, tok); ok2 {
		e := fd.hirRoot.Arenas.Expr.Get(eid)
		switch e.Kind {
		case hir.ExprCall:
			if loc, ok3 := db.resolveName(selfID, fd.env.FnDeclIds, db.fnOrigin, e.Name); ok3 {
				return db.locationOf(loc)
			}
		case hir.ExprDot:
			if baseTy, ok3 := fd.env.ExprTys[e.A]; ok3 {
				data := db.tys.Get(derefStruct(db.tys, baseTy))
				if data.Kind == ty.KStruct {
					if loc, ok4 := db.resolveName(selfID, fd.env.StructDeclIds, db.structOrigin, hir.Name(data.StructName)); ok4 {
						return db.locationOf(loc)
					}
				}
			}
		}
	}
	if tid, ok2 := ancestorTy(fd, tok); ok2 {
		t := fd.hirRoot.Arenas.Ty.Get(tid)
		switch t.Kind {
		case hir.TyStruct:
			if loc, ok3 := db.resolveName(selfID, fd.env.StructDeclIds, db.structOrigin, t.Name); ok3 {
				return db.locationOf(loc)
			}
		case hir.TyNamed:
			if loc, ok3 := db.resolveName(selfID, fd.env.TypeDefDeclIds, db.typeDefOrigin, t.Name); ok3 {
				return db.locationOf(loc)
			}
		}
	}
	return "", textpos.Range{}, false
}

// resolveName looks name up in self's own declarations first (the Env
// search), falling back to the build-wide origin table (the Import
// search) — the same two-tier order checking itself uses to resolve a
// name. A name with no origin anywhere (a standard-library declaration,
// which has no file of its own) reports not found.
func (db *Db) resolveName(self uri.ID, local map[hir.Name]hir.ItemId, global map[hir.Name]defLoc, name hir.Name) (defLoc, bool) {
	if item, ok := local[name]; ok {
		return defLoc{file: self, item: item}, true
	}
	loc, ok := global[name]
	return loc, ok
}

func (db *Db) locationOf(loc defLoc) (string, textpos.Range, bool) {
	fd, ok := db.files[loc.file]
	if !ok {
		return "", textpos.Range{}, false
	}
	return db.uris.Get(loc.file), db.rangeOfItem(fd, loc.item), true
}

func renderFnSig(db *Db, name string, sig statics.FnSig) string {
	s := name + "("
	for i, p := range sig.Params {
		if i > 0 {
			s += ", "
		}
		s += db.tys.Display(p.Ty)
	}
	s += ") -> " + db.tys.Display(sig.RetTy)
	return s
}

// scopeHelper re-exposes statics' Env-shadows-Import fn lookup through
// the one combinator query.go needs, without reaching into statics'
// unexported scope type.
type scopeHelper struct {
	imp *statics.Import
	env *statics.Env
}

func scopeOf(imp *statics.Import, env *statics.Env) scopeHelper { return scopeHelper{imp: imp, env: env} }

func (s scopeHelper) fn(name hir.Name) (statics.FnSig, bool) {
	if f, ok := s.env.Fns[name]; ok {
		return f, true
	}
	f, ok := s.imp.Fns[name]
	return f, ok
}

// derefStruct strips any number of pointer layers off t, the way
// resolving `p->field`'s definition must see through the implicit
// dereference `->` performs to reach the struct type underneath.
func derefStruct(tys *ty.Db, t ty.Ty) ty.Ty {
	for {
		d := tys.Get(t)
		if d.Kind != ty.KPtr {
			return t
		}
		t = d.Inner
	}
}

// ancestorExpr walks up from n to the nearest ancestor CST node that
// lowering recorded as an expression, via fd.maps' reverse pointer
// table.
func ancestorExpr(fd *fileData, n *cst.Node) (hir.ExprId, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.IsToken {
			continue
		}
		if id, ok := fd.maps.PtrExpr[cst.PtrOf(cur)]; ok {
			return id, true
		}
	}
	return hir.ExprId{}, false
}

func ancestorTy(fd *fileData, n *cst.Node) (hir.TyId, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.IsToken {
			continue
		}
		if id, ok := fd.maps.PtrTy[cst.PtrOf(cur)]; ok {
			return id, true
		}
	}
	return hir.TyId{}, false
}

// tokenAt returns the non-trivia token at offset. When offset sits
// exactly on a boundary between two tokens rather than inside one, it
// breaks the tie by salience (identifier > literal > keyword >
// punctuation): a cursor resting between `foo` and `;` almost always
// means the editor is asking about `foo`.
func tokenAt(root *cst.Node, offset uint32) *cst.Node {
	left, right := boundaryNeighbors(root, offset)
	if n := findContaining(root, offset); n != nil {
		if n != right || left == nil || left.Range.End != offset {
			return n
		}
	}
	switch {
	case right == nil:
		return left
	case left == nil:
		return right
	case salience(right.Token) >= salience(left.Token):
		return right
	default:
		return left
	}
}

func findContaining(n *cst.Node, offset uint32) *cst.Node {
	if n.IsToken {
		if n.Token.IsTrivia() {
			return nil
		}
		if n.Range.Start <= offset && offset < n.Range.End {
			return n
		}
		return nil
	}
	for _, c := range n.Children {
		if c.Range.Start <= offset && offset < c.Range.End {
			if r := findContaining(c, offset); r != nil {
				return r
			}
		}
	}
	return nil
}

// boundaryNeighbors returns the non-trivia tokens immediately before and
// at-or-after offset, for the case where offset falls exactly between
// two tokens rather than inside one.
func boundaryNeighbors(root *cst.Node, offset uint32) (left, right *cst.Node) {
	var flat []*cst.Node
	var flatten func(n *cst.Node)
	flatten = func(n *cst.Node) {
		if n.IsToken {
			if !n.Token.IsTrivia() {
				flat = append(flat, n)
			}
			return
		}
		for _, c := range n.Children {
			flatten(c)
		}
	}
	flatten(root)
	for i, t := range flat {
		if t.Range.Start >= offset {
			right = t
			if i > 0 {
				left = flat[i-1]
			}
			return
		}
	}
	if len(flat) > 0 {
		left = flat[len(flat)-1]
	}
	return
}

func salience(k lex.Kind) int {
	switch {
	case k == lex.Ident:
		return 4
	case k >= lex.DecLit && k <= lex.LibLit:
		return 3
	case k >= lex.AllocKw && k <= lex.UseKw:
		return 2
	default:
		return 1
	}
}

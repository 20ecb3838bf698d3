package analysis

import (
	"sort"

	"github.com/azdavis/c0ls/internal/cst"
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/statics"
	"github.com/azdavis/c0ls/internal/textpos"
	"github.com/azdavis/c0ls/internal/uri"
)

// AllDiagnostics returns every diagnostic for uriStr, truncated to
// config.MaxDiagnostics. If the build's `#use` graph has a cycle, every
// file degrades to its lex/parse/use diagnostics plus one synthetic
// cycle diagnostic pointed at the cycle's witness file — nothing
// downstream of a cycle has a meaningful cross-file Import to check
// against.
func (db *Db) AllDiagnostics(uriStr string) ([]Diagnostic, bool) {
	id, fd, ok := db.fileByURI(uriStr)
	if !ok {
		return nil, false
	}

	var out []Diagnostic
	for _, e := range fd.parseErrors {
		out = append(out, Diagnostic{Range: fd.pos.Range(toTextPos(e.Range)), Message: e.Message, Severity: SeverityError})
	}
	for _, e := range fd.lowerErrors {
		out = append(out, Diagnostic{Range: fd.pos.Range(toTextPos(e.Range)), Message: e.Message, Severity: SeverityError})
	}
	for _, e := range fd.useResult.Errors {
		out = append(out, Diagnostic{Range: fd.pos.Range(e.Range), Message: e.Kind.String(), Severity: SeverityError})
	}

	if db.cycle != nil {
		if db.uris.Get(id) == db.cycle.Witness {
			out = append(out, Diagnostic{
				Range:    textpos.Range{},
				Message:  db.cycle.Error(),
				Severity: SeverityError,
			})
		}
		return truncate(out, db.config.MaxDiagnostics), true
	}

	for _, e := range fd.staticsErrors {
		out = append(out, Diagnostic{
			Range:    db.rangeOfID(fd, e.ID),
			Message:  e.Message(db.tys),
			Severity: SeverityError,
		})
	}

	for _, name := range db.unusedFunctions(fd) {
		out = append(out, Diagnostic{
			Range:    db.rangeOfItem(fd, fd.env.FnDeclIds[name]),
			Message:  "function `" + string(name) + "` is never called",
			Severity: SeverityWarning,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Range.Start != out[j].Range.Start {
			return out[i].Range.Start.Less(out[j].Range.Start)
		}
		return out[i].Message < out[j].Message
	})
	return truncate(out, db.config.MaxDiagnostics), true
}

// unusedFunctions reports every non-main function fd's own file defines
// that no file in the whole build ever calls — a build-wide union,
// since a function defined in one file is routinely called only from
// another that `#use`s it.
func (db *Db) unusedFunctions(fd *fileData) []hir.Name {
	called := map[hir.Name]bool{}
	for _, other := range db.files {
		for name := range other.env.Called {
			called[name] = true
		}
	}
	var out []hir.Name
	for name, sig := range fd.env.Fns {
		if name == "main" || sig.Defined != statics.Yes || called[name] {
			continue
		}
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func truncate(ds []Diagnostic, max int) []Diagnostic {
	if max <= 0 || len(ds) <= max {
		return ds
	}
	return ds[:max]
}

func toTextPos(r cst.TextRange) textpos.TextRange {
	return textpos.TextRange{Start: r.Start, End: r.End}
}

// rangeOfID resolves a static checking error's location-free Id back to
// a display range, by looking its underlying arena id up in fd's
// pointer maps and resolving the resulting cst.Ptr against fd's own
// tree. A cross-file merge error (reported against the zero Id, an
// invalid ExprId with no corresponding pointer-map entry) falls back to
// the whole file's range.
func (db *Db) rangeOfID(fd *fileData, id statics.Id) textpos.Range {
	var ptr cst.Ptr
	var ok bool
	switch id.Kind {
	case statics.IdExpr:
		ptr, ok = fd.maps.ExprPtr[id.Expr]
	case statics.IdTy:
		ptr, ok = fd.maps.TyPtr[id.Ty]
	case statics.IdStmt:
		ptr, ok = fd.maps.StmtPtr[id.Stmt]
	case statics.IdSimp:
		ptr, ok = fd.maps.SimpPtr[id.Simp]
	case statics.IdItem:
		ptr, ok = fd.maps.ItemPtr[id.Item]
	}
	if !ok {
		return fd.pos.Range(toTextPos(fd.cstRoot.Range))
	}
	node := ptr.Resolve(fd.cstRoot)
	return fd.pos.Range(toTextPos(node.Range))
}

// rangeOfItem resolves an item id directly (bypassing rangeOfID's Id
// tagging), used for diagnostics computed after checking that name an
// item rather than an expression/type/stmt/simp.
func (db *Db) rangeOfItem(fd *fileData, id hir.ItemId) textpos.Range {
	ptr, ok := fd.maps.ItemPtr[id]
	if !ok {
		return fd.pos.Range(toTextPos(fd.cstRoot.Range))
	}
	node := ptr.Resolve(fd.cstRoot)
	return fd.pos.Range(toTextPos(node.Range))
}

// fileByURI resolves a URI to its dense ID and derived fileData.
func (db *Db) fileByURI(uriStr string) (uri.ID, *fileData, bool) {
	id, ok := db.uris.GetID(uriStr)
	if !ok {
		return uri.ID{}, nil, false
	}
	fd, ok := db.files[id]
	return id, fd, ok
}

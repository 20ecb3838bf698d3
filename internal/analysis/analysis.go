// Package analysis is the query database: the single owner of a build's
// lexed/parsed/lowered/checked state across every file, answering
// diagnostics, hover, and go-to-definition queries and applying
// updates, each of which rebuilds every file from its current text.
//
// A Db is built once with New and then driven entirely through Build and
// Update — mirroring the teacher's core.Engine, which likewise wraps one
// mutable snapshot of derived state behind a small method set instead of
// exposing its internals for callers to poke at directly.
package analysis

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/azdavis/c0ls/internal/config"
	"github.com/azdavis/c0ls/internal/cst"
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/lower"
	"github.com/azdavis/c0ls/internal/parse"
	"github.com/azdavis/c0ls/internal/statics"
	"github.com/azdavis/c0ls/internal/stdlib"
	"github.com/azdavis/c0ls/internal/textpos"
	"github.com/azdavis/c0ls/internal/toposort"
	"github.com/azdavis/c0ls/internal/ty"
	"github.com/azdavis/c0ls/internal/uri"
	"github.com/azdavis/c0ls/internal/uses"
)

// Severity classifies a Diagnostic the way an editor's problems panel
// does.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one fully-resolved problem, ready for display: its
// source range is already computed, no further arena lookups needed.
type Diagnostic struct {
	Range    textpos.Range
	Message  string
	Severity Severity
}

// CycleError reports that the `#use` dependency graph isn't a DAG. Build
// still succeeds (a malformed program is not a programmer error), but
// every file degrades to lex/parse/use diagnostics only: nothing downstream
// of a cycle can be given a meaningful cross-file Import.
type CycleError struct {
	Witness string // the URI of one file on the cycle
}

func (e CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected (witness: %s)", e.Witness)
}

// defLoc locates one declaration: which file introduced it and the item
// inside that file's own arenas.
type defLoc struct {
	file uri.ID
	item hir.ItemId
}

// fileData is everything derived from one file's source text, kept
// around so queries never need to re-run any pipeline stage.
type fileData struct {
	pos *textpos.Db

	cstRoot     *cst.Node
	parseErrors []parse.Error

	hirRoot     *hir.Root
	maps        *lower.Maps
	lowerErrors []lower.Error

	useResult uses.Result

	env           *statics.Env
	staticsErrors []statics.Error
}

// Db is the analysis database for one workspace. It is not safe for
// concurrent use; an embedding server serializes queries and updates
// against it itself (see Lock/Unlock).
type Db struct {
	mu sync.Mutex

	config config.Config

	uris *uri.Table
	tys  *ty.Db

	sources map[string]string // uri -> text, the durable input Update mutates
	files   map[uri.ID]*fileData
	order   []uri.ID // topological order, leaves (no #use) first
	cycle   *CycleError

	finalImport *statics.Import

	fnOrigin      map[hir.Name]defLoc
	structOrigin  map[hir.Name]defLoc
	typeDefOrigin map[hir.Name]defLoc
}

// New returns an empty Db configured by cfg. Call Build to give it an
// initial set of files.
func New(cfg config.Config) *Db {
	return &Db{config: cfg}
}

// Build (re)initializes the database from files (URI -> source text) and
// runs the full pipeline: lex, parse, lower, and resolve `#use`s for
// every file (in parallel, since none of that touches shared state),
// then topologically order files by their `#use` graph and statically
// check them in that order, threading one running cross-file Import
// through the sequence.
func (db *Db) Build(files map[string]string) error {
	db.sources = make(map[string]string, len(files))
	for k, v := range files {
		db.sources[k] = v
	}
	return db.rebuild()
}

func (db *Db) rebuild() error {
	db.uris = uri.NewTable()
	db.tys = ty.NewDb()
	db.files = map[uri.ID]*fileData{}
	db.order = nil
	db.cycle = nil
	db.finalImport = nil
	db.fnOrigin = map[hir.Name]defLoc{}
	db.structOrigin = map[hir.Name]defLoc{}
	db.typeDefOrigin = map[hir.Name]defLoc{}

	ids := make([]uri.ID, 0, len(db.sources))
	for u := range db.sources {
		id, err := db.uris.Insert(u)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	db.frontHalf(ids)
	db.backHalf(ids)
	return nil
}

// frontHalf runs lex+parse+lower+use-resolution for every file, fanned
// out across a worker pool sized like the teacher's FileWalker (one
// buffered job channel, runtime.NumCPU()-scaled workers, a WaitGroup to
// join): nothing in this half touches the shared type store, so it is
// safely parallel, per the concurrency note this pipeline is grounded on.
func (db *Db) frontHalf(ids []uri.ID) {
	workers := db.config.Concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(ids) {
		workers = len(ids)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan uri.ID, len(ids))
	results := make(chan struct {
		id uri.ID
		fd *fileData
	}, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				src := db.sources[db.uris.Get(id)]
				results <- struct {
					id uri.ID
					fd *fileData
				}{id, buildFileFront(db.uris, id, src)}
			}
		}()
	}
	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()
	close(results)

	for r := range results {
		db.files[r.id] = r.fd
	}
}

// buildFileFront runs the pure, shared-state-free half of the pipeline
// for one file: it only reads db.uris (fully populated before any
// worker starts, so concurrent reads are safe) and never writes to db.
func buildFileFront(uris *uri.Table, id uri.ID, src string) *fileData {
	parseRes := parse.Parse(src)
	lowerRes := lower.Lower(parseRes.Root)
	useRes := uses.Get(uris, id, lowerRes.Uses)
	return &fileData{
		pos:         textpos.New(src),
		cstRoot:     parseRes.Root,
		parseErrors: parseRes.Errors,
		hirRoot:     lowerRes.Root,
		maps:        lowerRes.Maps,
		lowerErrors: lowerRes.Errors,
		useResult:   useRes,
	}
}

// backHalf topologically orders files by their resolved local `#use`
// edges and statically checks them in that order, sequentially: each
// file's checking mutates the shared type store and folds its result
// into the running Import the next file in order sees, so this half
// cannot be parallelized the way the front half can.
func (db *Db) backHalf(ids []uri.ID) {
	graph := toposort.Graph[uri.ID]{}
	for _, id := range ids {
		deps := map[uri.ID]bool{}
		for _, u := range db.files[id].useResult.Uses {
			if !u.IsLib {
				deps[u.File] = true
			}
		}
		graph[id] = deps
	}
	less := func(a, b uri.ID) bool { return db.uris.Get(a) < db.uris.Get(b) }

	order, err := toposort.Get(graph, less)
	if err != nil {
		cyc := err.(toposort.CycleError[uri.ID])
		db.cycle = &CycleError{Witness: db.uris.Get(cyc.Witness)}
		return
	}
	db.order = order

	libs := bootstrapStdlib(db.tys)
	imp := statics.WithMain()

	for _, id := range order {
		fd := db.files[id]
		for _, u := range fd.useResult.Uses {
			if u.IsLib {
				foldLib(imp, libs[u.Lib])
			}
		}
		cx := &statics.Cx{Tys: db.tys, CheckUnreachable: db.config.UnreachableCode}
		env := statics.CheckFile(cx, imp, fd.hirRoot.Arenas, fd.hirRoot.Items)
		fd.env = env
		statics.AddEnv(cx, imp, env)
		fd.staticsErrors = cx.Errors

		recordOrigins(db.fnOrigin, env.FnDeclIds, id)
		recordOrigins(db.structOrigin, env.StructDeclIds, id)
		recordOrigins(db.typeDefOrigin, env.TypeDefDeclIds, id)
	}
	db.finalImport = imp
}

func recordOrigins(dst map[hir.Name]defLoc, src map[hir.Name]hir.ItemId, file uri.ID) {
	for name, item := range src {
		dst[name] = defLoc{file: file, item: item}
	}
}

// foldLib merges a bootstrapped stdlib Env's declarations into imp as
// plain (MustNot-defined) entries — a `#use <lib>` behaves exactly like
// importing a header file, just one whose source never changes.
func foldLib(imp *statics.Import, env *statics.Env) {
	for name, t := range env.TypeDefs {
		if _, ok := imp.TypeDefs[name]; !ok {
			imp.TypeDefs[name] = t
		}
	}
	for name, fields := range env.Structs {
		if _, ok := imp.Structs[name]; !ok {
			imp.Structs[name] = fields
		}
	}
	for name, sig := range env.Fns {
		if _, ok := imp.Fns[name]; !ok {
			statics.WithHeaderFn(imp, name, sig)
		}
	}
}

// bootstrapStdlib checks every bundled library header once against a
// fresh, empty Import, producing one Env per library. It must be redone
// against this build's own tys every time Build runs: a ty.Ty handle
// only means something relative to the Db that minted it, so a handle
// memoized from an earlier build's stdlib pass would be meaningless
// (and unsafe to compare) against this build's types.
func bootstrapStdlib(tys *ty.Db) map[stdlib.Lib]*statics.Env {
	out := make(map[stdlib.Lib]*statics.Env, len(stdlib.All()))
	for _, l := range stdlib.All() {
		src := stdlib.Source(l)
		parseRes := parse.Parse(src)
		lowerRes := lower.Lower(parseRes.Root)
		cx := &statics.Cx{Tys: tys}
		out[l] = statics.CheckFile(cx, statics.NewImport(), lowerRes.Root.Arenas, lowerRes.Root.Items)
	}
	return out
}

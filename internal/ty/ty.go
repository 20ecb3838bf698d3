// Package ty is the hash-consed type store: every distinct type used
// while checking a program gets exactly one Ty handle, so comparing two
// types for equality is a plain integer comparison and structurally
// identical types (e.g. two occurrences of "int*") always collapse to
// the same handle.
package ty

import "fmt"

// Ty is an opaque handle into a Db. Tys from different Dbs must never be
// mixed — a Ty only means something relative to the Db that minted it.
type Ty struct{ idx uint32 }

// The primordial types every Db starts with, at fixed indices, so code
// can refer to e.g. Int without a Db handle in scope.
var (
	Top      = Ty{0}
	Int      = Ty{1}
	Bool     = Ty{2}
	String   = Ty{3}
	Char     = Ty{4}
	Void     = Ty{5}
	PtrTop   = Ty{6}
	ArrayTop = Ty{7}
	// Error is the sentinel type substituted whenever checking cannot
	// assign a real type (an undefined name, a prior mismatch): it
	// unifies with everything and suppresses cascading diagnostics.
	Error = Ty{8}
)

func (t Ty) String() string { return fmt.Sprintf("ty#%d", t.idx) }

// Display renders t the way a Language programmer would write it,
// resolving Ptr/Array/Struct recursively against d. Used for hover text
// and for rendering mismatched-type diagnostics.
func (d *Db) Display(t Ty) string {
	data := d.Get(t)
	switch data.Kind {
	case KError:
		return "<error>"
	case KTop:
		return "<any>"
	case KInt:
		return "int"
	case KBool:
		return "bool"
	case KString:
		return "string"
	case KChar:
		return "char"
	case KVoid:
		return "void"
	case KPtr:
		return d.Display(data.Inner) + "*"
	case KArray:
		return d.Display(data.Inner) + "[]"
	case KStruct:
		return "struct " + data.StructName
	default:
		return "<error>"
	}
}

// Data describes what a Ty stands for. Two Data values that compare
// equal always produce the same Ty from Db.Mk.
type Data struct {
	Kind Kind
	// Inner is used by Ptr and Array.
	Inner Ty
	// StructName is used by Struct.
	StructName string
}

type Kind int

const (
	KTop Kind = iota
	KInt
	KBool
	KString
	KChar
	KVoid
	KPtr
	KArray
	KStruct
	// KError is Data's kind for the Error sentinel.
	KError
)

// Db is a type store: a bijection between Data and Ty, built up lazily
// as Mk is called. The zero value is not usable; use NewDb.
type Db struct {
	tyToData []Data
	dataToTy map[Data]Ty
}

// NewDb returns a Db pre-populated with the primordial types (Top
// through Error) at their fixed indices.
func NewDb() *Db {
	d := &Db{dataToTy: map[Data]Ty{}}
	d.insert(Data{Kind: KTop})
	d.insert(Data{Kind: KInt})
	d.insert(Data{Kind: KBool})
	d.insert(Data{Kind: KString})
	d.insert(Data{Kind: KChar})
	d.insert(Data{Kind: KVoid})
	d.insert(Data{Kind: KPtr, Inner: Top})
	d.insert(Data{Kind: KArray, Inner: Top})
	d.insert(Data{Kind: KError})
	return d
}

func (d *Db) insert(data Data) Ty {
	ret := Ty{idx: uint32(len(d.tyToData))}
	d.tyToData = append(d.tyToData, data)
	d.dataToTy[data] = ret
	return ret
}

// Mk returns the Ty for data, minting a new one if this exact Data
// hasn't been seen before.
func (d *Db) Mk(data Data) Ty {
	if t, ok := d.dataToTy[data]; ok {
		return t
	}
	return d.insert(data)
}

// Get returns the Data behind ty. It panics if ty wasn't issued by this
// Db, mirroring the teacher's fail-fast invariant checks on internally
// consistent state (see internal/uri.Table.Get).
func (d *Db) Get(t Ty) Data {
	if int(t.idx) >= len(d.tyToData) {
		panic(fmt.Sprintf("ty: no data for %v", t))
	}
	return d.tyToData[t.idx]
}

// Ptr returns the Ty for a pointer to inner.
func (d *Db) Ptr(inner Ty) Ty { return d.Mk(Data{Kind: KPtr, Inner: inner}) }

// Array returns the Ty for an array of inner.
func (d *Db) Array(inner Ty) Ty { return d.Mk(Data{Kind: KArray, Inner: inner}) }

// Struct returns the Ty naming a struct, keyed by struct name (two
// structs with the same name always mean the same type, matching the
// language's global, non-scoped struct namespace).
func (d *Db) Struct(name string) Ty { return d.Mk(Data{Kind: KStruct, StructName: name}) }

// Unify returns the most specific type both expected and found agree
// on, plus false if they are incompatible. Top unifies with anything
// (it models NULL and the empty Array/Ptr element type); Error unifies
// with anything and stays Error, so one mismatch doesn't cascade into
// unrelated diagnostics; Ptr and Array unify structurally, recursing on
// their element type.
func (d *Db) Unify(expected, found Ty) (Ty, bool) {
	if expected == found {
		return expected, true
	}
	ed, fd := d.Get(expected), d.Get(found)
	switch {
	case ed.Kind == KError || fd.Kind == KError:
		return Error, true
	case ed.Kind == KTop:
		return found, true
	case fd.Kind == KTop:
		return expected, true
	case ed.Kind == KPtr && fd.Kind == KPtr:
		inner, ok := d.Unify(ed.Inner, fd.Inner)
		if !ok {
			return Ty{}, false
		}
		return d.Ptr(inner), true
	case ed.Kind == KArray && fd.Kind == KArray:
		inner, ok := d.Unify(ed.Inner, fd.Inner)
		if !ok {
			return Ty{}, false
		}
		return d.Array(inner), true
	default:
		return Ty{}, false
	}
}

// IsSmall reports whether t has a known, fixed size — the language
// forbids `void` (and, transitively, anything containing it) wherever a
// value needs to occupy storage: local variables, struct fields,
// function parameters, array/pointer targets.
func (d *Db) IsSmall(t Ty) bool {
	return d.Get(t).Kind != KVoid
}

// Package uri maps file URIs to small dense identifiers tagged by file
// kind (header or source), so identifiers compare cheaply and kind
// dispatch never needs a map lookup.
package uri

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind distinguishes a header from a source file.
type Kind int

const (
	// Header is a file with extension "h0".
	Header Kind = iota
	// Source is a file with extension "c0".
	Source
)

func (k Kind) String() string {
	if k == Source {
		return "source"
	}
	return "header"
}

const top uint32 = 1 << 31

// ID is a packed (kind, index) identifier. The kind lives in the high bit
// so Kind() is a bit test and two IDs from the same Table compare cheaply.
type ID struct {
	raw uint32
}

func newID(index uint32, kind Kind) ID {
	if index&top != 0 {
		panic("uri: too many files in table")
	}
	if kind == Source {
		return ID{raw: index | top}
	}
	return ID{raw: index}
}

// Kind reports whether id names a header or a source file.
func (id ID) Kind() Kind {
	if id.raw&top == top {
		return Source
	}
	return Header
}

func (id ID) String() string {
	return fmt.Sprintf("%s#%d", id.Kind(), id.raw&^top)
}

// KindOf classifies a URI path by its extension. It returns an error for
// any extension other than "c0" or "h0" — inserting such a URI is a
// caller error per the external-interface contract.
func KindOf(path string) (Kind, error) {
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case "h0":
		return Header, nil
	case "c0":
		return Source, nil
	default:
		return 0, fmt.Errorf("uri: bad extension for %q (want .c0 or .h0)", path)
	}
}

// Table is a bijection between URI strings and dense IDs.
type Table struct {
	idToURI map[ID]string
	uriToID map[string]ID
	next    uint32
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{idToURI: map[ID]string{}, uriToID: map[string]ID{}}
}

// Insert returns the existing ID for uri if present, or mints and returns
// a new one. It returns an error if uri's extension is neither "c0" nor
// "h0".
func (t *Table) Insert(uriStr string) (ID, error) {
	if id, ok := t.uriToID[uriStr]; ok {
		return id, nil
	}
	kind, err := KindOf(uriStr)
	if err != nil {
		return ID{}, err
	}
	id := newID(t.next, kind)
	t.next++
	t.idToURI[id] = uriStr
	t.uriToID[uriStr] = id
	return id, nil
}

// GetID returns the ID associated with uri, if any.
func (t *Table) GetID(uriStr string) (ID, bool) {
	id, ok := t.uriToID[uriStr]
	return id, ok
}

// Get returns the URI string associated with id. It panics if id was not
// produced by this table — mirroring the teacher's fail-fast invariant
// checks on internally-consistent state.
func (t *Table) Get(id ID) string {
	u, ok := t.idToURI[id]
	if !ok {
		panic(fmt.Sprintf("uri: no uri for id %v", id))
	}
	return u
}

// Iter returns every ID currently in the table, in insertion order.
func (t *Table) Iter() []ID {
	out := make([]ID, 0, len(t.idToURI))
	for i := uint32(0); i < t.next; i++ {
		for _, kind := range [2]Kind{Header, Source} {
			id := newID(i, kind)
			if _, ok := t.idToURI[id]; ok {
				out = append(out, id)
			}
		}
	}
	return out
}

// Len returns the number of URIs in the table.
func (t *Table) Len() int {
	return len(t.idToURI)
}

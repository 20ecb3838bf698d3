// Package stdlib enumerates the bundled standard-library headers and
// their source text. internal/analysis checks each header once per
// build, so every file in that build that does `#use <string>` resolves
// against the same checked Env instead of re-checking the header per
// file.
package stdlib

import "fmt"

// Lib is one of the closed set of bundled library names usable in a
// `#use <name>` pragma.
type Lib int

const (
	Args Lib = iota
	Conio
	File
	Img
	Parse
	Rand
	String
	Util
)

var libNames = map[string]Lib{
	"args":   Args,
	"conio":  Conio,
	"file":   File,
	"img":    Img,
	"parse":  Parse,
	"rand":   Rand,
	"string": String,
	"util":   Util,
}

var libStrings = map[Lib]string{
	Args: "args", Conio: "conio", File: "file", Img: "img",
	Parse: "parse", Rand: "rand", String: "string", Util: "util",
}

func (l Lib) String() string {
	if s, ok := libStrings[l]; ok {
		return s
	}
	return "unknown"
}

// ParseLib maps a library-literal's inner text (the part between the
// angle brackets) to its Lib, or reports false if name isn't one of the
// bundled libraries.
func ParseLib(name string) (Lib, bool) {
	l, ok := libNames[name]
	return l, ok
}

// All returns every bundled library, in a stable order.
func All() []Lib {
	return []Lib{Args, Conio, File, Img, Parse, Rand, String, Util}
}

// ErrNoSuchLib is returned when a `#use <name>` pragma names a library
// outside the closed set ParseLib recognizes.
type ErrNoSuchLib struct {
	Name string
}

func (e ErrNoSuchLib) Error() string {
	return fmt.Sprintf("no such library %q", e.Name)
}

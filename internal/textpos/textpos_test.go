package textpos

import "testing"

func check(t *testing.T, s string, cases [][3]uint32) {
	t.Helper()
	db := New(s)
	for _, c := range cases {
		offset, wantLine, wantChar := c[0], c[1], c[2]
		pos := db.Position(offset)
		if pos.Line != wantLine || pos.Character != wantChar {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", offset, pos.Line, pos.Character, wantLine, wantChar)
		}
		got := db.TextSize(Position{Line: wantLine, Character: wantChar})
		if got != offset {
			t.Errorf("TextSize(%d:%d) = %d, want %d", wantLine, wantChar, got, offset)
		}
	}
}

func TestSimple(t *testing.T) {
	check(t, "hello\nnew\nworld\n", [][3]uint32{
		{0, 0, 0},
		{1, 0, 1},
		{4, 0, 4},
		{5, 0, 5},
		{6, 1, 0},
		{9, 1, 3},
		{10, 2, 0},
		{11, 2, 1},
		{15, 2, 5},
		{16, 3, 0},
	})
}

func TestLeadingNewline(t *testing.T) {
	check(t, "\n\nhey\n\nthere", [][3]uint32{
		{0, 0, 0},
		{1, 1, 0},
		{2, 2, 0},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 0},
		{7, 4, 0},
		{8, 4, 1},
		{12, 4, 5},
	})
}

// TestLSPSpecExample matches the editor-protocol spec's own UTF-16 example:
// "a" + 2x U+00EA (ê, 2 bytes utf8 / 1 utf16) + U+00C4 (Ä, 2/1) + "b".
func TestLSPSpecExample(t *testing.T) {
	check(t, "aêêÄb", [][3]uint32{
		{0, 0, 0},
		{1, 0, 1},
		{5, 0, 3},
		{7, 0, 4},
	})
}

func TestRangeRoundTrip(t *testing.T) {
	db := New("int main(void) {\n  return 0;\n}\n")
	r := db.Range(TextRange{Start: 18, End: 24})
	if r.Start.Line != 1 || r.Start.Character != 1 {
		t.Errorf("unexpected start: %+v", r.Start)
	}
}

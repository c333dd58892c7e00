package table

import "testing"

func TestFormatPadsColumns(t *testing.T) {
	got := Format([][]string{
		{"Add", "append"},
		{"Rename", "change"},
	}, []Alignment{AlignLeft, AlignLeft})
	want := []string{"Add     append", "Rename  change"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatRightAlignAndWideRunes(t *testing.T) {
	got := Format([][]string{
		{"日本", "1"},
		{"ab", "100"},
	}, []Alignment{AlignLeft, AlignRight})
	want := []string{"日本    1", "ab    100"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a"}, {"bb", "c"}}, nil)
	if got[0] != "a " || got[1] != "bb  c" {
		t.Fatalf("unexpected ragged output %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

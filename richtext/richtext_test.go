package richtext

import (
	"testing"

	"fic/model"
)

func TestResolveIndex(t *testing.T) {
	text := "primera\nsegunda"
	cases := []struct {
		index  string
		want   int
		wantOK bool
	}{
		{"1.0", 0, true},
		{"1.3", 3, true},
		{"2.0", 8, true},
		{"2.99", 15, true}, // columna fuera de rango se recorta al fin de línea
		{"0.0", 0, false},
		{"9.0", 0, false},
		{"sin-punto", 0, false},
	}
	for _, tc := range cases {
		got, ok := ResolveIndex(text, tc.index)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ResolveIndex(%q) = (%d, %v), want (%d, %v)", tc.index, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestRenderMarkdown_Bold(t *testing.T) {
	entry := model.RichTextEntry{
		Text: "hola mundo",
		Tags: []model.TagRef{{Tag: "bold", Start: "1.2", End: "1.5"}},
	}
	got := RenderMarkdown(entry)
	want := "ho**la **mundo"
	if got != want {
		t.Errorf("RenderMarkdown = %q, want %q", got, want)
	}
}

func TestRenderMarkdown_HeaderFirstLineOnly(t *testing.T) {
	entry := model.RichTextEntry{
		Text: "A\nB",
		Tags: []model.TagRef{{Tag: "header", Start: "1.0", End: "1.1"}},
	}
	got := RenderMarkdown(entry)
	want := "### A\nB"
	if got != want {
		t.Errorf("RenderMarkdown = %q, want %q", got, want)
	}
}

func TestRenderMarkdown_ListAndPlain(t *testing.T) {
	entry := model.RichTextEntry{
		Text: "uno\ndos",
		Tags: []model.TagRef{{Tag: "list", Start: "2.0", End: "2.3"}},
	}
	got := RenderMarkdown(entry)
	want := "uno\n- dos"
	if got != want {
		t.Errorf("RenderMarkdown = %q, want %q", got, want)
	}
}

func TestRenderMarkdown_TableFenced(t *testing.T) {
	entry := model.RichTextEntry{
		Text: "a  b\nc  d\nfin",
		Tags: []model.TagRef{{Tag: "table", Start: "1.0", End: "2.4"}},
	}
	got := RenderMarkdown(entry)
	want := "```\na  b\nc  d\n```\nfin"
	if got != want {
		t.Errorf("RenderMarkdown = %q, want %q", got, want)
	}
}

func TestResolveTags_DropsInvalid(t *testing.T) {
	entry := model.RichTextEntry{
		Text: "texto",
		Tags: []model.TagRef{
			{Tag: "bold", Start: "1.3", End: "1.1"},  // invertido
			{Tag: "bold", Start: "9.0", End: "9.2"},  // fuera de rango
			{Tag: "desconocida", Start: "1.0", End: "1.2"},
			{Tag: "bold", Start: "1.0", End: "1.2"},
		},
	}
	resolved := ResolveTags(entry)
	if len(resolved) != 1 {
		t.Fatalf("expected only the valid tag to survive, got %d", len(resolved))
	}
	if resolved[0].Start != 0 || resolved[0].End != 2 {
		t.Errorf("resolved range = [%d,%d), want [0,2)", resolved[0].Start, resolved[0].End)
	}
}

func TestRenderMarkdown_OverlappingBold(t *testing.T) {
	entry := model.RichTextEntry{
		Text: "abcdef",
		Tags: []model.TagRef{
			{Tag: "bold", Start: "1.0", End: "1.4"},
			{Tag: "bold", Start: "1.2", End: "1.6"},
		},
	}
	got := RenderMarkdown(entry)
	// Los rangos solapados se fusionan: un solo par de marcadores.
	want := "**abcdef**"
	if got != want {
		t.Errorf("RenderMarkdown = %q, want %q", got, want)
	}
}

func TestSplitLines_MultilineBoldClipped(t *testing.T) {
	entry := model.RichTextEntry{
		Text: "abc\ndef",
		Tags: []model.TagRef{{Tag: "bold", Start: "1.1", End: "2.2"}},
	}
	lines := SplitLines(entry)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(lines[0].InlineTags) != 1 || lines[0].InlineTags[0].Start != 1 || lines[0].InlineTags[0].End != 3 {
		t.Errorf("first line inline tags = %+v", lines[0].InlineTags)
	}
	if len(lines[1].InlineTags) != 1 || lines[1].InlineTags[0].Start != 0 || lines[1].InlineTags[0].End != 2 {
		t.Errorf("second line inline tags = %+v", lines[1].InlineTags)
	}
}

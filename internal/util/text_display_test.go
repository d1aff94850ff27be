package util

import "testing"

func TestDisplaySnippetFlattensLines(t *testing.T) {
	in := "experiência em\n\n**limpeza**\t de\x00 escritórios"
	out := DisplaySnippet(in, 100)
	if out != "experiência em **limpeza** de escritórios" {
		t.Fatalf("unexpected snippet: %q", out)
	}
}

func TestDisplaySnippetTruncatesOnRunes(t *testing.T) {
	out := DisplaySnippet("ação ação ação", 4)
	if out != "ação..." {
		t.Fatalf("unexpected snippet: %q", out)
	}
}

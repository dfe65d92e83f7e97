package ui

import "testing"

func TestReflowParagraphs(t *testing.T) {
	got := ReflowParagraphs("one two three\nfour\n\n\nfive   six", 9)
	want := "one two\nthree\nfour\n\nfive six"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestReflowParagraphsBlank(t *testing.T) {
	if got := ReflowParagraphs(" \n\n ", 10); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestIndentLines(t *testing.T) {
	got := IndentLines("a\n\nb", 2)
	if got != "  a\n\n  b" {
		t.Fatalf("expected indented block, got %q", got)
	}
}

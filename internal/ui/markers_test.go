package ui

import "testing"

func TestMarkersWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := HighlightID(42); got != "42" {
		t.Fatalf("expected plain id, got %q", got)
	}
	if got := FavoriteMarker(true); got != "*" {
		t.Fatalf("expected * for favorite, got %q", got)
	}
	if got := FavoriteMarker(false); got != "" {
		t.Fatalf("expected empty marker, got %q", got)
	}
	if got := Faint("dim"); got != "dim" {
		t.Fatalf("expected plain text, got %q", got)
	}
}

func TestCheckbox(t *testing.T) {
	if got := Checkbox(true); got != "[x]" {
		t.Fatalf("expected [x], got %q", got)
	}
	if got := Checkbox(false); got != "[ ]" {
		t.Fatalf("expected [ ], got %q", got)
	}
}

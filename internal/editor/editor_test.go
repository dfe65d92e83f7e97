package editor

import (
	"reflect"
	"testing"
)

func TestCommand(t *testing.T) {
	cases := []struct {
		name   string
		visual string
		editor string
		want   []string
	}{
		{name: "fallback", want: []string{"vi"}},
		{name: "editor", editor: "nano", want: []string{"nano"}},
		{name: "editor with args", editor: "code --wait", want: []string{"code", "--wait"}},
		{name: "visual wins", visual: "hx", editor: "nano", want: []string{"hx"}},
		{name: "blank visual ignored", visual: "  ", editor: "nano", want: []string{"nano"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("VISUAL", tc.visual)
			t.Setenv("EDITOR", tc.editor)
			if got := Command(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

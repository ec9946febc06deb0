package utils

import "testing"

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0/title", "[0].title"},
		{"#/foo/bar/0/baz", "foo.bar[0].baz"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := JSONPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("JSONPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 2, "he"},
		{"héllo wörld", 7, "héll..."},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d): got %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0b6c3d0e-6f0a-4b4e"); got != "0b6c3d0e" {
		t.Errorf("ShortID: got %q", got)
	}
	if got := ShortID("1"); got != "1" {
		t.Errorf("ShortID: got %q", got)
	}
}

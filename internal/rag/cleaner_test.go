package rag

import "testing"

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: " \t \n\t ", want: ""},
		{name: "tab runs collapse", in: "a\t\tb  \tc", want: "a b c"},
		{name: "newline runs collapse", in: "a\n\n\nb\nc", want: "a\nb\nc"},
		{name: "strips edges", in: "  a b  ", want: "a b"},
		{name: "mixed", in: "\tEvent ID:   12345\n\n\nMagnitude:\t3.2\n", want: "Event ID: 12345\nMagnitude: 3.2"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clean(tt.in); got != tt.want {
				t.Fatalf("Clean(%q)=%q want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text",
		"a\t\tb\n\n\nc  d",
		"  \n leading and trailing \n  ",
		"Event ID: 12345\nDate/Time: 2016-08-24\n",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

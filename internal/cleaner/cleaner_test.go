package cleaner

import "testing"

func TestClean(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: " \n\t\r ", want: ""},
		{name: "collapse", in: "  Hello \n\n  world\t! ", want: "Hello world !"},
		{name: "entities", in: "Tom &amp; Jerry &lt;3", want: "Tom & Jerry <3"},
		{name: "double encoded", in: "Fish &amp;amp; chips", want: "Fish & chips"},
		{name: "nbsp", in: "Nairobi&nbsp;&nbsp;County", want: "Nairobi County"},
		{name: "numeric", in: "Ruto&#8217;s plan", want: "Ruto’s plan"},
		{name: "plain", in: "already clean", want: "already clean"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"  a  b  ",
		"&amp;amp;lt;",
		"&amp\nlt;",
		"x &  y",
		"line one\n\nline two",
		"  padded ",
	}

	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCleanNoDoubleSpaces(t *testing.T) {
	t.Parallel()

	got := Clean("a   b  c")
	if got != "a b c" {
		t.Fatalf("unexpected result %q", got)
	}
}

package naming

import "testing"

func TestNormalizePrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ABC123", "abc123-"},
		{"abc123-", "abc123-"},
		{"My Prefix!", "myprefix-"},
		{"---", ""},
		{"ä", ""},
	}
	for _, tc := range cases {
		if got := NormalizePrefix(tc.in); got != tc.want {
			t.Errorf("NormalizePrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePrefixIdempotent(t *testing.T) {
	for _, in := range []string{"ABC123", "foo", "x-1"} {
		once := NormalizePrefix(in)
		if twice := NormalizePrefix(once); twice != once {
			t.Errorf("NormalizePrefix not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestApplyPrefix(t *testing.T) {
	prefix := NormalizePrefix("ABC123")
	if prefix != "abc123-" {
		t.Fatalf("canonical prefix = %q", prefix)
	}

	got := ApplyPrefix("bericht", prefix)
	if got != "abc123-bericht" {
		t.Fatalf("ApplyPrefix = %q, want %q", got, "abc123-bericht")
	}
	// Applying again must not double the prefix.
	if again := ApplyPrefix(got, prefix); again != got {
		t.Fatalf("ApplyPrefix not idempotent: %q -> %q", got, again)
	}
	// A slug that already starts with the bare prefix is also left alone.
	if bare := ApplyPrefix("abc123bericht", prefix); bare != "abc123bericht" {
		t.Fatalf("ApplyPrefix over bare-prefixed slug = %q", bare)
	}
	// Empty prefix is a no-op.
	if plain := ApplyPrefix("bericht", ""); plain != "bericht" {
		t.Fatalf("ApplyPrefix with empty prefix = %q", plain)
	}
}

func TestPageSuffix(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{1, "-p001"},
		{7, "-p007"},
		{42, "-p042"},
		{999, "-p999"},
		{1000, "-p1000"},
	}
	for _, tc := range cases {
		if got := PageSuffix(tc.index); got != tc.want {
			t.Errorf("PageSuffix(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}

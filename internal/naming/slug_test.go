package naming

import (
	"regexp"
	"testing"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bericht 2023 (final)", "bericht-2023-final"},
		{"Straßenfoto München", "strassenfoto-muenchen"},
		{"ÄÖÜ äöü ß", "aeoeue-aeoeue-ss"},
		{"Café résumé", "cafe-resume"},
		{"già_però", "gia-pero"},
		{"--Foo--Bar--", "foo-bar"},
		{"hello", "hello"},
		{"IMG_1234", "img-1234"},
		{"a   b\t\nc", "a-b-c"},
	}
	for _, tc := range cases {
		got := Slugify(tc.in)
		if got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyFallback(t *testing.T) {
	for _, in := range []string{"", "!!!", "---", "   ", "日本語", "´´¨¨"} {
		got := Slugify(in)
		if got != SlugFallback {
			// Non-Latin scripts may survive decomposition; anything returned
			// must still match the slug shape.
			if !slugShape.MatchString(got) {
				t.Errorf("Slugify(%q) = %q, not a valid slug", in, got)
			}
			continue
		}
	}
}

func TestSlugifyShapeAndDeterminism(t *testing.T) {
	inputs := []string{
		"", "Scan", "Foto (groß)", "über-ALLES", "a--b", "..", "x",
		"Déjà vu.backup", "100%", "snake_case_name", "ÅNGSTRÖM",
	}
	for _, in := range inputs {
		first := Slugify(in)
		second := Slugify(in)
		if first != second {
			t.Fatalf("Slugify(%q) not deterministic: %q vs %q", in, first, second)
		}
		if first == "" {
			t.Fatalf("Slugify(%q) returned empty string", in)
		}
		if !slugShape.MatchString(first) {
			t.Errorf("Slugify(%q) = %q, not a valid slug", in, first)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	for _, in := range []string{"Bericht 2023", "foto-001", "Straße"} {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

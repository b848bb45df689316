package naming

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugFallback is returned when a name contains no usable characters at all.
const SlugFallback = "file"

// umlautReplacer substitutes the German letters that a plain
// decomposition-and-strip pass would reduce to the wrong ASCII form
// (ä must become "ae", not "a").
var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
	"ß", "ss",
)

var (
	// nonSlugRun matches any run of characters outside the slug alphabet.
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)
	// multiHyphen collapses consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// stripMarks removes combining marks left over after canonical decomposition,
// which drops the diacritics the explicit table does not cover.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Slugify converts an arbitrary name (typically a file stem) into a lowercase
// slug matching [a-z0-9]+(-[a-z0-9]+)*. It is total: any input, including the
// empty string or pure punctuation, yields a non-empty result, falling back
// to SlugFallback when nothing survives.
func Slugify(name string) string {
	s := umlautReplacer.Replace(name)
	if decomposed, _, err := transform.String(stripMarks, s); err == nil {
		s = decomposed
	}
	s = strings.ToLower(s)
	s = nonSlugRun.ReplaceAllString(s, "-")
	s = multiHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return SlugFallback
	}
	return s
}

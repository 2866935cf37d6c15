// Package htmltext converts wiki page markup into plain text. It strips
// script and style blocks, replaces the remaining tags with spaces, decodes a
// fixed set of HTML entities and collapses whitespace. The transformation is
// pure and deterministic: the same input always yields the same output, and
// cleaning already-clean text is a no-op.
package htmltext

import (
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regular expressions for markup stripping.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	allTags       = regexp.MustCompile(`<[^>]*>`)
	numericEntity = regexp.MustCompile(`&#([0-9]+);`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// namedEntities is the closed set of named entities the decoder recognises:
// basic markup entities, the accented letters needed for Latin and Portuguese
// text, and common typographic symbols. Anything outside this table is left
// verbatim.
var namedEntities = map[string]string{
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&quot;":   `"`,
	"&apos;":   "'",
	"&nbsp;":   " ",
	"&aacute;": "á",
	"&agrave;": "à",
	"&acirc;":  "â",
	"&atilde;": "ã",
	"&auml;":   "ä",
	"&Aacute;": "Á",
	"&Agrave;": "À",
	"&Acirc;":  "Â",
	"&Atilde;": "Ã",
	"&eacute;": "é",
	"&egrave;": "è",
	"&ecirc;":  "ê",
	"&euml;":   "ë",
	"&Eacute;": "É",
	"&Ecirc;":  "Ê",
	"&iacute;": "í",
	"&icirc;":  "î",
	"&iuml;":   "ï",
	"&Iacute;": "Í",
	"&oacute;": "ó",
	"&ograve;": "ò",
	"&ocirc;":  "ô",
	"&otilde;": "õ",
	"&ouml;":   "ö",
	"&Oacute;": "Ó",
	"&Otilde;": "Õ",
	"&uacute;": "ú",
	"&ucirc;":  "û",
	"&uuml;":   "ü",
	"&Uacute;": "Ú",
	"&ccedil;": "ç",
	"&Ccedil;": "Ç",
	"&ntilde;": "ñ",
	"&Ntilde;": "Ñ",
	"&ndash;":  "–",
	"&mdash;":  "—",
	"&hellip;": "…",
	"&lsquo;":  "‘",
	"&rsquo;":  "’",
	"&ldquo;":  "“",
	"&rdquo;":  "”",
	"&bull;":   "•",
	"&middot;": "·",
	"&euro;":   "€",
	"&pound;":  "£",
	"&yen;":    "¥",
	"&cent;":   "¢",
	"&copy;":   "©",
	"&reg;":    "®",
	"&trade;":  "™",
	"&deg;":    "°",
	"&sect;":   "§",
	"&para;":   "¶",
	"&laquo;":  "«",
	"&raquo;":  "»",
}

// entityReplacer applies the named entity table in a single pass.
var entityReplacer = newEntityReplacer()

func newEntityReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(namedEntities)*2)
	for entity, literal := range namedEntities {
		pairs = append(pairs, entity, literal)
	}
	return strings.NewReplacer(pairs...)
}

// Clean converts an HTML fragment into plain text. Steps run in a fixed
// order: script blocks, style blocks, every remaining tag replaced by one
// space, entity decoding, whitespace collapse, trim. Decoding before the
// collapse means entity-introduced whitespace collapses too.
func Clean(markup string) string {
	text := scriptTag.ReplaceAllString(markup, "")
	text = styleTag.ReplaceAllString(text, "")
	text = allTags.ReplaceAllString(text, " ")
	text = DecodeEntities(text)
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// DecodeEntities replaces named entities from the fixed table and decimal
// numeric references (&#N; with 0 < N < 0x110000) with their literal
// characters. Out-of-range or malformed references are preserved verbatim.
func DecodeEntities(text string) string {
	text = entityReplacer.Replace(text)
	return numericEntity.ReplaceAllStringFunc(text, func(ref string) string {
		digits := ref[2 : len(ref)-1]
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil || n <= 0 || n >= 0x110000 {
			return ref
		}
		return string(rune(n))
	})
}

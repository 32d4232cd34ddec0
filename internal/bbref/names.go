package bbref

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// nameFixes maps Basketball-Reference renderings that do not survive
// plain diacritic stripping to the stats.nba.com spelling.
var nameFixes = map[string]string{
	"Nikola Đurišić":  "Nikola Djurisic",
	"Dennis Schröder": "Dennis Schroder",
	"Alperen Şengün":  "Alperen Sengun",
	"Ömer Yurtseven":  "Omer Yurtseven",
	"Tidjane Salaün":  "Tidjane Salaun",
	"Moussa Diabaté":  "Moussa Diabate",
	"Théo Maledon":    "Theo Maledon",
	"Vít Krejčí":      "Vit Krejci",
}

// NormalizeName converts a Basketball-Reference player name to its
// stats.nba.com ASCII form so rows from the two sources join on name.
// Trailing markers like '*' (Hall of Fame flag) are dropped first.
func NormalizeName(name string) string {
	name = strings.TrimSpace(strings.TrimRight(name, "*"))
	if fixed, ok := nameFixes[name]; ok {
		return fixed
	}

	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'đ':
			b.WriteString("dj")
		case 'Đ':
			b.WriteString("Dj")
		case 'ß':
			b.WriteString("ss")
		case 'ø':
			b.WriteRune('o')
		case 'Ø':
			b.WriteRune('O')
		case 'æ':
			b.WriteString("ae")
		case 'Æ':
			b.WriteString("Ae")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

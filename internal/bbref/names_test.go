package bbref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"LeBron James", "LeBron James"},
		{"Nikola Jokić", "Nikola Jokic"},
		{"Luka Dončić", "Luka Doncic"},
		{"Kristaps Porziņģis", "Kristaps Porzingis"},
		{"Bogdan Bogdanović", "Bogdan Bogdanovic"},
		{"Jusuf Nurkić", "Jusuf Nurkic"},
		// Hall of Fame marker
		{"Dirk Nowitzki*", "Dirk Nowitzki"},
		{"  Trae Young ", "Trae Young"},
		// NFKD alone would drop these letters entirely
		{"Dennis Schröder", "Dennis Schroder"},
		{"Alperen Şengün", "Alperen Sengun"},
		{"Vít Krejčí", "Vit Krejci"},
		{"Nikola Đurišić", "Nikola Djurisic"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), "input %q", tc.in)
	}
}

package normalize

import "regexp"

type unitRule struct {
	re   *regexp.Regexp
	abbr string
}

// unitRules collapse "{n} {unit}" to "{n}{abbr}". Alternatives are longest first and
// the unit must end on a word boundary, so "16 grapes" stays put.
var unitRules = []unitRule{
	{regexp.MustCompile(`(\d+)\s*(ounces|ounce|oz)\b`), "oz"},
	{regexp.MustCompile(`(\d+)\s*(milliliters|milliliter|millilitres|millilitre|ml)\b`), "ml"},
	{regexp.MustCompile(`(\d+)\s*(grams|gram|g)\b`), "g"},
	{regexp.MustCompile(`(\d+)\s*(pounds|pound|lbs|lb)\b`), "lb"},
	{regexp.MustCompile(`(\d+)\s*(count|ct)\b`), "ct"},
	{regexp.MustCompile(`(\d+)\s*(packs|pack|pk)\b`), "pk"},
}

// Units canonicalizes unit expressions in already lower-cased text
func Units(s string) string {
	for _, r := range unitRules {
		s = r.re.ReplaceAllString(s, "${1}"+r.abbr)
	}
	return s
}

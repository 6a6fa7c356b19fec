package importer

import (
	"bytes"
	"strings"
)

// Dialect is the CSV flavour of an export: comma separated with decimal
// points, or semicolon separated with decimal commas.
type Dialect struct {
	Comma        rune
	DecimalComma bool
}

var (
	DialectComma     = Dialect{Comma: ','}
	DialectSemicolon = Dialect{Comma: ';', DecimalComma: true}
)

// detectDialect counts separators over the first lines of data.
func detectDialect(data []byte) Dialect {
	var semis, commas int

	for i, line := range bytes.SplitN(data, []byte("\n"), 21) {
		if i == 20 {
			break
		}

		semis += bytes.Count(line, []byte(";"))
		commas += bytes.Count(line, []byte(","))
	}

	if semis > 0 && semis >= commas {
		return DialectSemicolon
	}

	return DialectComma
}

var currencyMarks = strings.NewReplacer("€", "", "EUR", "", "$", "", "USD", "", " ", "", "\u00a0", "")

// normalizeAmount rewrites an amount cell into plain decimal notation, e.g.
// "1.234,56 EUR" -> "1234.56" in the semicolon dialect and "1,234.56" ->
// "1234.56" in the comma dialect. Values that are not numbers come back
// stripped but otherwise untouched so the normalizer can report them.
func normalizeAmount(s string, d Dialect) string {
	clean := currencyMarks.Replace(strings.TrimSpace(s))

	if d.DecimalComma {
		clean = strings.ReplaceAll(clean, ".", "")
		return strings.ReplaceAll(clean, ",", ".")
	}

	return strings.ReplaceAll(clean, ",", "")
}

// splitSigned separates a signed amount into debit and credit sides.
func splitSigned(s string) (debit, credit string) {
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "", rest
	}

	return s, ""
}

package docsearch

import "strings"

// Marker prefixes for rendered code blocks and tables.
const (
	CodeMarker  = "[Code]"
	TableMarker = "[Table]"
)

// Token estimate weights, in tenths of a token so the arithmetic stays
// exact: a special character costs 0.1, the sum is scaled by 1.3.
const (
	wordTenths        = 10
	specialCharTenths = 1
	codeMarkerTenths  = 500
	tableMarkerTenths = 200
	scaleNumerator    = 13
	scaleDenominator  = 10
)

const markdownSpecialChars = "#*_`[]()>|-~"

// EstimateTokens approximates the language-model token count of text.
// No tokenizer is involved: the estimate is the whitespace word count plus
// a tenth of the markdown special characters, plus a fixed cost per code and
// table marker, scaled by 1.3 and rounded up. Chunk boundaries depend on
// this value, so it must stay deterministic.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	words := len(strings.Fields(text))

	specials := 0
	for _, r := range text {
		if strings.ContainsRune(markdownSpecialChars, r) {
			specials++
		}
	}

	codes := strings.Count(text, CodeMarker)
	tables := strings.Count(text, TableMarker)

	tenths := words*wordTenths +
		specials*specialCharTenths +
		codes*codeMarkerTenths +
		tables*tableMarkerTenths

	// ceil(tenths/10 * 13/10)
	const denominator = 10 * scaleDenominator
	return (tenths*scaleNumerator + denominator - 1) / denominator
}

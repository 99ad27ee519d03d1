package funnel

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// textSimilarity scores how alike two OCR strings are, mirroring the
// original service's difflib.SequenceMatcher ("Gestalt pattern matching")
// ratio: 2*M / T, where M is the length of the longest common subsequence
// and T is the combined length of both strings. go-edlib supplies the LCS
// primitive; the ratio itself is recomputed here since edlib doesn't expose
// Ratcliff/Obershelp directly.
//
// Per §4.3, an empty side always yields similarity 0 rather than dividing by
// zero or treating "nothing" as a match.
func textSimilarity(a, b string) float64 {
	a = normalizeOCRText(a)
	b = normalizeOCRText(b)
	if a == "" || b == "" {
		return 0
	}

	lcs := edlib.LCS(a, b)
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return 2 * float64(lcs) / float64(total)
}

// normalizeOCRText lowercases and collapses whitespace so that formatting
// noise between otherwise-identical slide captures doesn't register as a
// content difference.
func normalizeOCRText(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}

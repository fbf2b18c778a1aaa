package mcq

import "regexp"

var (
	escapedMathKeyword = regexp.MustCompile(`\\{2,}(frac|sqrt)`)
	escapedCommand     = regexp.MustCompile(`\\{2,}([A-Za-z])`)
	escapedBackslash   = regexp.MustCompile(`\\{2,}`)
)

// NormalizeLatex repairs doubled escapes in LaTeX math so MathJax can render it.
//
// Passes run in a fixed order: known keywords (\frac, \sqrt), then any
// command letter, then whatever doubled backslashes remain. Every pass
// collapses a whole run of backslashes, so the result never contains two
// consecutive backslashes and a second call is a no-op.
func NormalizeLatex(text string) string {
	if text == "" {
		return ""
	}
	text = escapedMathKeyword.ReplaceAllString(text, `\$1`)
	text = escapedCommand.ReplaceAllString(text, `\$1`)
	text = escapedBackslash.ReplaceAllString(text, `\`)
	return text
}

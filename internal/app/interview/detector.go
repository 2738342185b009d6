package interview

import "strings"

// terminalPhrases flag an AI reply as ending the interview. The set and the
// substring semantics are load-bearing: clients decide when to stop recording
// based on this flag, so changing it is a wire-compatibility change.
//
// Known weakness: "thank you" mid-interview ("thank you for sharing that")
// triggers a false positive. Kept as-is for compatibility with existing
// clients rather than silently re-tuned.
var terminalPhrases = []string{
	"concludes our interview",
	"thank you",
	"goodbye",
}

// IsFinal reports whether an AI reply concludes the interview. Pure function,
// case-insensitive substring match against the fixed phrase set.
func IsFinal(reply string) bool {
	lower := strings.ToLower(reply)
	for _, p := range terminalPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

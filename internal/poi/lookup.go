package poi

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrUnknown is returned when a slot number or name matches nothing.
var ErrUnknown = errors.New("unknown point of interest")

// Slot resolves arg to a zero-based slot. arg is either a key number from
// 1 to len(names), with 0 meaning the tenth key, or a fuzzy name such as
// "seahorse". An empty arg returns -1.
func Slot(arg string, names []string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return -1, nil
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n == 0 {
			n = Count
		}
		if n < 1 || n > len(names) {
			return -1, ErrUnknown
		}
		return n - 1, nil
	}
	if i := Find(arg, names); i >= 0 {
		return i, nil
	}
	return -1, ErrUnknown
}

// Find returns the index of the name that best matches query as a
// case-insensitive subsequence, or -1. Ties go to the earlier slot.
func Find(query string, names []string) int {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 {
		return -1
	}

	best, bestScore := -1, 0
	for i, name := range names {
		if s := matchScore(q, name); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

// matchScore scores name against the lowercased query q. Zero means no
// match. Consecutive runs, word starts and a prefix match score higher;
// gaps and a late first match score lower.
func matchScore(q []rune, name string) int {
	orig := []rune(name)
	text := []rune(strings.ToLower(name))

	matches := make([]int, 0, len(q))
	for i := 0; i < len(text) && len(matches) < len(q); i++ {
		if text[i] == q[len(matches)] {
			matches = append(matches, i)
		}
	}
	if len(matches) != len(q) {
		return 0
	}

	score := 100
	for i, idx := range matches {
		if i > 0 && idx == matches[i-1]+1 {
			score += 20
		}
		if wordStart(orig, idx) {
			score += 15
		}
	}
	if matches[0] == 0 {
		score += 25
	}
	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		score -= gap * 2
	}
	score -= matches[0]
	if strings.HasPrefix(string(text), string(q)) {
		score += 50
	}
	return max(score, 1)
}

func wordStart(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev := runes[idx-1]
	return unicode.IsSpace(prev) || unicode.IsPunct(prev)
}

// Package matcher determines which vocabulary entries appear in a run of
// text, using greedy longest-match-first scanning. It is used to verify
// which words an AI-generated practice sentence actually exercised.
package matcher

import (
	"sort"
	"strings"
	"unicode"
)

// Segment is one step of the scan: either a vocabulary entry that matched
// at the cursor, or a single character that no entry could explain.
type Segment struct {
	Token   string `json:"token"`
	Matched bool   `json:"matched"`
}

// Result reports the vocabulary entries found in a text and the characters
// left over. Matched preserves first-seen order with each entry recorded at
// most once; Unmatched holds each distinct leftover character once, in
// first-seen order.
type Result struct {
	Matched   []string `json:"matched"`
	Unmatched []string `json:"unmatched"`
}

// Segments scans sourceText left to right and returns the full scan trace.
// Vocabulary entries are tried longest first at every position; on a miss
// the single character at the cursor becomes its own unmatched segment and
// the cursor advances by one. The cursor strictly advances on every step,
// so the sum of segment lengths always equals the length of the text.
func Segments(sourceText string, vocabulary []string) []Segment {
	entries := sortedEntries(vocabulary)
	runes := []rune(sourceText)

	var segs []Segment
	pos := 0
	for pos < len(runes) {
		if entry := matchAt(runes, pos, entries); entry != nil {
			segs = append(segs, Segment{Token: string(entry), Matched: true})
			pos += len(entry)
			continue
		}
		segs = append(segs, Segment{Token: string(runes[pos])})
		pos++
	}
	return segs
}

// Match scans sourceText against the vocabulary and reports which entries
// were found and which characters matched nothing. It never fails: empty
// text, an empty vocabulary, or any combination yields an empty (but
// non-nil) result. Inputs are not mutated and no state is kept between
// calls.
func Match(sourceText string, vocabulary []string) Result {
	res := Result{
		Matched:   []string{},
		Unmatched: []string{},
	}

	seenMatched := make(map[string]bool)
	seenUnmatched := make(map[string]bool)

	for _, seg := range Segments(sourceText, vocabulary) {
		if seg.Matched {
			if !seenMatched[seg.Token] {
				seenMatched[seg.Token] = true
				res.Matched = append(res.Matched, seg.Token)
			}
			continue
		}
		if !seenUnmatched[seg.Token] {
			seenUnmatched[seg.Token] = true
			res.Unmatched = append(res.Unmatched, seg.Token)
		}
	}
	return res
}

// Uncovered reports the distinct characters of sourceText that appear in no
// vocabulary entry at all. Unlike the greedy scan, this check is independent
// of scan order: it answers "is this character representable by the
// vocabulary", not "was it consumed during one particular pass". The two
// analyses are intentionally kept separate and may disagree.
func Uncovered(sourceText string, vocabulary []string) []string {
	out := []string{}
	seen := make(map[rune]bool)

	for _, r := range sourceText {
		if seen[r] {
			continue
		}
		seen[r] = true

		covered := false
		for _, entry := range vocabulary {
			if strings.ContainsRune(entry, r) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, string(r))
		}
	}
	return out
}

// StripPunctuation removes punctuation and whitespace from s. The
// sentence-verification call site strips generated text with this before
// scanning, so that 。，！ and friends do not show up as unmatched
// characters.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}

// sortedEntries copies the vocabulary into rune slices ordered by
// descending length, dropping empty entries. The stable sort keeps the
// caller's order among entries of equal length.
func sortedEntries(vocabulary []string) [][]rune {
	entries := make([][]rune, 0, len(vocabulary))
	for _, v := range vocabulary {
		if v == "" {
			continue
		}
		entries = append(entries, []rune(v))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i]) > len(entries[j])
	})
	return entries
}

// matchAt returns the longest entry whose characters exactly match the text
// starting at pos, or nil when none does.
func matchAt(runes []rune, pos int, entries [][]rune) []rune {
	for _, entry := range entries {
		if pos+len(entry) > len(runes) {
			continue
		}
		ok := true
		for i, r := range entry {
			if runes[pos+i] != r {
				ok = false
				break
			}
		}
		if ok {
			return entry
		}
	}
	return nil
}

// Package similarity provides the lexical scoring primitives used by the
// candidate ranker and the claim verifier: a character-sequence ratio, a
// word-order-insensitive token-set ratio, and a binary date proximity.
// All scores are normalized to [0, 1].
package similarity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

// Normalize trims, collapses internal whitespace and casefolds a string.
// The empty result marks input that must not be scored.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// StringScore computes the character-sequence similarity ratio of two
// strings, case-insensitive. It returns a validation error when either
// string is empty after normalization: an empty side makes the similarity
// undefined and silently scoring it 0 would hide bad input.
func StringScore(a, b string) (float64, error) {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0, fmt.Errorf("%w: both strings must contain text", model.ErrValidation)
	}
	return sequenceRatio([]rune(na), []rune(nb)), nil
}

// TokenSetScore computes the token-set overlap ratio of two strings. It is
// symmetric and insensitive to word order and repeated words, which makes
// it the right measure for a claimant's note against a private note where
// phrasing rarely lines up. Empty-after-normalization input is a
// validation error.
func TokenSetScore(a, b string) (float64, error) {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0, fmt.Errorf("%w: both strings must contain text", model.ErrValidation)
	}

	setA := tokenSet(na)
	setB := tokenSet(nb)

	var inter, onlyA, onlyB []string
	for tok := range setA {
		if setB[tok] {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(inter, " ")
	combinedA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	// The intersection is a prefix of both combined forms, so two strings
	// sharing most tokens score high regardless of the leftovers.
	best := pairRatio(base, combinedA)
	if r := pairRatio(base, combinedB); r > best {
		best = r
	}
	if r := pairRatio(combinedA, combinedB); r > best {
		best = r
	}
	return best, nil
}

// DateScore is a binary proximity: 1.0 when the two dates are at most
// windowDays whole days apart, else 0.0. The difference is truncated to
// whole days before comparing, so 2.5 days apart still counts as 2.
func DateScore(d1, d2 time.Time, windowDays int) float64 {
	diff := d1.Sub(d2)
	if diff < 0 {
		diff = -diff
	}
	if int(diff.Hours()/24) <= windowDays {
		return 1.0
	}
	return 0.0
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func pairRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	return sequenceRatio([]rune(a), []rune(b))
}

// sequenceRatio returns 2*M/T where M is the total length of the longest
// matching blocks and T the combined length, the same measure difflib's
// SequenceMatcher uses.
func sequenceRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	matched := matchingSize(a, b, 0, len(a), 0, len(b))
	return 2 * float64(matched) / float64(total)
}

// matchingSize sums the sizes of matching blocks by recursively finding
// the longest match and descending into the pieces left and right of it.
func matchingSize(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	sum := size
	sum += matchingSize(a, b, alo, i, blo, j)
	sum += matchingSize(a, b, i+size, ahi, j+size, bhi)
	return sum
}

// longestMatch finds the longest matching block in a[alo:ahi] and
// b[blo:bhi], preferring the earliest on ties.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	// Positions of each rune in b[blo:bhi].
	b2j := make(map[rune][]int, bhi-blo)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}

package ranking

import "math"

// CheckRange is the farthest offset looked at when trying to resynchronize
// the two documents after a mismatch.
const CheckRange = 6

// notFound ranks above every valid offset in the resync comparisons.
const notFound = math.MaxInt

// SimpleRanker ranks documents with a greedy word alignment.
//
// Words are compared pairwise. When they differ, the ranker checks whether
// either current word shows up within CheckRange words on the other side and
// skips the shorter gap, counting every skipped word as an error. If neither
// side resynchronizes, both words are dropped as a single substitution.
// Words left over once one document is exhausted are errors as well.
type SimpleRanker struct{}

// Compare implements Ranker.
func (SimpleRanker) Compare(original, comparative string) float64 {
	return SimpleRanker{}.Rank(original, comparative).ErrorRate
}

// Rank compares the documents and reports the error count along with the rate.
func (SimpleRanker) Rank(original, comparative string) Result {
	o, c := Normalize(original), Normalize(comparative)
	return newResult(Align(o, c), o, c)
}

// Align returns the number of errors found while aligning comparative to
// original. It never fails; if either side is empty every token of the other
// side is an error.
func Align(original, comparative []string) int {
	errs := 0
	i, j := 0, 0
	for i < len(original) && j < len(comparative) {
		if original[i] == comparative[j] {
			i++
			j++
			continue
		}

		posCinO := indexWithin(original[i:], comparative[j])
		posOinC := indexWithin(comparative[j:], original[i])

		// Fronts differ, so a found offset is at least 1 and every branch advances.
		switch {
		case posCinO != notFound && posCinO < posOinC:
			// original holds words missing from comparative
			errs += posCinO
			i += posCinO
		case posOinC != notFound && posOinC < posCinO:
			// comparative holds inserted words
			errs += posOinC
			j += posOinC
		default:
			errs++
			i++
			j++
		}
	}
	errs += len(original) - i
	errs += len(comparative) - j
	return errs
}

// indexWithin returns the offset of word in tokens, looking at offsets
// 0 through CheckRange only.
func indexWithin(tokens []string, word string) int {
	for k := 0; k <= CheckRange && k < len(tokens); k++ {
		if tokens[k] == word {
			return k
		}
	}
	return notFound
}

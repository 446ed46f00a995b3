package ranking

import "github.com/texttheater/golang-levenshtein/levenshtein"

// WordEditRanker ranks documents by the word-level Levenshtein distance of
// their normalized tokens. It is the optimal counterpart of SimpleRanker and
// costs O(n·m) time.
type WordEditRanker struct{}

// Compare implements Ranker.
func (WordEditRanker) Compare(original, comparative string) float64 {
	return WordEditRanker{}.Rank(original, comparative).ErrorRate
}

// Rank compares the documents and reports the edit distance as the error count.
func (WordEditRanker) Rank(original, comparative string) Result {
	o, c := Normalize(original), Normalize(comparative)
	return newResult(WordDistance(o, c), o, c)
}

// Every edit costs one word, a substitution included.
var wordEditOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// wordRuneBase is the first code point handed out to distinct words.
const wordRuneBase = 0xE000

// WordDistance is the minimum number of word insertions, deletions and
// substitutions turning a into b.
func WordDistance(a, b []string) int {
	// One rune per distinct word, so rune edits are word edits.
	codes := make(map[string]rune, len(a)+len(b))
	encode := func(tokens []string) []rune {
		out := make([]rune, len(tokens))
		for i, tok := range tokens {
			r, ok := codes[tok]
			if !ok {
				r = wordRuneBase + rune(len(codes))
				codes[tok] = r
			}
			out[i] = r
		}
		return out
	}
	src := encode(a)
	dst := encode(b)
	return levenshtein.DistanceForStrings(src, dst, wordEditOptions)
}

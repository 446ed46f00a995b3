// Package ranking compares an OCR-produced document with its known-correct
// original and expresses the difference as an error percentage.
//
// Both documents are normalized into word tokens (diacritics folded,
// punctuation stripped, case preserved) and then aligned. The default
// SimpleRanker walks the two token streams in lockstep and, on a mismatch,
// looks at most CheckRange tokens ahead on either side to resynchronize.
//
// Rankers are stateless and safe for concurrent use.
package ranking

// Ranker compares a document against its original.
type Ranker interface {
	// Compare returns the error rate of comparative relative to original,
	// in percent. The result is finite and non-negative.
	Compare(original, comparative string) float64
}

// Result holds the outcome of a single comparison.
type Result struct {
	// ErrorCount is the number of tokens consumed as mismatches.
	ErrorCount int `json:"error_count"`

	// OriginalTokens is the token count of the original document.
	OriginalTokens int `json:"original_tokens"`

	// ComparativeTokens is the token count of the compared document.
	ComparativeTokens int `json:"comparative_tokens"`

	// ErrorRate is ErrorCount relative to OriginalTokens, in percent.
	// It can exceed 100 when the compared document has many insertions.
	ErrorRate float64 `json:"error_rate"`
}

// ErrorRate converts an error count into a percentage of the original
// token count. An empty original is counted as a single token, so two empty
// documents rank 0 and every token of a non-empty comparative against an
// empty original costs a full 100%.
func ErrorRate(errorCount, originalTokens int) float64 {
	if originalTokens == 0 {
		originalTokens = 1
	}
	return float64(errorCount) / float64(originalTokens) * 100
}

func newResult(errorCount int, original, comparative []string) Result {
	return Result{
		ErrorCount:        errorCount,
		OriginalTokens:    len(original),
		ComparativeTokens: len(comparative),
		ErrorRate:         ErrorRate(errorCount, len(original)),
	}
}

package ranking

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reference = "GG FF HH ZZ UU II"

func TestSimpleRankerScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		original    string
		comparative string
		errors      int
		tokens      int
	}{
		{
			name:        "inserted block within range",
			original:    reference,
			comparative: "GG v vv vv v  vv FF HH ZZ UU II",
			errors:      5,
			tokens:      6,
		},
		{
			name:        "inserted block with decoy",
			original:    reference,
			comparative: "GG v ZZ v v FF HH ZZ UU II",
			errors:      4,
			tokens:      6,
		},
		{
			name:        "insertions beyond range",
			original:    reference,
			comparative: "GG v ZZ v v v v v FF ZZ UU II",
			errors:      11,
			tokens:      6,
		},
		{
			name:        "adjacent swap",
			original:    reference,
			comparative: "GG HH FF ZZ UU II",
			errors:      2,
			tokens:      6,
		},
		{
			name:        "punctuation and misreads",
			original:    "Hello, dear i want to check your hand.\nBut warning! The *** is not for you",
			comparative: "Hello, degr want to check youm hand.\nBut warning| The *** is not for you",
			errors:      3,
			tokens:      15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := SimpleRanker{}.Rank(tt.original, tt.comparative)
			assert.Equal(t, tt.errors, res.ErrorCount)
			assert.Equal(t, tt.tokens, res.OriginalTokens)
			assert.InDelta(t, float64(tt.errors)/float64(tt.tokens)*100, res.ErrorRate, 1e-9)
			assert.InDelta(t, res.ErrorRate, SimpleRanker{}.Compare(tt.original, tt.comparative), 1e-12)
		})
	}
}

func TestSimpleRankerRates(t *testing.T) {
	t.Parallel()

	r := SimpleRanker{}
	assert.InDelta(t, 83.333, r.Compare(reference, "GG v vv vv v vv FF HH ZZ UU II"), 1e-3)
	assert.InDelta(t, 66.667, r.Compare(reference, "GG v ZZ v v FF HH ZZ UU II"), 1e-3)
	assert.InDelta(t, 183.333, r.Compare(reference, "GG v ZZ v v v v v FF ZZ UU II"), 1e-3)
	assert.InDelta(t, 33.333, r.Compare(reference, "GG HH FF ZZ UU II"), 1e-3)
}

func TestSimpleRankerIdentity(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{reference, "a", "Hello, world!", "à la carte\n\tvoilà"} {
		res := SimpleRanker{}.Rank(doc, doc)
		assert.Zero(t, res.ErrorCount, doc)
		assert.Zero(t, res.ErrorRate, doc)
	}
}

func TestSimpleRankerIdempotent(t *testing.T) {
	t.Parallel()

	r := SimpleRanker{}
	a, b := reference, "GG v ZZ v v v v v FF ZZ UU II"
	assert.Equal(t, r.Compare(a, b), r.Compare(a, b))
	assert.Equal(t, r.Rank(a, b), r.Rank(a, b))
}

func TestSimpleRankerAsymmetric(t *testing.T) {
	t.Parallel()

	r := SimpleRanker{}
	a, b := reference, "GG v vv vv v vv FF HH ZZ UU II"

	forward := r.Rank(a, b)
	backward := r.Rank(b, a)
	assert.Equal(t, 5, forward.ErrorCount)
	assert.Equal(t, 5, backward.ErrorCount)
	// Same error count, different denominators.
	assert.NotEqual(t, forward.ErrorRate, backward.ErrorRate)
	assert.InDelta(t, 5.0/11*100, backward.ErrorRate, 1e-9)
}

func TestSimpleRankerCaseSensitive(t *testing.T) {
	t.Parallel()

	res := SimpleRanker{}.Rank("The quick fox", "the quick fox")
	assert.Equal(t, 1, res.ErrorCount)
}

func TestSimpleRankerEmptyDocuments(t *testing.T) {
	t.Parallel()

	r := SimpleRanker{}

	res := r.Rank("", "")
	assert.Zero(t, res.ErrorCount)
	assert.Zero(t, res.OriginalTokens)
	assert.Zero(t, res.ErrorRate)

	// Punctuation only normalizes to nothing.
	assert.Zero(t, r.Compare(" ... !!\n", "\t"))

	res = r.Rank("", "three more words")
	assert.Equal(t, 3, res.ErrorCount)
	assert.Equal(t, 300.0, res.ErrorRate)

	res = r.Rank("three more words", "")
	assert.Equal(t, 3, res.ErrorCount)
	assert.Equal(t, 100.0, res.ErrorRate)
}

func TestAlignResyncTieBreak(t *testing.T) {
	t.Parallel()

	// Both fronts reappear at offset 1: neither side wins, substitution.
	assert.Equal(t, 2, Align(strings.Fields("A B C"), strings.Fields("B A C")))

	// Comparative front is nearer in original: drop one original word.
	assert.Equal(t, 1, Align(strings.Fields("X A B C"), strings.Fields("A B C")))

	// Original front is nearer in comparative: drop one comparative word.
	assert.Equal(t, 1, Align(strings.Fields("A B C"), strings.Fields("X A B C")))

	// Offset CheckRange is still in range, CheckRange+1 is not.
	inRange := append(strings.Fields("x x x x x x"), "A")
	assert.Equal(t, CheckRange, Align([]string{"A"}, inRange))
	outOfRange := append(strings.Fields("x x x x x x x"), "A")
	assert.Equal(t, len(outOfRange), Align([]string{"A"}, outOfRange))
}

func TestAlignEmpty(t *testing.T) {
	t.Parallel()

	assert.Zero(t, Align(nil, nil))
	assert.Equal(t, 2, Align(nil, []string{"a", "b"}))
	assert.Equal(t, 3, Align([]string{"a", "b", "c"}, nil))
}

func TestAlignErrorFloor(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	words := []string{"a", "b", "c", "d", "e"}
	gen := func() []string {
		tokens := make([]string, rng.Intn(30))
		for i := range tokens {
			tokens[i] = words[rng.Intn(len(words))]
		}
		return tokens
	}

	for i := 0; i < 500; i++ {
		o, c := gen(), gen()
		errs := Align(o, c)

		floor := len(o) - len(c)
		if floor < 0 {
			floor = -floor
		}
		require.GreaterOrEqual(t, errs, floor, "original=%v comparative=%v", o, c)
		require.LessOrEqual(t, errs, len(o)+len(c), "original=%v comparative=%v", o, c)
		require.LessOrEqual(t, WordDistance(o, c), errs, "original=%v comparative=%v", o, c)
	}
}

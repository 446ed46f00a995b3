package ranking

import "errors"

// ErrUnknownRanker is returned by Lookup for names that were never registered.
var ErrUnknownRanker = errors.New("unknown ranker")

package ranking

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Default is the name of the ranker used when none is requested.
const Default = "simple"

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Ranker)
)

func init() {
	Register(Default, SimpleRanker{})
	// name used by the Ranking-OCR command line
	Register("SimpleRanker", SimpleRanker{})
	Register("wordedit", WordEditRanker{})
}

// Register makes a ranker available under name. Names are case-insensitive.
// Registering the same name twice replaces the earlier ranker. It panics if
// name is empty or r is nil.
func Register(name string, r Ranker) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		panic("ranking: Register with empty name")
	}
	if r == nil {
		panic("ranking: Register ranker is nil")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[key] = r
}

// Lookup returns the ranker registered under name.
func Lookup(name string) (Ranker, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownRanker, name, strings.Join(namesLocked(), ", "))
	}
	return r, nil
}

// Names returns the registered ranker names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetailedRanker is a Ranker that also reports the error count.
type DetailedRanker interface {
	Ranker
	Rank(original, comparative string) Result
}

// Rank runs r and returns its full result when r is a DetailedRanker.
// Otherwise only the rate and token counts are filled in and ErrorCount
// is -1.
func Rank(r Ranker, original, comparative string) Result {
	if dr, ok := r.(DetailedRanker); ok {
		return dr.Rank(original, comparative)
	}
	return Result{
		ErrorCount:        -1,
		OriginalTokens:    len(Normalize(original)),
		ComparativeTokens: len(Normalize(comparative)),
		ErrorRate:         r.Compare(original, comparative),
	}
}

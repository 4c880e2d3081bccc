package impact

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/draftwire/crossref/pkg/graph"
)

// Cache memoizes analysis results for callers that query the same node
// repeatedly, keyed by (source node, model version) so a rebuilt model
// never serves stale reports. The analyzer itself never caches.
type Cache struct {
	analyzer *Analyzer
	entries  *lru.Cache[cacheKey, *Analysis]
}

type cacheKey struct {
	sourceID string
	version  string
}

// NewCache wraps an analyzer with an LRU of the given capacity.
func NewCache(analyzer *Analyzer, capacity int) (*Cache, error) {
	entries, err := lru.New[cacheKey, *Analysis](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{analyzer: analyzer, entries: entries}, nil
}

// Analyze returns the cached report for (sourceID, model version) or
// computes and stores it.
func (c *Cache) Analyze(m *graph.Model, sourceID string) *Analysis {
	key := cacheKey{sourceID: sourceID, version: m.Version()}
	if cached, ok := c.entries.Get(key); ok {
		return cached
	}
	analysis := c.analyzer.Analyze(m, sourceID)
	c.entries.Add(key, analysis)
	return analysis
}

// Len returns the number of cached reports.
func (c *Cache) Len() int {
	return c.entries.Len()
}

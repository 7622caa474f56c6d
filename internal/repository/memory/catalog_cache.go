package memory

import (
	"time"

	"scent-advisor-be/pkg/advisor/recommendation"

	"github.com/patrickmn/go-cache"
)

const candidatesKey = "catalog:candidates"

// CatalogCache keeps the last catalog snapshot handed to the recommender.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *CatalogCache) SaveCandidates(candidates []recommendation.ProductCandidate) {
	snapshot := make([]recommendation.ProductCandidate, len(candidates))
	copy(snapshot, candidates)
	r.cache.Set(candidatesKey, snapshot, cache.DefaultExpiration)
}

// Candidates returns a copy of the snapshot so callers cannot reorder the cached slice.
func (r *CatalogCache) Candidates() ([]recommendation.ProductCandidate, bool) {
	x, found := r.cache.Get(candidatesKey)
	if !found {
		return nil, false
	}
	snapshot := x.([]recommendation.ProductCandidate)
	out := make([]recommendation.ProductCandidate, len(snapshot))
	copy(out, snapshot)
	return out, true
}

func (r *CatalogCache) Invalidate() {
	r.cache.Delete(candidatesKey)
}

package license

import (
	"context"
	"time"

	"github.com/matzehuels/licscan/pkg/cache"
)

// Cached memoizes a Classifier in a cache.Cache. Cache failures are treated
// as misses; only the inner classifier can fail a call.
type Cached struct {
	inner Classifier
	store cache.Cache
	id    string
	ttl   time.Duration
}

// NewCached wraps inner. id distinguishes scanners sharing one cache;
// a non-positive ttl uses cache.DefaultTTL.
func NewCached(inner Classifier, store cache.Cache, id string, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Cached{inner: inner, store: store, id: id, ttl: ttl}
}

// Classify implements Classifier.
func (c *Cached) Classify(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}
	key := cache.LicenseKey(c.id, text)
	if data, ok, err := c.store.Get(ctx, key); err == nil && ok {
		return string(data), nil
	}

	name, err := c.inner.Classify(ctx, text)
	if err != nil {
		return "", err
	}
	_ = c.store.Set(ctx, key, []byte(name), c.ttl)
	return name, nil
}

var _ Classifier = (*Cached)(nil)

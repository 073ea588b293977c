package planner

// BucketCache resolves bucket IDs to display names. It is owned by the
// caller of a fetch cycle, never a package-level singleton: a fresh
// fetch builds a fresh cache, and logout or refresh drops it via
// Invalidate.
type BucketCache struct {
	names map[string]string
}

// NewBucketCache returns an empty cache.
func NewBucketCache() *BucketCache {
	return &BucketCache{names: map[string]string{}}
}

// PutAll records the names of the given buckets.
func (c *BucketCache) PutAll(buckets []Bucket) {
	for _, b := range buckets {
		c.names[b.ID] = b.Name
	}
}

// Name returns the display name for a bucket ID, or "" if unknown.
func (c *BucketCache) Name(id string) string {
	return c.names[id]
}

// Invalidate drops all cached names.
func (c *BucketCache) Invalidate() {
	c.names = map[string]string{}
}

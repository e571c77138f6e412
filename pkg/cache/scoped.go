package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving several
// deployments (or a test run) their own namespace in a shared Redis.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "isomers:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CountKey generates a prefixed count key.
func (k *ScopedKeyer) CountKey(kind string, vertices, bound int) string {
	return k.prefix + k.inner.CountKey(kind, vertices, bound)
}

// PartitionsKey generates a prefixed partition listing key.
func (k *ScopedKeyer) PartitionsKey(opts PartitionKeyOpts) string {
	return k.prefix + k.inner.PartitionsKey(opts)
}

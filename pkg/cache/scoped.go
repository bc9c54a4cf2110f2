package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis without seeing each other's entries.
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// NetworkKey generates a prefixed network key.
func (k *ScopedKeyer) NetworkKey(opts NetworkKeyOpts) string {
	return k.prefix + k.inner.NetworkKey(opts)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(networkHash, format string) string {
	return k.prefix + k.inner.RenderKey(networkHash, format)
}

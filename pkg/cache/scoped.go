package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants or
// deployments can share one backend without key collisions.
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// If inner is nil a [DefaultKeyer] is used.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LevelsKey generates a prefixed key for leveling results.
func (k *ScopedKeyer) LevelsKey(graphHash string, opts LevelsKeyOpts) string {
	return k.prefix + k.inner.LevelsKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(levelsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(levelsHash, opts)
}

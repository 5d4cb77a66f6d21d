package cache

// ScopedKeyer wraps a Keyer with a prefix so callers sharing one backend
// get separate namespaces, for example one prefix per user in the server.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner keyer falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey generates a prefixed key for pipeline result caching.
func (k *ScopedKeyer) ResultKey(datasetHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(datasetHash, opts)
}

// RenderKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) RenderKey(resultHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(resultHash, opts)
}

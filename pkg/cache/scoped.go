package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The serve command uses this to keep server entries apart from ad-hoc
// command-line runs sharing the same backend.
//
// Example usage:
//
//	// Keys scoped to the server
//	srvKeyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ProfileKey generates a prefixed key for a loaded profile.
func (k *ScopedKeyer) ProfileKey(inputHash string) string {
	return k.prefix + k.inner.ProfileKey(inputHash)
}

// SceneKey generates a prefixed key for a computed scene.
func (k *ScopedKeyer) SceneKey(profileHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(profileHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

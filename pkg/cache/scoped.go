package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving each document or
// tenant a separate namespace in a shared backend:
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "doc:4f1c:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ReplayKey(timelineHash, scriptHash, settingsHash string) string {
	return k.prefix + k.inner.ReplayKey(timelineHash, scriptHash, settingsHash)
}

func (k *ScopedKeyer) RenderKey(timelineHash, format string) string {
	return k.prefix + k.inner.RenderKey(timelineHash, format)
}

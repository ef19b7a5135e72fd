package bloomfilter

import "sync"

// Locked serializes writers to a Filter while letting readers share it.
type Locked struct {
	mu sync.RWMutex
	f  *Filter
}

func NewLocked(f *Filter) *Locked {
	return &Locked{f: f}
}

func (l *Locked) Add(key string) {
	l.mu.Lock()
	l.f.Add(key)
	l.mu.Unlock()
}

func (l *Locked) Test(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.Test(key)
}

// Bytes exports a consistent snapshot of the bucket words.
func (l *Locked) Bytes() []byte {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.Bytes()
}

func (l *Locked) ApproxSize() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.ApproxSize()
}

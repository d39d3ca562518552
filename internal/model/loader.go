package model

import (
	"context"
	"sync"
)

// Loader opens the predictor on first use and keeps it for the life of the
// process. A failed load is not remembered, so the next call tries again.
type Loader struct {
	mu   sync.Mutex
	open func() (Predictor, error)
	p    Predictor
}

func NewLoader(open func() (Predictor, error)) *Loader {
	return &Loader{open: open}
}

// FileLoader loads a JSON artifact from path.
func FileLoader(path string) *Loader {
	return NewLoader(func() (Predictor, error) { return LoadFile(path) })
}

// Static wraps an already constructed predictor.
func Static(p Predictor) *Loader {
	return &Loader{p: p}
}

func (l *Loader) Get(ctx context.Context) (Predictor, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.p != nil {
		return l.p, nil
	}
	p, err := l.open()
	if err != nil {
		return nil, err
	}
	l.p = p
	return p, nil
}

// Loaded reports whether the predictor is ready without triggering a load.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p != nil
}

// SPDX-License-Identifier: MIT

package bitsource

import (
	"sync"
	"sync/atomic"
)

// Source has the method set of roller.BitSource.
type Source interface {
	Bit() (bool, error)
}

// Func adapts an ordinary function to Source.
type Func func() (bool, error)

// Bit calls f.
func (f Func) Bit() (bool, error) { return f() }

// Locked serializes access to a Source so one stream can be shared by
// several goroutines. Interleaving between goroutines is scheduler-dependent;
// use one stream per goroutine when reproducibility matters.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// Bit implements Source.
func (l *Locked) Bit() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Bit()
}

// Counter counts the bits successfully drawn from the wrapped Source.
// The count may be read concurrently with Bit.
type Counter struct {
	src Source
	n   atomic.Uint64
}

// NewCounter wraps src.
func NewCounter(src Source) *Counter {
	return &Counter{src: src}
}

// Bit implements Source.
func (c *Counter) Bit() (bool, error) {
	b, err := c.src.Bit()
	if err == nil {
		c.n.Add(1)
	}
	return b, err
}

// Count returns the number of bits drawn so far.
func (c *Counter) Count() uint64 { return c.n.Load() }

// Reset sets the count back to zero.
func (c *Counter) Reset() { c.n.Store(0) }

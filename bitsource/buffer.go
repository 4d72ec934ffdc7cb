// SPDX-License-Identifier: MIT

package bitsource

import "fmt"

// DefaultWordBits is the number of bits a Buffer takes from each word.
// The two most significant bits of every word are skipped.
const DefaultWordBits = 62

// Buffer hands out the bits of successive words, most significant first.
//
// With width w, bit positions w−1, w−2, …, 0 of a word are returned before
// the next word is fetched; positions ≥ w are never used.
//
// Buffer implements roller.BitSource. It is not goroutine-safe; wrap it in
// Locked to share it.
type Buffer struct {
	src   WordSource
	width uint
	word  uint64
	pos   uint // bits of word still unread
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithWordBits sets how many low bits of each word are used.
// Panics unless 1 ≤ w ≤ 64.
func WithWordBits(w int) Option {
	if w < 1 || w > 64 {
		panic(fmt.Sprintf("bitsource: WithWordBits(%d) outside [1,64]", w))
	}
	return func(b *Buffer) {
		b.width = uint(w)
	}
}

// NewBuffer returns a Buffer drawing words from src.
func NewBuffer(src WordSource, opts ...Option) *Buffer {
	b := &Buffer{src: src, width: DefaultWordBits}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bit returns the next bit. A word-source error is returned unchanged and
// leaves the Buffer empty, so the next call fetches a fresh word.
func (b *Buffer) Bit() (bool, error) {
	if b.pos == 0 {
		w, err := b.src.Word()
		if err != nil {
			return false, err
		}
		b.word = w
		b.pos = b.width
	}
	b.pos--
	return (b.word>>b.pos)&1 == 1, nil
}

// Remaining reports how many bits of the current word are still unread.
func (b *Buffer) Remaining() int {
	return int(b.pos)
}

// Reset discards the unread bits of the current word.
func (b *Buffer) Reset() {
	b.word, b.pos = 0, 0
}

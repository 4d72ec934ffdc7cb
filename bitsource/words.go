// SPDX-License-Identifier: MIT

package bitsource

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	exprand "golang.org/x/exp/rand"
)

// WordSource produces 64-bit words of randomness for a Buffer.
type WordSource interface {
	Word() (uint64, error)
}

// PCG adapts the permuted congruential generator of golang.org/x/exp/rand
// to WordSource. Like LCG it is deterministic and not goroutine-safe.
type PCG struct {
	src exprand.PCGSource
}

// NewPCG returns a PCG seeded with seed.
func NewPCG(seed uint64) *PCG {
	p := &PCG{}
	p.src.Seed(seed)
	return p
}

// Word implements WordSource; it never fails.
func (p *PCG) Word() (uint64, error) {
	return p.src.Uint64(), nil
}

// Reader turns a byte stream into words: each word is the next 8 bytes,
// little endian. Read errors, including io.EOF and io.ErrUnexpectedEOF on a
// short stream, are returned unchanged.
type Reader struct {
	r   io.Reader
	buf [8]byte
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// NewCrypto returns a Reader over crypto/rand.Reader.
func NewCrypto() *Reader {
	return NewReader(rand.Reader)
}

// Word implements WordSource.
func (rd *Reader) Word() (uint64, error) {
	if _, err := io.ReadFull(rd.r, rd.buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(rd.buf[:]), nil
}

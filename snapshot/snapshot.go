// SPDX-License-Identifier: MIT

// Package snapshot persists built FLDR tables so a Roller can be restored
// without its weight vector and without rebuilding.
//
// Format: one zstd frame wrapping a deterministic CBOR map with integer
// keys. Restored tables are verified before a Roller is returned, so a
// damaged file is reported as roller.ErrCorruptTables instead of producing
// a sampler with the wrong distribution.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/fldr/roller"
)

// Version is the format version written by this package.
const Version = 1

var (
	// ErrUnsupportedVersion indicates a snapshot written by an unknown format version.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrDecode indicates a stream that is not a valid compressed CBOR snapshot.
	ErrDecode = errors.New("snapshot: decode failed")
)

// Header identifies a snapshot.
type Header struct {
	Version int       `cbor:"1,keyasint"`
	ID      uuid.UUID `cbor:"2,keyasint"`
}

// document is the on-disk layout.
type document struct {
	Header Header `cbor:"1,keyasint"`
	N      int    `cbor:"2,keyasint"`
	Total  uint64 `cbor:"3,keyasint"`
	Sole   int    `cbor:"4,keyasint"`
	Levels []int  `cbor:"5,keyasint"`
	Slots  []int  `cbor:"6,keyasint"`
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: cbor enc mode: %v", err))
	}
}

// Write stores r's tables to w under a fresh random ID and returns that ID.
func Write(w io.Writer, r *roller.Roller) (uuid.UUID, error) {
	id := uuid.New()
	return id, WriteID(w, r, id)
}

// WriteID stores r's tables to w under the given ID.
func WriteID(w io.Writer, r *roller.Roller, id uuid.UUID) error {
	t := r.Tables()
	doc := document{
		Header: Header{Version: Version, ID: id},
		N:      t.N,
		Total:  t.Total,
		Sole:   t.Sole,
		Levels: t.Levels,
		Slots:  t.Slots,
	}
	raw, err := encMode.Marshal(doc)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := zw.Write(raw); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// Read restores a Roller from rd and returns it with the snapshot header.
func Read(rd io.Reader) (*roller.Roller, Header, error) {
	zr, err := zstd.NewReader(rd)
	if err != nil {
		return nil, Header{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, Header{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var doc document
	if err := cbor.Unmarshal(raw, &doc); err != nil {
		return nil, Header{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if doc.Header.Version != Version {
		return nil, doc.Header, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Header.Version)
	}

	r, err := roller.FromTables(roller.Tables{
		N:      doc.N,
		Total:  doc.Total,
		Sole:   doc.Sole,
		Levels: doc.Levels,
		Slots:  doc.Slots,
	})
	if err != nil {
		return nil, doc.Header, err
	}

	return r, doc.Header, nil
}

// WriteFile writes a snapshot of r to path, replacing any existing file.
func WriteFile(path string, r *roller.Roller) (uuid.UUID, error) {
	f, err := os.Create(path)
	if err != nil {
		return uuid.Nil, err
	}
	bw := bufio.NewWriter(f)
	id, err := Write(bw, r)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ReadFile restores a Roller from the snapshot at path.
func ReadFile(path string) (*roller.Roller, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, err
	}
	defer f.Close()

	return Read(bufio.NewReader(f))
}

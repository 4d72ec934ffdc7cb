// SPDX-License-Identifier: MIT

// Package distfile loads weight vectors and sampling parameters from YAML.
//
// A document looks like:
//
//	name: d3
//	weights: [1, 2, 3]
//	labels: [low, mid, high]  # optional, one per weight
//	seed: 42                  # optional, default 42
//	word_bits: 62             # optional, default 62
//	samples: 10               # optional, default 10
//
// Every document is checked against an embedded JSON Schema before it is
// decoded, so type and range mistakes are reported with their location.
package distfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fldr/bitsource"
	"github.com/katalvlaran/fldr/roller"
)

// Defaults applied to fields absent from the document.
const (
	DefaultSeed    uint64 = 42
	DefaultSamples        = 10
)

var (
	// ErrParse indicates a document that is not valid YAML.
	ErrParse = errors.New("distfile: parse error")

	// ErrSchema indicates a document that violates the distribution schema.
	ErrSchema = errors.New("distfile: schema violation")

	// ErrLabels indicates a labels list whose length differs from weights.
	ErrLabels = errors.New("distfile: labels do not match weights")
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("distfile.schema.json", schemaJSON)

// File is a decoded distribution document.
type File struct {
	Name     string   `yaml:"name"`
	Weights  []uint64 `yaml:"weights"`
	Labels   []string `yaml:"labels,omitempty"`
	Seed     uint64   `yaml:"seed"`
	WordBits int      `yaml:"word_bits"`
	Samples  int      `yaml:"samples"`
}

// Load reads and parses the document at path.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Parse(raw)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse validates raw against the schema and decodes it.
func Parse(raw []byte) (File, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := validate(doc); err != nil {
		return File{}, err
	}

	f := File{
		Seed:     DefaultSeed,
		WordBits: bitsource.DefaultWordBits,
		Samples:  DefaultSamples,
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(f.Labels) > 0 && len(f.Labels) != len(f.Weights) {
		return File{}, fmt.Errorf("%w: %d labels for %d weights", ErrLabels, len(f.Labels), len(f.Weights))
	}

	return f, nil
}

// validate runs the schema over doc. The YAML tree is normalized through
// encoding/json first so the validator sees plain JSON values.
func validate(doc interface{}) error {
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// Roller builds the Roller for the document's weights.
func (f File) Roller() (*roller.Roller, error) {
	return roller.New(f.Weights)
}

// Source returns a fresh bit stream for the document's seed and word width.
func (f File) Source() *bitsource.Buffer {
	return bitsource.NewBuffer(bitsource.NewLCG(f.Seed), bitsource.WithWordBits(f.WordBits))
}

// Label names outcome i: its label when present, otherwise its index.
func (f File) Label(i int) string {
	if i >= 0 && i < len(f.Labels) {
		return f.Labels[i]
	}
	return strconv.Itoa(i)
}

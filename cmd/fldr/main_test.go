package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeights(t *testing.T) {
	ws, err := parseWeights("1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ws)

	for _, bad := range []string{"", "1,,2", "1,-2", "x", "18446744073709551616"} {
		_, err := parseWeights(bad)
		assert.Error(t, err, bad)
	}
}

func TestRun_Weights(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-weights", "1,2,3", "-n", "3", "-seed", "42"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "2 2 1\n", out.String())
}

func TestRun_DistFileLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d3.yaml")
	doc := "name: d3\nweights: [1, 2, 3]\nlabels: [low, mid, high]\nsamples: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	var out, errOut bytes.Buffer
	code := run([]string{"-dist", path}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "high high mid\n", out.String())
}

func TestRun_SnapshotRoundTrip(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "d3.fldr")

	var first, second, errOut bytes.Buffer
	require.Equal(t, 0, run([]string{"-weights", "1,2,3", "-n", "10", "-snapshot-out", snap}, &first, &errOut), errOut.String())
	require.Equal(t, 0, run([]string{"-snapshot-in", snap, "-n", "10"}, &second, &errOut), errOut.String())
	assert.Equal(t, first.String(), second.String())
}

func TestRun_Chi(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-weights", "1,2,3,0", "-n", "6000", "-chi"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5) // samples, three outcomes, summary
	assert.True(t, strings.HasPrefix(lines[4], "chi2="), lines[4])
	assert.Contains(t, lines[4], "df=2")
}

func TestRun_Usage(t *testing.T) {
	cases := map[string][]string{
		"no source":      {},
		"two sources":    {"-weights", "1", "-snapshot-in", "x"},
		"bad weights":    {"-weights", "1,a"},
		"negative n":     {"-weights", "1,2", "-n", "-1"},
		"word bits":      {"-weights", "1,2", "-word-bits", "65"},
		"unknown source": {"-weights", "1,2", "-source", "dice"},
		"unknown flag":   {"-frobnicate"},
		"empty dist":     {"-dist", ""},
		"empty weights":  {"-weights", ""},
		"empty snapshot": {"-snapshot-in", ""},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			assert.Equal(t, 2, run(args, &out, &errOut))
			assert.Empty(t, out.String())
		})
	}
}

func TestRun_InvalidDistribution(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 1, run([]string{"-weights", "0,0"}, &out, &errOut))
	assert.Equal(t, 1, run([]string{"-snapshot-in", filepath.Join(t.TempDir(), "missing")}, &out, &errOut))
}

func TestRun_MetricsListenError(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-weights", "1,2", "-n", "1", "-metrics", "127.0.0.1:-1"}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, out.String())
}

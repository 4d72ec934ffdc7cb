package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fldr/bitsource"
	"github.com/katalvlaran/fldr/metrics"
	"github.com/katalvlaran/fldr/roller"
)

// TestSample_Counts records the known trace of weights [1,2,3] under seed 42:
// (index 2, 5 bits, 1 restart), (2, 2, 0), (1, 2, 0).
func TestSample_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg, "test")
	require.NoError(t, err)

	r, err := roller.New([]int{1, 2, 3})
	require.NoError(t, err)

	out := make([]int, 3)
	require.NoError(t, m.SampleN(r, bitsource.NewBuffer(bitsource.NewLCG(42)), out))
	assert.Equal(t, []int{2, 2, 1}, out)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Samples))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.Bits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restarts))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Errors))

	var pb dto.Metric
	require.NoError(t, m.PerDraw.Write(&pb))
	assert.Equal(t, uint64(3), pb.GetHistogram().GetSampleCount())
	assert.Equal(t, 9.0, pb.GetHistogram().GetSampleSum())

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

// TestSample_SameSequence checks that instrumentation does not change the draws.
func TestSample_SameSequence(t *testing.T) {
	m, err := metrics.New(nil, "")
	require.NoError(t, err)

	r, err := roller.NewFunc(255, func(i int) int64 { return int64(i % 3) })
	require.NoError(t, err)

	out := make([]int, 10)
	require.NoError(t, m.SampleN(r, bitsource.NewBuffer(bitsource.NewLCG(42)), out))
	assert.Equal(t, []int{49, 50, 193, 56, 182, 14, 158, 62, 166, 221}, out)
	assert.Equal(t, 10.0, testutil.ToFloat64(m.Samples))
}

// TestSample_Error counts aborted draws and passes the error through.
func TestSample_Error(t *testing.T) {
	m, err := metrics.New(nil, "")
	require.NoError(t, err)

	r, err := roller.New([]int{1, 2, 3})
	require.NoError(t, err)

	boom := errors.New("boom")
	src := bitsource.Func(func() (bool, error) { return false, boom })

	z, err := m.Sample(r, src)
	assert.Same(t, boom, err)
	assert.Equal(t, -1, z)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Samples))

	out := []int{7, 7}
	assert.Same(t, boom, m.SampleN(r, src, out))
	assert.Equal(t, []int{7, 7}, out)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Errors))
}

// TestNew_DuplicateRegistration surfaces the registry error.
func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg, "dup")
	require.NoError(t, err)

	_, err = metrics.New(reg, "dup")
	var are prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &are)
}

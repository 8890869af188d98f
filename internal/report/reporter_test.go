package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplesearch/internal/model"
)

func sampleGeneration() Generation {
	return Generation{
		Index: 3,
		Top: []model.Candidate{
			model.NewCandidate(9999, 4, -1, 0),
			model.NewCandidate(0.1666, 5, 0, 1),
		},
		Summary: Summary{Size: 5, Best: 9999, Worst: 0, Mean: 2000, StdDev: 10, ZeroRanks: 1},
	}
}

func TestWriterReporterPrintsTopInOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriterReporter{W: &buf}.Report(context.Background(), sampleGeneration()))

	out := buf.String()
	first := strings.Index(out, "Rank 9999")
	second := strings.Index(out, "Rank 0\n")
	require.GreaterOrEqual(t, first, 0, out)
	require.Greater(t, second, first, out)
	assert.Contains(t, out, "x: 5.000000 y: 0.000000 z: 1.000000")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriterReporterSurfacesWriteErrors(t *testing.T) {
	err := WriterReporter{W: failingWriter{}}.Report(context.Background(), sampleGeneration())
	assert.ErrorContains(t, err, "generation 3")
}

func TestLogReporterEmitsSummaryAndVerboseTop(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	require.NoError(t, LogReporter{Logger: logger}.Report(context.Background(), sampleGeneration()))
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"best_rank"=9999`)
	assert.Contains(t, lines[1], `"position"=1`)
	assert.Contains(t, lines[2], `"position"=2`)
}

func TestLogReporterQuietAtDefaultVerbosity(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	require.NoError(t, LogReporter{Logger: logger}.Report(context.Background(), sampleGeneration()))
	assert.Len(t, lines, 1)
}

type recordingReporter struct {
	seen []int
	err  error
}

func (r *recordingReporter) Report(_ context.Context, gen Generation) error {
	r.seen = append(r.seen, gen.Index)
	return r.err
}

func TestMultiStopsAtFirstError(t *testing.T) {
	first := &recordingReporter{}
	failing := &recordingReporter{err: errors.New("sink down")}
	last := &recordingReporter{}

	err := Multi{first, nil, failing, last}.Report(context.Background(), sampleGeneration())
	assert.EqualError(t, err, "sink down")
	assert.Equal(t, []int{3}, first.seen)
	assert.Equal(t, []int{3}, failing.seen)
	assert.Empty(t, last.seen)
}

func TestMetricsReporterTracksLatestGeneration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetricsReporter(reg)
	require.NoError(t, err)

	gen := sampleGeneration()
	require.NoError(t, m.Report(context.Background(), gen))
	gen.Summary.Best = 12
	require.NoError(t, m.Report(context.Background(), gen))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.bestRank))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.zeroRanks))
}

func TestMetricsReporterRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetricsReporter(reg)
	require.NoError(t, err)
	_, err = NewMetricsReporter(reg)
	assert.Error(t, err)
}

package preprocess

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/tabprep/internal/report"
	"github.com/GoogleCloudPlatform/tabprep/internal/stats"
	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

const tolerance = 1e-9

func newTestProcessor() (*Processor, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(report.New(&buf), nil), &buf
}

func mustTable(t *testing.T, cols ...*table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(cols...)
	require.NoError(t, err)
	return tbl
}

func column(t *testing.T, tbl *table.Table, name string) *table.Column {
	t.Helper()
	c, ok := tbl.Column(name)
	require.True(t, ok, "column %q not found in %v", name, tbl.Names())
	return c
}

func nan() float64 { return math.NaN() }

func populationStd(values []float64) float64 { return stats.Std(values, 0) }

package preprocess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

func TestEncodeCategorical(t *testing.T) {
	p, out := newTestProcessor()
	in := mustTable(t,
		table.NewCategorical("city", []string{"Paris", "Lyon", "Nice", "", "Paris"}, []bool{false, false, false, true, false}),
		table.NewNumeric("age", []float64{25, 32, 47, 51, 25}, nil),
		table.NewCategorical("size", []string{"S", "M", "S", "M", "S"}, nil),
		table.NewBoolean("member", []bool{true, false, true, false, true}, nil),
	)

	got, err := p.EncodeCategorical(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "member", "city_Nice", "city_Paris", "size_S"}, got.Names())
	assert.Equal(t, 5, got.NumRows())

	want := [][]string{
		{"age", "member", "city_Nice", "city_Paris", "size_S"},
		{"25", "true", "false", "true", "true"},
		{"32", "false", "false", "false", "false"},
		{"47", "true", "true", "false", "true"},
		{"51", "false", "false", "false", "false"},
		{"25", "true", "false", "true", "true"},
	}
	if diff := cmp.Diff(want, got.Records()); diff != "" {
		t.Errorf("EncodeCategorical() mismatch (-want +got):\n%s", diff)
	}

	for _, name := range []string{"city_Nice", "city_Paris", "size_S"} {
		assert.Equal(t, table.Boolean, column(t, got, name).Kind())
	}
	assert.Equal(t, column(t, in, "age").NonNullFloats(), column(t, got, "age").NonNullFloats(), "numeric columns pass through")

	report := out.String()
	assert.Contains(t, report, "Categorical columns found: [city, size]")
	assert.Contains(t, report, "Shape after encoding: (5, 5)")
}

func TestEncodeCategoricalDoesNotShareColumns(t *testing.T) {
	p, _ := newTestProcessor()
	in := mustTable(t,
		table.NewNumeric("age", []float64{25, 32, 47}, nil),
		table.NewBoolean("member", []bool{true, false, true}, nil),
		table.NewCategorical("city", []string{"Paris", "Lyon", "Paris"}, nil),
	)

	got, err := p.EncodeCategorical(in)
	require.NoError(t, err)
	assert.NotSame(t, column(t, in, "age"), column(t, got, "age"))

	p.Normalize(got, "minmax")
	column(t, got, "member").SetBool(0, false)

	assert.Equal(t, []float64{25, 32, 47}, column(t, in, "age").NonNullFloats(), "scaling the encoded table leaves the input alone")
	assert.True(t, column(t, in, "member").Bool(0))
}

func TestEncodeCategoricalKMinusOne(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   int
	}{
		{"Three levels", []string{"a", "b", "c", "a"}, 2},
		{"Two levels", []string{"x", "y", "x", "y"}, 1},
		{"Single level", []string{"k", "k", "k", "k"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestProcessor()
			in := mustTable(t, table.NewCategorical("c", tt.values, nil))

			got, err := p.EncodeCategorical(in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.NumCols())
			assert.False(t, got.Has("c"))
			assert.Equal(t, 4, got.NumRows())
		})
	}
}

func TestEncodeCategoricalNameCollision(t *testing.T) {
	p, _ := newTestProcessor()
	in := mustTable(t,
		table.NewNumeric("color_red", []float64{1, 0}, nil),
		table.NewCategorical("color", []string{"blue", "red"}, nil),
	)

	got, err := p.EncodeCategorical(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"color_red", "color_red_1"}, got.Names())
}

func TestEncodeCategoricalWithoutCategoricalColumns(t *testing.T) {
	p, out := newTestProcessor()
	in := mustTable(t,
		table.NewNumeric("n", []float64{1, 2}, nil),
		table.NewBoolean("b", []bool{true, false}, nil),
	)

	got, err := p.EncodeCategorical(in)
	require.NoError(t, err)
	assert.Same(t, in, got)
	assert.Contains(t, out.String(), "No categorical columns to encode")
}

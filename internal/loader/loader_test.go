package loader

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/tabprep/internal/table"
)

// MockFetcher stands in for a database connection.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchRecords(ctx context.Context, tableName string, limit int) ([]string, [][]string, error) {
	args := m.Called(ctx, tableName, limit)
	header, _ := args.Get(0).([]string)
	rows, _ := args.Get(1).([][]string)
	return header, rows, args.Error(2)
}

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func TestCSVSource_Load(t *testing.T) {
	src := &CSVSource{Path: testdata("people.csv"), NAValues: []string{"-"}}
	tbl, err := src.Load(context.Background())
	require.NoError(t, err)

	rows, cols := tbl.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, []string{"id", "score", "city", "active"}, tbl.Names())

	tests := []struct {
		column string
		kind   table.Kind
		nulls  int
	}{
		{"id", table.Numeric, 0},
		{"score", table.Numeric, 2},
		{"city", table.Categorical, 2},
		{"active", table.Boolean, 1},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			col, ok := tbl.Column(tt.column)
			require.True(t, ok)
			assert.Equal(t, tt.kind, col.Kind())
			assert.Equal(t, tt.nulls, col.NullCount())
		})
	}

	score, _ := tbl.Column("score")
	assert.Equal(t, []float64{3.5, 7}, score.NonNullFloats())
	city, _ := tbl.Column("city")
	assert.Equal(t, []string{"Paris", "Lyon"}, city.NonNullStrings())
}

func TestCSVSource_LoadWithoutExtraNAValues(t *testing.T) {
	tbl, err := (&CSVSource{Path: testdata("people.csv")}).Load(context.Background())
	require.NoError(t, err)

	score, _ := tbl.Column("score")
	assert.Equal(t, table.Categorical, score.Kind(), "a dash is a value unless listed as missing")
	assert.Equal(t, 1, score.NullCount())
}

func TestCSVSource_LoadDelimiter(t *testing.T) {
	tbl, err := (&CSVSource{Path: testdata("semicolon.csv"), Delimiter: ';'}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
	assert.Equal(t, 2, tbl.NumRows())
}

func TestCSVSource_LoadErrors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		unavailable bool
	}{
		{"Missing file", testdata("absent.csv"), true},
		{"Directory", "testdata", true},
		{"Ragged rows", testdata("ragged.csv"), false},
		{"Empty file", testdata("empty.csv"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := (&CSVSource{Path: tt.path}).Load(context.Background())
			require.Error(t, err)
			assert.Nil(t, tbl)

			var unavailable *ErrSourceUnavailable
			var malformed *ErrMalformedInput
			if tt.unavailable {
				assert.ErrorAs(t, err, &unavailable)
			} else {
				assert.ErrorAs(t, err, &malformed)
			}
		})
	}
}

func TestCSVSource_LoadHeaderOnly(t *testing.T) {
	tbl, err := (&CSVSource{Path: testdata("header_only.csv")}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
	for _, c := range tbl.Columns() {
		assert.Equal(t, table.Categorical, c.Kind(), c.Name())
	}
}

func TestCSVSource_LoadColumnTypes(t *testing.T) {
	tbl, err := (&CSVSource{Path: testdata("mixed.csv")}).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, tbl.NumRows())

	tests := []struct {
		column string
		kind   table.Kind
		nulls  int
	}{
		{"code", table.Categorical, 0},
		{"member", table.Boolean, 0},
		{"flag", table.Boolean, 1},
		{"level", table.Categorical, 0},
		{"x", table.Numeric, 0},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			col, ok := tbl.Column(tt.column)
			require.True(t, ok)
			assert.Equal(t, tt.kind, col.Kind())
			assert.Equal(t, tt.nulls, col.NullCount())
		})
	}

	code, _ := tbl.Column("code")
	assert.Equal(t, []string{"true", "2.5", "false", "true"}, code.NonNullStrings(), "cells keep their text")
	member, _ := tbl.Column("member")
	assert.Equal(t, []bool{true, false, true, false}, member.NonNullBools())
	flag, _ := tbl.Column("flag")
	assert.True(t, flag.IsNull(2))
	assert.Equal(t, []bool{false, true, true}, flag.NonNullBools())
	level, _ := tbl.Column("level")
	assert.Equal(t, []string{"yes", "no", "yes", "no"}, level.NonNullStrings())
}

func TestCSVSource_LoadRenamesHeaders(t *testing.T) {
	tbl, err := (&CSVSource{Path: testdata("dup_header.csv")}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a.1", "b", "a.2", "Unnamed: 4"}, tbl.Names())
}

func TestUniqueHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"Unique", []string{"a", "b"}, []string{"a", "b"}},
		{"Repeated", []string{"a", "a", "a"}, []string{"a", "a.1", "a.2"}},
		{"Suffix taken", []string{"a", "a.1", "a"}, []string{"a", "a.1", "a.1.1"}},
		{"Blank", []string{"", "x", ""}, []string{"Unnamed: 0", "x", "Unnamed: 2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uniqueHeader(tt.header))
		})
	}
}

func TestCSVSource_LoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&CSVSource{Path: testdata("people.csv")}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLSource_Load(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchRecords", mock.Anything, "people", 100).Return(
		[]string{"age", "city", "member"},
		[][]string{
			{"25", "Paris", "true"},
			{"", "Lyon", "false"},
			{"40", "", "true"},
		},
		nil,
	)

	src := &SQLSource{Fetcher: fetcher, Table: "people", Limit: 100, Dialect: "postgres"}
	assert.Equal(t, "postgres table people", src.Describe())

	tbl, err := src.Load(context.Background())
	require.NoError(t, err)
	fetcher.AssertExpectations(t)

	age, _ := tbl.Column("age")
	assert.Equal(t, table.Numeric, age.Kind())
	assert.Equal(t, 1, age.NullCount())
	city, _ := tbl.Column("city")
	assert.Equal(t, table.Categorical, city.Kind())
	assert.Equal(t, 1, city.NullCount())
	member, _ := tbl.Column("member")
	assert.Equal(t, table.Boolean, member.Kind())
}

func TestSQLSource_LoadDoesNotModifyFetchedRows(t *testing.T) {
	rows := [][]string{{"TRUE"}, {"False"}}
	fetcher := new(MockFetcher)
	fetcher.On("FetchRecords", mock.Anything, "flags", 0).Return([]string{"ok"}, rows, nil)

	tbl, err := (&SQLSource{Fetcher: fetcher, Table: "flags"}).Load(context.Background())
	require.NoError(t, err)

	ok, _ := tbl.Column("ok")
	assert.Equal(t, table.Boolean, ok.Kind())
	assert.Equal(t, [][]string{{"TRUE"}, {"False"}}, rows)
}

func TestSQLSource_LoadEmptyTable(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchRecords", mock.Anything, "empty", 0).Return([]string{"a", "b"}, [][]string{}, nil)

	tbl, err := (&SQLSource{Fetcher: fetcher, Table: "empty"}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
}

func TestSQLSource_LoadErrors(t *testing.T) {
	queryErr := errors.New("relation does not exist")

	t.Run("Fetch error", func(t *testing.T) {
		fetcher := new(MockFetcher)
		fetcher.On("FetchRecords", mock.Anything, "missing", 0).Return(nil, nil, queryErr)

		_, err := (&SQLSource{Fetcher: fetcher, Table: "missing"}).Load(context.Background())
		var unavailable *ErrSourceUnavailable
		assert.ErrorAs(t, err, &unavailable)
		assert.ErrorIs(t, err, queryErr)
	})

	t.Run("No columns", func(t *testing.T) {
		fetcher := new(MockFetcher)
		fetcher.On("FetchRecords", mock.Anything, "bare", 0).Return([]string{}, [][]string{}, nil)

		_, err := (&SQLSource{Fetcher: fetcher, Table: "bare"}).Load(context.Background())
		var malformed *ErrMalformedInput
		assert.ErrorAs(t, err, &malformed)
		assert.ErrorContains(t, err, "has no columns")
	})

	t.Run("No connection", func(t *testing.T) {
		_, err := (&SQLSource{Table: "people"}).Load(context.Background())
		assert.ErrorContains(t, err, "no database connection")
	})
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("permission denied")
	err := &ErrSourceUnavailable{Msg: "cannot open file", Err: cause}
	assert.Equal(t, "source unavailable: cannot open file: permission denied", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))

	malformed := &ErrMalformedInput{Msg: "table has no columns"}
	assert.Equal(t, "malformed input: table has no columns", malformed.Error())
	assert.Nil(t, errors.Unwrap(malformed))
}

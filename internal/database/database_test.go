package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/tabprep/internal/config"
)

// Mock DialectHandler implementation
type mockDialectHandler struct {
	createCloudSQLPoolFn func(cfg config.DatabaseConfig) (*sql.DB, error)
	createStandardPoolFn func(cfg config.DatabaseConfig) (*sql.DB, error)

	cloudSQLPoolCalls int
	standardPoolCalls int
}

func (m *mockDialectHandler) CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	m.cloudSQLPoolCalls++
	if m.createCloudSQLPoolFn != nil {
		return m.createCloudSQLPoolFn(cfg)
	}
	mockDb, _, _ := sqlmock.New(sqlmock.MonitorPingsOption(false))
	return mockDb, nil
}

func (m *mockDialectHandler) CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	m.standardPoolCalls++
	if m.createStandardPoolFn != nil {
		return m.createStandardPoolFn(cfg)
	}
	mockDb, _, _ := sqlmock.New(sqlmock.MonitorPingsOption(false))
	return mockDb, nil
}

func (m *mockDialectHandler) QuoteIdentifier(name string) string { return fmt.Sprintf(`"%s"`, name) }

func (m *mockDialectHandler) ListTablesQuery() string { return "SELECT name FROM tables" }

func (m *mockDialectHandler) SelectQuery(table string, limit int) string {
	if limit > 0 {
		return fmt.Sprintf("SELECT * FROM %s LIMIT %d", m.QuoteIdentifier(table), limit)
	}
	return "SELECT * FROM " + m.QuoteIdentifier(table)
}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })
	return &DB{Pool: mockDb, Handler: &mockDialectHandler{}}, mock
}

func TestRegisterAndGetDialectHandler(t *testing.T) {
	handler := &mockDialectHandler{}
	RegisterDialectHandler("mockdialect", handler)

	got, err := GetDialectHandler("mockdialect")
	require.NoError(t, err)
	assert.Same(t, handler, got)

	_, err = GetDialectHandler("nonexistent")
	assert.ErrorContains(t, err, "unsupported database dialect: nonexistent")
}

func TestNewChoosesPoolByDialect(t *testing.T) {
	standard := &mockDialectHandler{}
	cloud := &mockDialectHandler{}
	RegisterDialectHandler("mockstd", standard)
	RegisterDialectHandler("cloudsqlmock", cloud)

	db, err := New(context.Background(), config.DatabaseConfig{Dialect: "mockstd"})
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 1, standard.standardPoolCalls)
	assert.Equal(t, 0, standard.cloudSQLPoolCalls)

	db, err = New(context.Background(), config.DatabaseConfig{Dialect: "cloudsqlmock"})
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 1, cloud.cloudSQLPoolCalls)
	assert.Equal(t, 0, cloud.standardPoolCalls)
}

func TestNewErrors(t *testing.T) {
	poolErr := errors.New("cannot open")
	RegisterDialectHandler("mockfail", &mockDialectHandler{
		createStandardPoolFn: func(cfg config.DatabaseConfig) (*sql.DB, error) { return nil, poolErr },
	})
	_, err := New(context.Background(), config.DatabaseConfig{Dialect: "mockfail"})
	assert.ErrorIs(t, err, poolErr)

	pingErr := errors.New("ping refused")
	RegisterDialectHandler("mockping", &mockDialectHandler{
		createStandardPoolFn: func(cfg config.DatabaseConfig) (*sql.DB, error) {
			mockDb, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			if err != nil {
				return nil, err
			}
			mock.ExpectPing().WillReturnError(pingErr)
			mock.ExpectClose()
			return mockDb, nil
		},
	})
	_, err = New(context.Background(), config.DatabaseConfig{Dialect: "mockping"})
	assert.ErrorIs(t, err, pingErr)
	assert.ErrorContains(t, err, "ping failed")

	_, err = New(context.Background(), config.DatabaseConfig{Dialect: "unknown"})
	assert.ErrorContains(t, err, "unsupported database dialect")
}

func TestListTables(t *testing.T) {
	query := regexp.QuoteMeta("SELECT name FROM tables")

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("users").AddRow("orders"))

		tables, err := db.ListTables(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"users", "orders"}, tables)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		dbErr := errors.New("connection failed")
		mock.ExpectQuery(query).WillReturnError(dbErr)

		_, err := db.ListTables(context.Background())
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Scan Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow(nil))

		_, err := db.ListTables(context.Background())
		assert.ErrorContains(t, err, "error scanning table name")
	})

	t.Run("Nil Handler", func(t *testing.T) {
		db := &DB{}
		_, err := db.ListTables(context.Background())
		assert.ErrorContains(t, err, "dialect handler not initialized")
	})
}

func TestFetchRecords(t *testing.T) {
	t.Run("Success converts values and NULLs", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows([]string{"id", "income", "city", "member"}).
			AddRow(int64(1), 50000.5, "Paris", true).
			AddRow(int64(2), nil, nil, false)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "people" LIMIT 10`)).WillReturnRows(rows)

		header, records, err := db.FetchRecords(context.Background(), "people", 10)
		require.NoError(t, err)

		assert.Equal(t, []string{"id", "income", "city", "member"}, header)
		want := [][]string{
			{"1", "50000.5", "Paris", "true"},
			{"2", "", "", "false"},
		}
		if diff := cmp.Diff(want, records); diff != "" {
			t.Errorf("FetchRecords() mismatch (-want +got):\n%s", diff)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No limit", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "people"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		header, records, err := db.FetchRecords(context.Background(), "people", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, header)
		assert.Empty(t, records)
	})

	t.Run("Query Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		dbErr := errors.New("relation does not exist")
		mock.ExpectQuery("SELECT").WillReturnError(dbErr)

		_, _, err := db.FetchRecords(context.Background(), "people", 0)
		assert.ErrorIs(t, err, dbErr)
		assert.ErrorContains(t, err, "error querying table people")
	})

	t.Run("Row Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		rowErr := errors.New("connection reset")
		rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).RowError(0, rowErr)
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		_, _, err := db.FetchRecords(context.Background(), "people", 0)
		assert.ErrorIs(t, err, rowErr)
	})
}

func TestPingAndClose(t *testing.T) {
	mockDb, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	db := &DB{Pool: mockDb, Handler: &mockDialectHandler{}}

	mock.ExpectPing()
	assert.NoError(t, db.Ping(context.Background()))

	mock.ExpectClose()
	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())

	empty := &DB{}
	assert.Error(t, empty.Ping(context.Background()))
	assert.NoError(t, empty.Close())
}

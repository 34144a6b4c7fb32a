package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &Store{db: db}, mock, func() { _ = db.Close() }
}

func TestPutUpserts(t *testing.T) {
	store, mock, done := newStoreWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO kv_items").
		WithArgs("record:abc", []byte("v"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Put(context.Background(), "record:abc", []byte("v")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetMissingKeyReportsNotFound(t *testing.T) {
	store, mock, done := newStoreWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT value FROM kv_items").
		WithArgs("record:missing").
		WillReturnError(sql.ErrNoRows)

	_, found, err := store.Get(context.Background(), "record:missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Fatalf("expected not found")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetReturnsValue(t *testing.T) {
	store, mock, done := newStoreWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT value FROM kv_items").
		WithArgs("record:abc").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"abc"}`)))

	raw, found, err := store.Get(context.Background(), "record:abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatalf("expected found")
	}
	if string(raw) != `{"id":"abc"}` {
		t.Fatalf("value = %s", raw)
	}
}

func TestQueryPrefixWithLimit(t *testing.T) {
	store, mock, done := newStoreWithMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("chat:abc:t1", []byte("a")).
		AddRow("chat:abc:t2", []byte("b"))
	mock.ExpectQuery("SELECT key, value FROM kv_items WHERE key LIKE").
		WithArgs(`chat:abc:%`, 2).
		WillReturnRows(rows)

	items, err := store.QueryPrefix(context.Background(), "chat:abc:", 2)
	if err != nil {
		t.Fatalf("QueryPrefix() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Key != "chat:abc:t1" {
		t.Fatalf("unexpected first key %s", items[0].Key)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`a%b_c\d`); got != `a\%b\_c\\d` {
		t.Fatalf("escapeLike() = %q", got)
	}
}

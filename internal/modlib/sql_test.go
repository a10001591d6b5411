package modlib_test

import (
	"testing"

	"github.com/jornb/selene/internal/modlib"
	"github.com/jornb/selene/pkg/selene"
)

func newStateWith(t *testing.T, name string) *selene.State {
	t.Helper()
	s := selene.New(true)
	t.Cleanup(s.Close)
	loader, ok := modlib.Loaders[name]
	if !ok {
		t.Fatalf("no loader registered for %q", name)
	}
	s.OpenLib(name, loader)
	return s
}

func TestSQLModule(t *testing.T) {
	s := newStateWith(t, "sql")

	ok := s.Execute(`
		local db = assert(sql.open(":memory:"))
		assert(db:exec("create table kv (k text, v integer)"))
		assert(db:exec("insert into kv values (?, ?)", "a", 1))
		assert(db:exec("insert into kv values (?, ?)", "b", 2))

		local rows = assert(db:query("select k, v from kv order by k"))
		count = #rows
		first_k = rows[1].k
		second_v = rows[2].v
		assert(db:close())
	`)
	if !ok {
		t.Fatal("sql script failed")
	}

	if got := s.Global("count").Int(); got != 2 {
		t.Errorf("Expected 2 rows, got %d", got)
	}
	if got := s.Global("first_k").Str(); got != "a" {
		t.Errorf("Expected first_k=a, got %q", got)
	}
	if got := s.Global("second_v").Int(); got != 2 {
		t.Errorf("Expected second_v=2, got %d", got)
	}
}

func TestSQLQueryError(t *testing.T) {
	s := newStateWith(t, "sql")

	ok := s.Execute(`
		local db = assert(sql.open(":memory:"))
		local rows, err = db:query("select * from missing_table")
		had_error = (rows == nil) and (err ~= nil)
		db:close()
	`)
	if !ok {
		t.Fatal("sql script failed")
	}
	if !s.Global("had_error").Bool() {
		t.Error("querying a missing table did not surface an error")
	}
}

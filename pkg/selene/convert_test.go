package selene_test

import (
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/jornb/selene/pkg/selene"
)

func tableFromScript(t *testing.T, source string) *lua.LTable {
	t.Helper()
	L := lua.NewState()
	t.Cleanup(L.Close)
	if err := L.DoString("t = " + source); err != nil {
		t.Fatalf("building table: %v", err)
	}
	tbl, ok := L.GetGlobal("t").(*lua.LTable)
	if !ok {
		t.Fatalf("expected a table from %q", source)
	}
	return tbl
}

func TestFromLuaDenseArray(t *testing.T) {
	tbl := tableFromScript(t, `{ "a", "b", "c" }`)

	arr, ok := selene.FromLua(tbl).([]interface{})
	if !ok {
		t.Fatalf("dense numeric table did not convert to a slice")
	}
	if len(arr) != 3 || arr[0] != "a" || arr[2] != "c" {
		t.Errorf("unexpected slice contents: %v", arr)
	}
}

func TestFromLuaSparseNumericTable(t *testing.T) {
	tbl := tableFromScript(t, `{ [1000000000] = 1 }`)

	m, ok := selene.FromLua(tbl).(map[string]interface{})
	if !ok {
		t.Fatalf("sparse numeric table did not convert to a map")
	}
	if len(m) != 1 {
		t.Fatalf("expected a single entry, got %d", len(m))
	}
	if got := m["1e+09"]; got != float64(1) {
		t.Errorf("expected entry under key 1e+09, got %v", m)
	}
}

func TestFromLuaGapInArrayPart(t *testing.T) {
	tbl := tableFromScript(t, `{ [1] = "x", [3] = "y" }`)

	m, ok := selene.FromLua(tbl).(map[string]interface{})
	if !ok {
		t.Fatalf("numeric table with a hole did not convert to a map")
	}
	if m["1"] != "x" || m["3"] != "y" {
		t.Errorf("unexpected map contents: %v", m)
	}
}

func TestFromLuaMixedKeys(t *testing.T) {
	tbl := tableFromScript(t, `{ "first", name = "demo" }`)

	m, ok := selene.FromLua(tbl).(map[string]interface{})
	if !ok {
		t.Fatalf("mixed-key table did not convert to a map")
	}
	if m["name"] != "demo" || m["1"] != "first" {
		t.Errorf("unexpected map contents: %v", m)
	}
}

// Package modlib provides native Lua modules meant to be registered
// through selene.State.OpenLib. Each Open* function follows the VM's
// module-loader convention: it receives the module name as its single
// argument and returns the module table.
package modlib

import (
	"database/sql"

	lua "github.com/yuin/gopher-lua"
	_ "modernc.org/sqlite"
)

const connTypeName = "sql.conn"

// OpenSQL is the loader for the "sql" module, backed by an embedded
// SQLite engine.
//
//	local db = sql.open("file.db")   -- or ":memory:"
//	db:exec("insert into t values (?)", 1)
//	local rows = db:query("select * from t")
//	db:close()
func OpenSQL(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"open": sqlOpen,
	})
	mt := L.NewTypeMetatable(connTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"exec":  connExec,
		"query": connQuery,
		"close": connClose,
	}))
	L.Push(mod)
	return 1
}

func sqlOpen(L *lua.LState) int {
	dsn := L.CheckString(1)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	ud := L.NewUserData()
	ud.Value = db
	L.SetMetatable(ud, L.GetTypeMetatable(connTypeName))
	L.Push(ud)
	return 1
}

func checkConn(L *lua.LState) *sql.DB {
	ud := L.CheckUserData(1)
	if db, ok := ud.Value.(*sql.DB); ok {
		return db
	}
	L.ArgError(1, "sql connection expected")
	return nil
}

// statementArgs converts the trailing Lua arguments to driver values.
func statementArgs(L *lua.LState, from int) []interface{} {
	var args []interface{}
	for i := from; i <= L.GetTop(); i++ {
		switch v := L.Get(i).(type) {
		case lua.LBool:
			args = append(args, bool(v))
		case lua.LNumber:
			args = append(args, float64(v))
		case lua.LString:
			args = append(args, string(v))
		default:
			args = append(args, nil)
		}
	}
	return args
}

// db:exec(statement, args...) -> affected | nil, err
func connExec(L *lua.LState) int {
	db := checkConn(L)
	stmt := L.CheckString(2)
	res, err := db.Exec(stmt, statementArgs(L, 3)...)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	affected, _ := res.RowsAffected()
	L.Push(lua.LNumber(affected))
	return 1
}

// db:query(statement, args...) -> rows | nil, err
// Each row is a table keyed by column name.
func connQuery(L *lua.LState) int {
	db := checkConn(L)
	stmt := L.CheckString(2)
	rows, err := db.Query(stmt, statementArgs(L, 3)...)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	result := L.NewTable()
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		row := L.NewTable()
		for i, col := range cols {
			L.SetField(row, col, columnValue(vals[i]))
		}
		result.Append(row)
	}
	if err := rows.Err(); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(result)
	return 1
}

func columnValue(v interface{}) lua.LValue {
	switch c := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(c)
	case int64:
		return lua.LNumber(float64(c))
	case float64:
		return lua.LNumber(c)
	case []byte:
		return lua.LString(c)
	case string:
		return lua.LString(c)
	default:
		return lua.LNil
	}
}

// db:close() -> true | nil, err
func connClose(L *lua.LState) int {
	db := checkConn(L)
	if err := db.Close(); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

package modlib

import (
	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
)

// OpenUUID is the loader for the "uuid" module.
//
//	local id = uuid.new()
//	uuid.valid(id) -- true
func OpenUUID(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"new":   uuidNew,
		"valid": uuidValid,
	})
	L.Push(mod)
	return 1
}

func uuidNew(L *lua.LState) int {
	L.Push(lua.LString(uuid.NewString()))
	return 1
}

func uuidValid(L *lua.LState) int {
	s := L.CheckString(1)
	_, err := uuid.Parse(s)
	L.Push(lua.LBool(err == nil))
	return 1
}

package modlib

import (
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"

	"github.com/jornb/selene/pkg/selene"
)

// OpenYAML is the loader for the "yaml" module.
//
//	local doc = yaml.decode("port: 8080")
//	local text = yaml.encode({port = 8080})
func OpenYAML(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"decode": yamlDecode,
		"encode": yamlEncode,
	})
	L.Push(mod)
	return 1
}

// yaml.decode(text) -> value | nil, err
func yamlDecode(L *lua.LState) int {
	text := L.CheckString(1)
	var data interface{}
	if err := yaml.Unmarshal([]byte(text), &data); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(selene.ToLua(L, data))
	return 1
}

// yaml.encode(value) -> text | nil, err
func yamlEncode(L *lua.LState) int {
	v := L.CheckAny(1)
	out, err := yaml.Marshal(selene.FromLua(v))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(out))
	return 1
}

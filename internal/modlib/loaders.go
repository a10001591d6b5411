package modlib

import lua "github.com/yuin/gopher-lua"

// Loaders maps module names to their native entry points, in the form the
// run configuration's preload list refers to them.
var Loaders = map[string]lua.LGFunction{
	"sql":  OpenSQL,
	"yaml": OpenYAML,
	"uuid": OpenUUID,
}

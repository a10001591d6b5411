package config

const ScriptFileExt = ".lua"

// ScriptFileExtensions are all recognized script file extensions.
var ScriptFileExtensions = []string{".lua"}

// Generation names accepted in configuration files and on the command
// line.
const (
	GenerationModernName = "modern"
	GenerationLegacyName = "legacy"
)

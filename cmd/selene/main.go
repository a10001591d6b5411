package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	lua "github.com/yuin/gopher-lua"

	"github.com/jornb/selene/internal/config"
	"github.com/jornb/selene/internal/modlib"
	"github.com/jornb/selene/pkg/selene"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] [script%s ...]

Options:
  -e <code>        execute inline source
  -config <path>   load a YAML run configuration
  -gen <name>      module-registration generation: modern (default) or legacy
  -globals         print the VM's global names after execution
  -help            show this help

With no scripts and a terminal on stdin, an interactive prompt starts.
`, os.Args[0], config.ScriptFileExt)
}

func isScriptFile(path string) bool {
	for _, ext := range config.ScriptFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func main() {
	cfg := config.Default()
	var inline []string
	var scripts []string
	dumpGlobals := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "-help", "--help", "help":
			usage()
			return
		case "-e":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "-e requires an argument\n")
				os.Exit(1)
			}
			i++
			inline = append(inline, args[i])
		case "-config", "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "-config requires an argument\n")
				os.Exit(1)
			}
			i++
			loaded, err := config.Load(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %s\n", err)
				os.Exit(1)
			}
			cfg = loaded
		case "-gen", "--gen":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "-gen requires an argument\n")
				os.Exit(1)
			}
			i++
			cfg.Generation = args[i]
		case "-globals", "--globals":
			dumpGlobals = true
		default:
			if !isScriptFile(args[i]) {
				fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", args[i])
				usage()
				os.Exit(1)
			}
			scripts = append(scripts, args[i])
		}
	}

	gen := selene.GenerationModern
	switch cfg.Generation {
	case config.GenerationModernName, "":
	case config.GenerationLegacyName:
		gen = selene.GenerationLegacy
	default:
		fmt.Fprintf(os.Stderr, "Unknown generation: %s\n", cfg.Generation)
		os.Exit(1)
	}

	state := selene.NewWithOptions(selene.Options{
		OpenLibraries: cfg.OpenLibs,
		Generation:    gen,
	})
	defer state.Close()

	state.ReplaceReporter(func(code lua.ApiErrorType, msg string, cause error) {
		fmt.Fprintf(os.Stderr, "selene: %s\n", msg)
	})

	for _, name := range cfg.Preload {
		loader, ok := modlib.Loaders[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown preload module: %s\n", name)
			os.Exit(1)
		}
		state.OpenLib(name, loader)
	}

	ok := true
	for _, code := range inline {
		if !state.Execute(code) {
			ok = false
		}
	}
	for _, script := range scripts {
		if !state.LoadFile(script) {
			ok = false
		}
	}

	if len(inline) == 0 && len(scripts) == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			repl(state, os.Stdin, os.Stdout, cfg.History)
		} else {
			ok = runStdin(state)
		}
	}

	if dumpGlobals {
		for _, name := range state.GlobalNames() {
			fmt.Println(name)
		}
	}

	if !ok {
		os.Exit(1)
	}
}

// runStdin executes everything piped in as one chunk.
func runStdin(state *selene.State) bool {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stdin: %s\n", err)
		return false
	}
	return state.Execute(string(data))
}

// repl runs a line-oriented interactive prompt. Failures are already
// printed by the reporter, so the loop just keeps going. With history
// enabled, entered lines accumulate and :history prints them back.
func repl(state *selene.State, in io.Reader, out io.Writer, keepHistory bool) {
	fmt.Fprintln(out, "selene interactive prompt, ^D to exit")
	var history []string
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if keepHistory && line == ":history" {
			for i, entry := range history {
				fmt.Fprintf(out, "%3d  %s\n", i+1, entry)
			}
			continue
		}
		if keepHistory {
			history = append(history, line)
		}
		state.Execute(line)
	}
}
